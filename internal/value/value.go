// Copyright 2024-2025 FlowSpec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value defines Expr, the single tagged-variant type that covers
// both the interior nodes of a translated rule and the values produced by
// evaluating one.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MetallData/json-logic/internal/errs"
)

// Tag discriminates every Expr variant: the value leaves (Null..Object)
// and every operator (Eq..Regex).
type Tag uint8

const (
	// Value variants (leaves).
	TagNull Tag = iota
	TagBool
	TagInt
	TagUint
	TagReal
	TagStr
	TagObject

	// Array is both the literal JSON-array value and the n-ary Array
	// operator: they are representationally identical after translation.
	TagArray

	// Operator variants.
	TagEq
	TagNe
	TagStrictEq
	TagStrictNe
	TagLt
	TagGt
	TagLe
	TagGe
	TagNot
	TagNotNot
	TagAnd
	TagOr
	TagIf
	TagAdd
	TagMul
	TagMin
	TagMax
	TagSub
	TagDiv
	TagMod
	TagMap
	TagFilter
	TagAll
	TagNone
	TagSome
	TagReduce
	TagMerge
	TagCat
	TagSubstr
	TagIn
	TagVar
	TagMissing
	TagMissingSome
	TagLog
	TagRegex
)

// Computed marks a Var node whose path was not statically indexable.
const Computed = -1

var tagNames = map[Tag]string{
	TagNull: "null", TagBool: "bool", TagInt: "int", TagUint: "uint",
	TagReal: "real", TagStr: "string", TagObject: "object", TagArray: "array",
	TagEq: "==", TagNe: "!=", TagStrictEq: "===", TagStrictNe: "!==",
	TagLt: "<", TagGt: ">", TagLe: "<=", TagGe: ">=",
	TagNot: "!", TagNotNot: "!!", TagAnd: "and", TagOr: "or", TagIf: "if",
	TagAdd: "+", TagMul: "*", TagMin: "min", TagMax: "max",
	TagSub: "-", TagDiv: "/", TagMod: "%",
	TagMap: "map", TagFilter: "filter", TagAll: "all", TagNone: "none", TagSome: "some",
	TagReduce: "reduce", TagMerge: "merge", TagCat: "cat", TagSubstr: "substr",
	TagIn: "in", TagVar: "var", TagMissing: "missing", TagMissingSome: "missing_some",
	TagLog: "log", TagRegex: "regex",
}

// String renders a human-readable operator/kind name for diagnostics.
func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return fmt.Sprintf("tag(%d)", t)
}

// IsValue reports whether t is one of the value leaves (including Array,
// which doubles as a value once its children have all been evaluated).
func (t Tag) IsValue() bool {
	switch t {
	case TagNull, TagBool, TagInt, TagUint, TagReal, TagStr, TagObject, TagArray:
		return true
	default:
		return false
	}
}

// Expr is the single recursive node type produced by translation and
// consumed by evaluation. Exactly one of its payload fields is meaningful,
// selected by Tag.
type Expr struct {
	Tag Tag

	Bool bool
	Int  int64
	Uint uint64
	Real float64
	Str  string

	// Object holds nested data for TagObject nodes. Rules themselves never
	// contain a bare object literal (that syntax is reserved for operator
	// encoding); TagObject only appears as an evaluation output returned by
	// a variable accessor.
	Object map[string]*Expr

	// Children holds operand expressions for every operator variant, and
	// the elements of a TagArray value/literal.
	Children []*Expr

	// VarIdx is the pre-assigned index for a TagVar node whose sole
	// operand was a static, plain path at translation time; Computed
	// otherwise.
	VarIdx int
}

// Null, Bool, Int, Uint, Real and Str build value leaves.
func Null() *Expr                { return &Expr{Tag: TagNull} }
func Bool(b bool) *Expr          { return &Expr{Tag: TagBool, Bool: b} }
func Int(i int64) *Expr          { return &Expr{Tag: TagInt, Int: i} }
func Uint(u uint64) *Expr        { return &Expr{Tag: TagUint, Uint: u} }
func Real(f float64) *Expr       { return &Expr{Tag: TagReal, Real: f} }
func Str(s string) *Expr         { return &Expr{Tag: TagStr, Str: s} }
func Object(m map[string]*Expr) *Expr { return &Expr{Tag: TagObject, Object: m} }

// Array builds a value/literal array from already-evaluated elements.
func Array(elems ...*Expr) *Expr { return &Expr{Tag: TagArray, Children: elems} }

// Op builds an operator node with the given children. VarIdx defaults to
// Computed; the translator overwrites it for Var nodes it can statically
// index.
func Op(tag Tag, children ...*Expr) *Expr {
	return &Expr{Tag: tag, Children: children, VarIdx: Computed}
}

// IsNull reports whether e is the Null value.
func (e *Expr) IsNull() bool { return e.Tag == TagNull }

// IsArray reports whether e is an array value/literal.
func (e *Expr) IsArray() bool { return e.Tag == TagArray }

// Truthy implements JsonLogic's language-wide boolean coercion (spec §4.4):
// Null -> false, Bool -> itself, numeric -> non-zero, string -> non-empty,
// array -> non-empty. Object is treated as non-empty iff it has members,
// matching the reference implementation's general "emptiness" rule.
func Truthy(e *Expr) bool {
	switch e.Tag {
	case TagNull:
		return false
	case TagBool:
		return e.Bool
	case TagInt:
		return e.Int != 0
	case TagUint:
		return e.Uint != 0
	case TagReal:
		return e.Real != 0
	case TagStr:
		return e.Str != ""
	case TagArray:
		return len(e.Children) > 0
	case TagObject:
		return len(e.Object) > 0
	default:
		return true
	}
}

// Falsy is the negation of Truthy.
func Falsy(e *Expr) bool { return !Truthy(e) }

// CanonicalString renders a scalar value's canonical textual form, used
// wherever a non-string operand is coerced into a string (Cat, the
// string family generally). Array and Object have no canonical textual
// form and return an error.
func CanonicalString(e *Expr) (string, error) {
	switch e.Tag {
	case TagNull:
		return "", nil
	case TagBool:
		if e.Bool {
			return "true", nil
		}
		return "false", nil
	case TagInt:
		return strconv.FormatInt(e.Int, 10), nil
	case TagUint:
		return strconv.FormatUint(e.Uint, 10), nil
	case TagReal:
		return strconv.FormatFloat(e.Real, 'g', -1, 64), nil
	case TagStr:
		return e.Str, nil
	default:
		return "", errs.NewTypeError("", "%s has no canonical string form", e.Tag)
	}
}

// FromNumberLiteral classifies a JSON number by its textual form rather
// than its magnitude: a fractional part or exponent makes it Real; a
// leading '-' makes it Int; anything else is Uint. This is how the
// engine tells apart "-3" (Int), "3" (Uint) and "3.0"/"3e1" (Real) even
// though they might denote the same mathematical value.
func FromNumberLiteral(lit string) (*Expr, error) {
	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, errs.NewRangeError("", "number literal %q is not a valid real: %v", lit, err)
		}
		return Real(f), nil
	}
	if strings.HasPrefix(lit, "-") {
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, errs.NewRangeError("", "number literal %q overflows a signed 64-bit integer", lit)
		}
		return Int(i), nil
	}
	u, err := strconv.ParseUint(lit, 10, 64)
	if err != nil {
		return nil, errs.NewRangeError("", "number literal %q overflows an unsigned 64-bit integer", lit)
	}
	return Uint(u), nil
}
