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

package jsonlogic

import "github.com/sirupsen/logrus"

// Logger is the sink for the "log" operator: each evaluated log node's
// rendered value is handed to Log before the node's value is returned.
type Logger interface {
	Log(s string)
}

// loggerAdapter satisfies internal/eval's Logger interface by delegating
// to the public Logger a caller configured.
type loggerAdapter struct {
	l Logger
}

func (a loggerAdapter) Log(s string) { a.l.Log(s) }

// LogrusLogger adapts a *logrus.Logger (or logrus.Entry) to the Logger
// interface, logging each "log" operator value at Info level with a
// component=jsonlogic field so it is easy to pick out among a CLI's other
// structured log lines.
type LogrusLogger struct {
	Entry *logrus.Entry
}

// NewLogrusLogger builds a LogrusLogger from a *logrus.Logger.
func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{Entry: logrus.NewEntry(l)}
}

// Log implements Logger.
func (l *LogrusLogger) Log(s string) {
	l.Entry.WithField("component", "jsonlogic").Info(s)
}
