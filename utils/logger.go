/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type Logger = logrus.Logger

const timestampFormat = "2006-01-02 15:04:05.000"

var (
	loggerRegistryMu sync.RWMutex
	loggerRegistry   = map[string]*logrus.Logger{}
	defaultLevel     = ParseLogLevel(EnvDefaultString("LOG_LEVEL", "info"))
	consoleLogFormat = EnvDefaultString("CONSOLE_LOG_FORMAT", "text")
)

var consoleOutput io.Writer = os.Stdout

// NewLogger returns the named logger, creating and registering it on first use.
// Every entry carries a "logger" field with the name, and is also written to
// per-level files when file logging is enabled.
func NewLogger(name string) *logrus.Logger {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	if l, ok := loggerRegistry[name]; ok {
		return l
	}
	l := logrus.New()
	l.SetOutput(consoleOutput)
	l.SetLevel(defaultLevel)
	l.SetFormatter(newFormatter(consoleLogFormat))
	l.AddHook(&nameHook{name: name})
	if hook := newFileHook(); hook != nil {
		l.AddHook(hook)
	}
	loggerRegistry[name] = l
	return l
}

func newFormatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		PadLevelText:    true,
	}
}

type nameHook struct {
	name string
}

func (h *nameHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *nameHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["logger"]; !ok {
		e.Data["logger"] = h.name
	}
	return nil
}

func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// SetLoggerLevel changes the level of a registered logger. It reports false
// when no logger with that name exists.
func SetLoggerLevel(name string, lvlStr string) bool {
	loggerRegistryMu.RLock()
	lg, ok := loggerRegistry[name]
	loggerRegistryMu.RUnlock()
	if !ok {
		return false
	}
	lg.SetLevel(ParseLogLevel(lvlStr))
	return true
}

// ConfigureLogLevel sets the level of every registered logger and of those
// created later.
func ConfigureLogLevel(levelStr string) {
	lvl := ParseLogLevel(levelStr)
	loggerRegistryMu.Lock()
	defaultLevel = lvl
	for _, lg := range loggerRegistry {
		lg.SetLevel(lvl)
	}
	loggerRegistryMu.Unlock()
}

func ConfigureConsoleLogFormat(format string) {
	s := strings.ToLower(strings.TrimSpace(format))
	if s != "json" {
		s = "text"
	}
	loggerRegistryMu.Lock()
	consoleLogFormat = s
	for _, lg := range loggerRegistry {
		lg.SetFormatter(newFormatter(s))
	}
	loggerRegistryMu.Unlock()
}

// ConfigureOutput redirects every logger, e.g. to io.Discard in tests.
func ConfigureOutput(w io.Writer) {
	loggerRegistryMu.Lock()
	consoleOutput = w
	for _, lg := range loggerRegistry {
		lg.SetOutput(w)
	}
	loggerRegistryMu.Unlock()
}

func EnvDefaultString(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, _ := strconv.ParseBool(v)
		return b
	}
	return def
}

func EnvDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
