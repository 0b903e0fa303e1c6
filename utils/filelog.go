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
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	fileLogMu         sync.Mutex
	fileLogEnabled    = EnvDefaultBool("FILE_LOG_ENABLED", false)
	fileLogDir        = EnvDefaultString("FILE_LOG_DIR", "logs")
	fileLogMaxAgeDays = EnvDefaultInt("FILE_LOG_MAX_AGE_DAYS", 7)
	fileLogMaxSizeMB  = EnvDefaultInt("FILE_LOG_MAX_SIZE_MB", 100)
	fileLogFormat     = EnvDefaultString("FILE_LOG_FORMAT", "text")
	fileWriters       = map[string]*lumberjack.Logger{}
)

// ConfigureFileLog turns per-level log files under dir on or off for loggers
// created afterwards. An empty dir keeps the current directory and a negative
// maxAgeDays keeps the current retention.
func ConfigureFileLog(enabled bool, dir string, maxAgeDays int) {
	fileLogMu.Lock()
	defer fileLogMu.Unlock()
	for level, w := range fileWriters {
		_ = w.Close()
		delete(fileWriters, level)
	}
	fileLogEnabled = enabled
	if dir != "" {
		fileLogDir = dir
	}
	if maxAgeDays >= 0 {
		fileLogMaxAgeDays = maxAgeDays
	}
}

func ConfigureFileLogFormat(format string) {
	s := strings.ToLower(strings.TrimSpace(format))
	if s != "json" {
		s = "text"
	}
	fileLogMu.Lock()
	fileLogFormat = s
	fileLogMu.Unlock()
}

// fileWriter returns the rotating writer for level. Callers hold fileLogMu.
func fileWriter(level string) io.Writer {
	if w, ok := fileWriters[level]; ok {
		return w
	}
	w := &lumberjack.Logger{
		Filename: filepath.Join(fileLogDir, level+".log"),
		MaxSize:  fileLogMaxSizeMB,
		MaxAge:   fileLogMaxAgeDays,
	}
	fileWriters[level] = w
	return w
}

// newFileHook returns a hook writing entries to per-level files, or nil when
// file logging is off.
func newFileHook() logrus.Hook {
	fileLogMu.Lock()
	defer fileLogMu.Unlock()
	if !fileLogEnabled {
		return nil
	}
	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		DisableColors:   true,
	}
	if fileLogFormat == "json" {
		formatter = &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
	errorW := fileWriter("error")
	return &levelWriterHook{
		formatter: formatter,
		writers: map[logrus.Level]io.Writer{
			logrus.TraceLevel: fileWriter("trace"),
			logrus.DebugLevel: fileWriter("debug"),
			logrus.InfoLevel:  fileWriter("info"),
			logrus.WarnLevel:  fileWriter("warn"),
			logrus.ErrorLevel: errorW,
			logrus.FatalLevel: errorW,
			logrus.PanicLevel: errorW,
		},
	}
}

type levelWriterHook struct {
	writers   map[logrus.Level]io.Writer
	formatter logrus.Formatter
}

func (h *levelWriterHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *levelWriterHook) Fire(e *logrus.Entry) error {
	w, ok := h.writers[e.Level]
	if !ok {
		return nil
	}
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
