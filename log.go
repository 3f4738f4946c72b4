// seehuhn.de/go/pdfview - annotation comment synchronization for PDF viewers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfview

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions configures the logger returned by NewLogger.  The zero value
// logs at info level to standard error.
type LogOptions struct {
	// Level is one of "debug", "info", "warn" or "error".
	// Unknown values mean "info".
	Level string `yaml:"level"`

	// File, if set, sends log output to a rotating file instead of
	// standard error.
	File string `yaml:"file"`

	// Rotation limits for File.  Zero values mean 100 MB per file,
	// 10 backups, 30 days.
	MaxSizeMB  int `yaml:"maxSizeMB"`
	MaxBackups int `yaml:"maxBackups"`
	MaxAgeDays int `yaml:"maxAgeDays"`
}

// NewLogger builds the logger used by the comment and indicator layers.
// Reconciliation internals log at debug level only, so a viewer will
// normally run this at info level and see close to no output.
//
// All components of this module also accept a nil logger, which disables
// logging entirely.
func NewLogger(opt *LogOptions) *zap.Logger {
	if opt == nil {
		opt = &LogOptions{}
	}

	var level zapcore.Level
	switch opt.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var core zapcore.Core
	if opt.File != "" {
		maxSize := opt.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 100
		}
		maxBackups := opt.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 10
		}
		maxAge := opt.MaxAgeDays
		if maxAge <= 0 {
			maxAge = 30
		}
		sink := &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     maxAge,
			Compress:   true,
		}
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(sink),
			level,
		)
	} else {
		core = zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(os.Stderr),
			level,
		)
	}

	return zap.New(core)
}
