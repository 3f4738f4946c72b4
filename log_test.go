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
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel, zapcore.WarnLevel},
		{"", zapcore.InfoLevel, zapcore.DebugLevel},
		{"verbose", zapcore.InfoLevel, zapcore.DebugLevel},
	}
	for _, test := range tests {
		name := test.level
		if name == "" {
			name = "default"
		}
		t.Run(name, func(t *testing.T) {
			l := NewLogger(&LogOptions{Level: test.level})
			defer l.Sync()
			if l.Core().Enabled(test.muted) {
				t.Errorf("level %v unexpectedly enabled", test.muted)
			}
			if !l.Core().Enabled(test.enabled) {
				t.Errorf("level %v unexpectedly disabled", test.enabled)
			}
		})
	}
}

func TestNewLoggerNilOptions(t *testing.T) {
	l := NewLogger(nil)
	defer l.Sync()
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("nil options should log at info level")
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("nil options should log at info level")
	}
}

func TestNewLoggerFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "pdfview.log")
	l := NewLogger(&LogOptions{Level: "debug", File: fname})
	l.Info("sync pass complete")
	l.Sync()

	body, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "sync pass complete") {
		t.Errorf("log file %q does not contain the message", fname)
	}
}
