// SPDX-License-Identifier: EPL-2.0

package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, env := range []string{"production", "development"} {
		log, err := New("warn", env)
		if err != nil {
			t.Fatalf("New(warn, %s) error = %v", env, err)
		}
		if log.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("%s logger has info enabled at level warn", env)
		}
		if !log.Core().Enabled(zapcore.ErrorLevel) {
			t.Errorf("%s logger has error disabled at level warn", env)
		}
	}
}
