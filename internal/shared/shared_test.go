package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes structured entries", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("hello", "tracks", 3)

		out := buf.String()
		for _, want := range []string{"hello", "component=test", "tracks=3"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
	})

	t.Run("SetLogLevel filters entries", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("ParseLogLevel", func(t *testing.T) {
		tests := []struct {
			in      string
			want    log.Level
			wantErr bool
		}{
			{"", log.InfoLevel, false},
			{"debug", log.DebugLevel, false},
			{"warn", log.WarnLevel, false},
			{"error", log.ErrorLevel, false},
			{"verbose", log.InfoLevel, true},
		}
		for _, tt := range tests {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("%q: expected ErrInvalidConfig, got %v", tt.in, err)
				}
				continue
			}
			if err != nil || got != tt.want {
				t.Errorf("%q: expected %v, got %v (%v)", tt.in, tt.want, got, err)
			}
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid uuid, got %q", a)
	}
}
