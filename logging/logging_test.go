package logging

import "testing"

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestSetGlobalLoggerNilFallsBackToNoOp(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Errorf("expected NoOpLogger, got %T", GetGlobalLogger())
	}
}

func TestWithFieldsMergesPresets(t *testing.T) {
	logger := NewDefaultLoggerNoColor()
	logger.fields = Fields{"component": "test"}

	child, ok := logger.WithFields(Fields{"phrase": 3}).(*DefaultLogger)
	if !ok {
		t.Fatalf("expected *DefaultLogger, got %T", child)
	}

	if child.fields["component"] != "test" || child.fields["phrase"] != 3 {
		t.Errorf("merged fields = %+v", child.fields)
	}
	// Parent must be unchanged
	if _, leaked := logger.fields["phrase"]; leaked {
		t.Error("child field leaked into parent logger")
	}
}

func TestFormatMessageIncludesLevelAndFields(t *testing.T) {
	logger := NewDefaultLoggerNoColor()
	msg := logger.formatMessage(WarnLevel, nil, "gap too short", Fields{"gap_ms": 120})

	if want := "[WARN] gap too short"; len(msg) < len(want) || msg[:len(want)] != want {
		t.Errorf("formatted message = %q, want prefix %q", msg, want)
	}
}
