package logging

import "testing"

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected string
	}{
		{"Debug", LevelDebug, "debug"},
		{"Info", LevelInfo, "info"},
		{"Warn", LevelWarn, "warn"},
		{"Error", LevelError, "error"},
		{"Unknown", LogLevel(42), "unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLogLevelOrdering(t *testing.T) {
	if !(LevelDebug < LevelInfo && LevelInfo < LevelWarn && LevelWarn < LevelError) {
		t.Error("log levels are not ordered by severity")
	}
}

func TestGetLevelIsStable(t *testing.T) {
	// Level is memoized on first use; repeated calls must agree.
	first := GetLevel()
	for i := 0; i < 3; i++ {
		if got := GetLevel(); got != first {
			t.Errorf("GetLevel() changed between calls: %v then %v", first, got)
		}
	}
}
