package startup

import (
	"runtime/debug"
	"testing"
)

func TestConfigureMemoryLimitFromContainerLimit(t *testing.T) {
	prev := debug.SetMemoryLimit(-1)
	defer debug.SetMemoryLimit(prev)

	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "1000000000")
	t.Setenv("MEMORY_RATIO", "0.5")

	ConfigureMemoryLimit()

	if got := debug.SetMemoryLimit(-1); got != 500000000 {
		t.Errorf("memory limit = %d, want 500000000", got)
	}
}

func TestConfigureMemoryLimitIgnoresGarbage(t *testing.T) {
	prev := debug.SetMemoryLimit(-1)
	defer debug.SetMemoryLimit(prev)

	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "not-a-number")

	ConfigureMemoryLimit()

	if got := debug.SetMemoryLimit(-1); got != prev {
		t.Errorf("memory limit = %d, want untouched %d", got, prev)
	}
}
