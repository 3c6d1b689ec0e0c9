package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()

	if Ping() != DefaultPing {
		t.Errorf("Ping: got %v, want %v", Ping(), DefaultPing)
	}
	if Short() != DefaultShort {
		t.Errorf("Short: got %v, want %v", Short(), DefaultShort)
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium: got %v, want %v", Medium(), DefaultMedium)
	}
	if Long() != DefaultLong {
		t.Errorf("Long: got %v, want %v", Long(), DefaultLong)
	}
}

func TestConfigure(t *testing.T) {
	defer Reset()

	Configure(Config{Medium: 3 * time.Second})

	if Medium() != 3*time.Second {
		t.Errorf("Medium: got %v, want 3s", Medium())
	}
	// Zero values keep the existing settings
	if Ping() != DefaultPing {
		t.Errorf("Ping: got %v, want %v", Ping(), DefaultPing)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	defer Reset()

	t.Setenv("TIMEOUT_LONG", "45s")
	t.Setenv("TIMEOUT_SHORT", "not-a-duration")

	n := ConfigureFromEnv()
	if n != 1 {
		t.Errorf("configured: got %d, want 1", n)
	}
	if Long() != 45*time.Second {
		t.Errorf("Long: got %v, want 45s", Long())
	}
	// Invalid values keep the current setting
	if Short() != DefaultShort {
		t.Errorf("Short: got %v, want %v", Short(), DefaultShort)
	}
}
