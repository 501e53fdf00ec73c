package config

import (
	"testing"
	"time"
)

func TestDisplayLocation(t *testing.T) {
	t.Parallel()

	if loc, err := (Config{}).DisplayLocation(); err != nil || loc != time.Local {
		t.Errorf("empty TZ = (%v, %v), want the system zone", loc, err)
	}

	loc, err := (Config{TZ: "UTC"}).DisplayLocation()
	if err != nil || loc != time.UTC {
		t.Errorf("TZ UTC = (%v, %v), want UTC", loc, err)
	}

	if _, err := (Config{TZ: "Mars/Olympus"}).DisplayLocation(); err == nil {
		t.Error("bogus TZ resolved, want error")
	}
}
