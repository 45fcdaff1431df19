package bot

import (
	"testing"
	"time"
)

func TestCooldown_FirstCallAllowed(t *testing.T) {
	c := NewCooldown(DefaultCooldown)
	if !c.Allow(1, time.Unix(1000, 0)) {
		t.Error("first call for a user must be allowed")
	}
}

func TestCooldown_WindowBoundaryInclusive(t *testing.T) {
	c := NewCooldown(8 * time.Second)
	base := time.Unix(1000, 0)

	if !c.Allow(1, base) {
		t.Fatal("Allow(u, t) = false, want true")
	}
	if c.Allow(1, base.Add(7*time.Second)) {
		t.Error("Allow(u, t+7s) = true, want false")
	}
	if !c.Allow(1, base.Add(8*time.Second)) {
		t.Error("Allow(u, t+8s) = false, want true (boundary inclusive)")
	}
}

func TestCooldown_DeniedCallDoesNotExtendWindow(t *testing.T) {
	c := NewCooldown(8 * time.Second)
	base := time.Unix(1000, 0)

	c.Allow(1, base)
	c.Allow(1, base.Add(5*time.Second)) // denied
	if !c.Allow(1, base.Add(8*time.Second)) {
		t.Error("a denied call must not reset the window")
	}
}

func TestCooldown_UsersAreIndependent(t *testing.T) {
	c := NewCooldown(8 * time.Second)
	base := time.Unix(1000, 0)

	c.Allow(1, base)
	if !c.Allow(2, base) {
		t.Error("user 2 must not be throttled by user 1's call")
	}
}

func TestNewCooldown_DefaultsWindow(t *testing.T) {
	c := NewCooldown(0)
	if c.window != DefaultCooldown {
		t.Errorf("window = %v, want %v", c.window, DefaultCooldown)
	}
}
