package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultCooldown is the minimum interval between two implicit AI fallback
// invocations from the same user. The explicit /ai command is exempt.
const DefaultCooldown = 8 * time.Second

// Cooldown throttles the implicit AI fallback path per user. Entries are
// never removed; the table is process-scoped and a restart clears it.
type Cooldown struct {
	mu     sync.Mutex
	users  map[int64]*rate.Limiter
	window time.Duration
}

// NewCooldown creates a cooldown table with the given window.
// A non-positive window falls back to DefaultCooldown.
func NewCooldown(window time.Duration) *Cooldown {
	if window <= 0 {
		window = DefaultCooldown
	}
	return &Cooldown{
		users:  make(map[int64]*rate.Limiter),
		window: window,
	}
}

// Allow reports whether the user may trigger the fallback at time now, and
// records the call when accepted. The first call for a user is always
// allowed; afterwards a call is allowed once the full window has elapsed
// (boundary inclusive). A denied call does not consume the window.
func (c *Cooldown) Allow(userID int64, now time.Time) bool {
	c.mu.Lock()
	lim, ok := c.users[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(c.window), 1)
		c.users[userID] = lim
	}
	c.mu.Unlock()

	return lim.AllowN(now, 1)
}
