package ratelimit

import (
	"sync"
	"time"
)

// Pacer spaces outbound requests by a minimum interval so we don't
// hammer the sites we pull articles from.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until at least the configured interval has passed since the
// previous call. A nil pacer or zero interval never blocks.
func (p *Pacer) Wait() {
	if p == nil || p.interval <= 0 {
		return
	}

	p.mu.Lock()
	now := time.Now()
	wait := p.interval - now.Sub(p.last)
	if wait < 0 {
		wait = 0
	}
	p.last = now.Add(wait)
	p.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}
}
