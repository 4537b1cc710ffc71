package ratelimit

import (
	"testing"
	"time"
)

func TestPacer_NilAndZeroNeverBlock(t *testing.T) {
	var p *Pacer
	p.Wait() // must not panic

	z := NewPacer(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		z.Wait()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-interval pacer blocked for %v", elapsed)
	}
}

func TestPacer_SpacesCalls(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)

	start := time.Now()
	p.Wait()
	p.Wait()
	p.Wait()
	elapsed := time.Since(start)

	// Two gaps of at least the interval after the free first call.
	if elapsed < 40*time.Millisecond {
		t.Errorf("three calls finished in %v, want >= 40ms", elapsed)
	}
}
