package ratelimit

import (
	"sync"
	"time"

	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/commands"
)

// MemoryStore is a fixed-window per-key attempt counter. It is advisory
// abuse prevention: losing its state on restart is an accepted degradation,
// not a correctness bug. A shared store can replace it behind the
// commands.RateLimitStore port without touching call sites.
type MemoryStore struct {
	mu          sync.Mutex
	entries     map[string]*entry
	maxAttempts int
	window      time.Duration
	clock       clock.Clock
}

type entry struct {
	attempts      int
	windowStarted time.Time
}

func NewMemoryStore(cfg config.RateLimitConfig, clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]*entry),
		maxAttempts: cfg.MaxAttempts,
		window:      cfg.Window,
		clock:       clk,
	}
}

func (s *MemoryStore) Check(key string) commands.RateLimitStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	e, ok := s.entries[key]
	if !ok {
		return commands.RateLimitStatus{RemainingAttempts: s.maxAttempts}
	}

	if now.Sub(e.windowStarted) > s.window {
		delete(s.entries, key)
		return commands.RateLimitStatus{RemainingAttempts: s.maxAttempts}
	}

	remaining := s.maxAttempts - e.attempts
	if remaining < 0 {
		remaining = 0
	}

	return commands.RateLimitStatus{
		Limited:           e.attempts >= s.maxAttempts,
		RemainingAttempts: remaining,
		ResetIn:           e.windowStarted.Add(s.window).Sub(now),
	}
}

func (s *MemoryStore) Record(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	e, ok := s.entries[key]
	if !ok || now.Sub(e.windowStarted) > s.window {
		s.entries[key] = &entry{attempts: 1, windowStarted: now}
		return
	}
	e.attempts++
}

func (s *MemoryStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Sweep drops expired entries and returns how many were removed. The
// bootstrap layer runs it periodically.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	cleaned := 0
	for key, e := range s.entries {
		if now.Sub(e.windowStarted) > s.window {
			delete(s.entries, key)
			cleaned++
		}
	}
	return cleaned
}
