package domain

import (
	"sync"
	"time"
)

// EngineHealth is the process-wide auth health of one platform's engine.
// Chiefly tracked for platforms whose engine depends on rotating tokens.
type EngineHealth struct {
	Valid             bool      `json:"valid"`
	LastCheck         time.Time `json:"last_check"`
	ConsecutiveErrors int       `json:"consecutive_errors"`
	LastError         string    `json:"last_error,omitempty"`
}

// HealthRegistry holds EngineHealth per platform. Updates are atomic with
// respect to concurrent requests targeting the same platform.
type HealthRegistry struct {
	mu      sync.Mutex
	entries map[Platform]*EngineHealth
}

// NewHealthRegistry creates an empty health registry
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{entries: make(map[Platform]*EngineHealth)}
}

func (r *HealthRegistry) entry(platform Platform) *EngineHealth {
	h, ok := r.entries[platform]
	if !ok {
		h = &EngineHealth{Valid: true}
		r.entries[platform] = h
	}
	return h
}

// RecordSuccess clears the error counter for a platform and marks its
// engine valid again.
func (r *HealthRegistry) RecordSuccess(platform Platform) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.entry(platform)
	h.Valid = true
	h.ConsecutiveErrors = 0
	h.LastError = ""
	h.LastCheck = time.Now()
}

// RecordFailure increments the error counter and records the failure text.
// authRelated marks failures whose diagnostics matched the token-expiry
// vocabulary; those invalidate the engine until the next success.
func (r *HealthRegistry) RecordFailure(platform Platform, message string, authRelated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.entry(platform)
	h.ConsecutiveErrors++
	h.LastError = message
	h.LastCheck = time.Now()
	if authRelated {
		h.Valid = false
	}
}

// Get returns a copy of the health entry for a platform.
func (r *HealthRegistry) Get(platform Platform) EngineHealth {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.entry(platform)
}

// Snapshot returns a copy of every tracked entry, keyed by platform.
func (r *HealthRegistry) Snapshot() map[Platform]EngineHealth {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[Platform]EngineHealth, len(r.entries))
	for platform, h := range r.entries {
		out[platform] = *h
	}
	return out
}
