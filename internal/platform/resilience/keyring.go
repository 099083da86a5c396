package resilience

import (
	"strings"
	"sync"
	"time"
)

const keyPrefixLen = 8

// KeyHealth is the observable state of one credential. Key holds a masked prefix only.
type KeyHealth struct {
	Key          string    `json:"key"`
	FailureCount int       `json:"failureCount"`
	InCooldown   bool      `json:"inCooldown"`
	LastUsedAt   time.Time `json:"lastUsedAt"`
}

type keyState struct {
	key          string
	failureCount int
	inCooldown   bool
	lastUsedAt   time.Time
}

// KeyRing rotates API keys away from credentials that keep hitting quota errors.
//
// A key enters cooldown once its failure count reaches MaxFailures. It becomes
// selectable again when more than Cooldown has passed since it was last used,
// or immediately after a reported success. Selection never blocks: when every
// key is cooling down the first key is returned and the caller's retry loop
// deals with the rejection.
type KeyRing struct {
	mu sync.Mutex

	keys        []*keyState
	index       map[string]int
	cursor      int
	enabled     bool
	maxFailures int
	cooldown    time.Duration
	now         func() time.Time
}

func NewKeyRing(keys []string, cfg KeyRingConfig) *KeyRing {
	cfg = NormalizeKeyRingConfig(cfg)

	ring := &KeyRing{
		index:       make(map[string]int, len(keys)),
		enabled:     cfg.Enabled,
		maxFailures: cfg.MaxFailures,
		cooldown:    cfg.Cooldown,
		now:         time.Now,
	}
	for _, raw := range keys {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}
		if _, exists := ring.index[key]; exists {
			continue
		}
		ring.index[key] = len(ring.keys)
		ring.keys = append(ring.keys, &keyState{key: key})
	}

	return ring
}

func (r *KeyRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.keys)
}

// Select returns the key to use for the next upstream call, or "" for an empty ring.
func (r *KeyRing) Select() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 {
		return ""
	}
	if !r.enabled || len(r.keys) == 1 {
		return r.keys[0].key
	}

	now := r.now()
	for i := 0; i < len(r.keys); i++ {
		idx := (r.cursor + i) % len(r.keys)
		state := r.keys[idx]
		if state.inCooldown {
			if now.Sub(state.lastUsedAt) <= r.cooldown {
				continue
			}
			state.inCooldown = false
		}

		r.cursor = idx
		state.lastUsedAt = now
		return state.key
	}

	return r.keys[0].key
}

func (r *KeyRing) ReportFailure(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.lookup(key)
	if !ok {
		return
	}
	state.failureCount++
	if state.failureCount >= r.maxFailures {
		state.inCooldown = true
		state.lastUsedAt = r.now()
	}
}

func (r *KeyRing) ReportSuccess(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.lookup(key)
	if !ok {
		return
	}
	state.failureCount = 0
	state.inCooldown = false
}

func (r *KeyRing) Snapshot() []KeyHealth {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]KeyHealth, 0, len(r.keys))
	for _, state := range r.keys {
		out = append(out, KeyHealth{
			Key:          MaskKey(state.key),
			FailureCount: state.failureCount,
			InCooldown:   state.inCooldown,
			LastUsedAt:   state.lastUsedAt,
		})
	}
	return out
}

func (r *KeyRing) lookup(key string) (*keyState, bool) {
	idx, ok := r.index[strings.TrimSpace(key)]
	if !ok {
		return nil, false
	}
	return r.keys[idx], true
}

// MaskKey keeps a short prefix of a secret. Short secrets expose at most half their length.
func MaskKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	n := keyPrefixLen
	if len(key) <= n {
		n = len(key) / 2
	}
	return key[:n] + "..."
}
