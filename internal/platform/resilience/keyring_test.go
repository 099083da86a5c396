package resilience

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyRing(keys []string, cfg KeyRingConfig) (*KeyRing, *time.Time) {
	ring := NewKeyRing(keys, cfg)
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	ring.now = func() time.Time { return now }
	return ring, &now
}

func TestKeyRing_SingleKeyOrDisabledAlwaysReturnsFirst(t *testing.T) {
	ring, _ := newTestKeyRing([]string{"key-alpha-0001"}, KeyRingConfig{Enabled: true, MaxFailures: 1, Cooldown: time.Minute})
	ring.ReportFailure("key-alpha-0001")
	assert.Equal(t, "key-alpha-0001", ring.Select())

	disabled, _ := newTestKeyRing([]string{"key-alpha-0001", "key-bravo-0002"}, KeyRingConfig{Enabled: false, MaxFailures: 1, Cooldown: time.Minute})
	disabled.ReportFailure("key-alpha-0001")
	assert.Equal(t, "key-alpha-0001", disabled.Select())
}

func TestKeyRing_EmptyRing(t *testing.T) {
	ring := NewKeyRing([]string{" ", ""}, DefaultKeyRingConfig())
	assert.Equal(t, 0, ring.Len())
	assert.Equal(t, "", ring.Select())
	ring.ReportFailure("missing")
	ring.ReportSuccess("missing")
	assert.Empty(t, ring.Snapshot())
}

func TestKeyRing_DeduplicatesKeys(t *testing.T) {
	ring := NewKeyRing([]string{"key-alpha-0001", " key-alpha-0001 ", "key-bravo-0002"}, DefaultKeyRingConfig())
	assert.Equal(t, 2, ring.Len())
}

func TestKeyRing_RotatesAwayFromFailingKeyWithinKeyCount(t *testing.T) {
	keys := []string{"key-alpha-0001", "key-bravo-0002", "key-charlie-03"}
	ring, _ := newTestKeyRing(keys, KeyRingConfig{Enabled: true, MaxFailures: 2, Cooldown: 6 * time.Second})

	first := ring.Select()
	require.Equal(t, "key-alpha-0001", first)

	var got string
	for i := 0; i < len(keys); i++ {
		ring.ReportFailure(first)
		got = ring.Select()
		if got != first {
			break
		}
	}
	assert.NotEqual(t, first, got, "expected rotation within %d selections", len(keys))
	assert.Equal(t, "key-bravo-0002", got)
}

func TestKeyRing_CooldownExpiresAndSuccessResets(t *testing.T) {
	ring, now := newTestKeyRing([]string{"key-alpha-0001", "key-bravo-0002"}, KeyRingConfig{Enabled: true, MaxFailures: 1, Cooldown: 6 * time.Second})

	require.Equal(t, "key-alpha-0001", ring.Select())
	ring.ReportFailure("key-alpha-0001")
	require.Equal(t, "key-bravo-0002", ring.Select())

	// Both keys cooling down: fail open to the first key.
	ring.ReportFailure("key-bravo-0002")
	assert.Equal(t, "key-alpha-0001", ring.Select())
	assert.True(t, ring.Snapshot()[0].InCooldown, "fail-open selection must not clear cooldown")

	*now = now.Add(6 * time.Second)
	assert.Equal(t, "key-alpha-0001", ring.Select(), "cooldown window is exclusive")
	assert.True(t, ring.Snapshot()[0].InCooldown)

	// The scan resumes at the cursor, which still points at the second key.
	*now = now.Add(time.Millisecond)
	assert.Equal(t, "key-bravo-0002", ring.Select())
	snap := ring.Snapshot()
	assert.False(t, snap[1].InCooldown)
	assert.Equal(t, 1, snap[1].FailureCount, "failure count survives until a success")

	ring.ReportSuccess("key-bravo-0002")
	snap = ring.Snapshot()
	assert.Equal(t, 0, snap[1].FailureCount)
	assert.False(t, snap[1].InCooldown)
}

func TestKeyRing_SnapshotMasksKeys(t *testing.T) {
	ring := NewKeyRing([]string{"0123456789abcdef", "short"}, DefaultKeyRingConfig())

	snap := ring.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "01234567...", snap[0].Key)
	assert.Equal(t, "sh...", snap[1].Key)
	for _, item := range snap {
		assert.False(t, strings.Contains(item.Key, "0123456789abcdef"))
	}
}
