package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/pet-feeder-service/pkg/common"
	_ "liyu1981.xyz/pet-feeder-service/pkg/testing"
)

func TestMemoryStreamLevels(t *testing.T) {
	common.SetTestLoggerNop()

	m := NewMemoryStream()
	defer m.Close()

	var got []float64
	require.NoError(t, m.SubscribeLevel(PathFoodLevel, func(v float64) {
		got = append(got, v)
	}))

	m.PushLevel(PathFoodLevel, 80)
	m.PushLevel(PathFoodLevel, 42.5)
	assert.Equal(t, []float64{80, 42.5}, got)

	// a late subscriber receives the current value right away
	var late float64
	require.NoError(t, m.SubscribeLevel(PathFoodLevel, func(v float64) { late = v }))
	assert.Equal(t, 42.5, late)
}

func TestMemoryStreamWriteField(t *testing.T) {
	common.SetTestLoggerNop()

	m := NewMemoryStream()
	defer m.Close()

	snaps := make(chan ErrorSnapshot, 8)
	require.NoError(t, m.SubscribeErrors(PathFeederError, func(s ErrorSnapshot) {
		snaps <- s
	}))

	require.NoError(t, m.WriteField(PathFeederError, FieldStatus, 1))
	require.NoError(t, m.WriteField(PathFeederError, FieldTimestamp, "2024-01-01 08:00:00"))

	// the value itself is readable immediately
	v, ok := m.Field(PathFeederError, FieldStatus)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// subscribers see each write as a merged snapshot, in order
	first := recvSnapshot(t, snaps)
	assert.Equal(t, ErrorSnapshot{Status: 1}, first)

	second := recvSnapshot(t, snaps)
	assert.Equal(t, ErrorSnapshot{Status: 1, Timestamp: "2024-01-01 08:00:00"}, second)
}

func TestMemoryStreamSubscribeKnownPath(t *testing.T) {
	common.SetTestLoggerNop()

	m := NewMemoryStream()
	defer m.Close()

	require.NoError(t, m.WriteField(PathConnectionError, FieldStatus, 1))
	require.NoError(t, m.WriteField(PathConnectionError, FieldMonitor, 1))

	var initial ErrorSnapshot
	require.NoError(t, m.SubscribeErrors(PathConnectionError, func(s ErrorSnapshot) {
		initial = s
	}))
	assert.Equal(t, ErrorSnapshot{Status: 1, Monitor: 1}, initial)
}

func TestMemoryStreamCloseIdempotent(t *testing.T) {
	common.SetTestLoggerNop()

	m := NewMemoryStream()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	// writes after close are dropped, not panics
	assert.NoError(t, m.WriteField(PathFeederError, FieldStatus, 1))
}

func recvSnapshot(t *testing.T, ch chan ErrorSnapshot) ErrorSnapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
		return ErrorSnapshot{}
	}
}
