package audit

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailRecordAndRead(t *testing.T) {
	trail, err := NewTrail(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)

	require.NoError(t, trail.Record("add", "tcp/2201", map[string]any{
		"target": "10.0.0.5:22",
	}, nil))
	require.NoError(t, trail.Record("remove", "tcp/2201", nil, errors.New("iptables exited 4")))

	events, err := trail.Read()
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "add", events[0].Action)
	assert.Equal(t, "tcp/2201", events[0].Resource)
	assert.Equal(t, "ok", events[0].Status)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())

	assert.Equal(t, "failed", events[1].Status)
	assert.Contains(t, events[1].Error, "iptables")
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestTrailReadMissingFile(t *testing.T) {
	trail, err := NewTrail(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)

	events, err := trail.Read()
	require.NoError(t, err)
	assert.Empty(t, events)
}
