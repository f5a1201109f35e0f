package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampMarshalKeepsThreeDigits(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 10, 18, 8, 37, 1, 300_000_000, time.UTC), `"2026-10-18T08:37:01.300Z"`},
		{time.Date(2026, 10, 18, 8, 37, 1, 0, time.UTC), `"2026-10-18T08:37:01.000Z"`},
		{time.Date(2026, 10, 18, 9, 30, 0, 123_456_789, time.FixedZone("CEST", 2*3600)), `"2026-10-18T07:30:00.123Z"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(NewTimestamp(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestTimestampUnmarshal(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-10-18T09:37:01.3+01:00"`), &ts))
	assert.Equal(t, NewTimestamp(time.Date(2026, 10, 18, 8, 37, 1, 300_000_000, time.UTC)), ts)

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestRecipeTimestampsRoundTrip(t *testing.T) {
	now := NewTimestamp(time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC))
	in := Recipe{ID: "a", Title: "Toast", CreatedAt: now, UpdatedAt: now}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"created_at":"2026-10-18T08:00:00.000Z"`)

	var out Recipe
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
