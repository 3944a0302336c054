package wiretime_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/wiretime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_FixedPattern(t *testing.T) {
	ts := time.Date(2026, 8, 30, 18, 4, 5, 999000000, time.UTC)
	b, err := json.Marshal(wiretime.New(ts))
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-30 18:04:05"`, string(b))
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	var ts wiretime.Time
	require.NoError(t, json.Unmarshal([]byte(`"2026-08-30 18:04:05"`), &ts))
	assert.Equal(t, time.Date(2026, 8, 30, 18, 4, 5, 0, time.UTC), ts.Time)
}

func TestUnmarshal_RejectsRFC3339(t *testing.T) {
	var ts wiretime.Time
	assert.Error(t, json.Unmarshal([]byte(`"2026-08-30T18:04:05Z"`), &ts))
}

func TestMarshal_ZeroIsNull(t *testing.T) {
	b, err := json.Marshal(wiretime.Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
