package stats

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type memHits struct {
	nextID int64
	hits   []EndpointHit
}

func (m *memHits) SaveHit(ctx context.Context, h *EndpointHit) error {
	m.nextID++
	h.ID = m.nextID
	m.hits = append(m.hits, *h)
	return nil
}

func (m *memHits) CountHits(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error) {
	type key struct{ app, uri string }
	counts := map[key]map[string]int64{}
	for _, h := range m.hits {
		if h.Timestamp.Before(start) || h.Timestamp.After(end) {
			continue
		}
		if len(uris) > 0 && !contains(uris, h.URI) {
			continue
		}
		k := key{h.App, h.URI}
		if counts[k] == nil {
			counts[k] = map[string]int64{}
		}
		counts[k][h.IP]++
	}

	var out []ViewStats
	for k, byIP := range counts {
		var n int64
		if unique {
			n = int64(len(byIP))
		} else {
			for _, c := range byIP {
				n += c
			}
		}
		out = append(out, ViewStats{App: k.app, URI: k.uri, Hits: n})
	}
	return out, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

var hitTime = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func TestRecordHit(t *testing.T) {
	t.Run("valid hit is stored normalized", func(t *testing.T) {
		repo := &memHits{}
		svc := New(repo)

		h, err := svc.RecordHit(context.Background(), " ewm-main-service ", "/events/1", "10.0.0.1", hitTime)
		require.NoError(t, err)
		assert.Equal(t, int64(1), h.ID)
		assert.Equal(t, "ewm-main-service", h.App)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		svc := New(&memHits{})

		for name, args := range map[string][3]string{
			"app": {"", "/events/1", "10.0.0.1"},
			"uri": {"app", "", "10.0.0.1"},
			"ip":  {"app", "/events/1", ""},
		} {
			_, err := svc.RecordHit(context.Background(), args[0], args[1], args[2], hitTime)
			assert.Equal(t, domain.CodeValidation, domain.CodeOf(err), name)
		}

		_, err := svc.RecordHit(context.Background(), "app", "/events/1", "10.0.0.1", time.Time{})
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	})
}

func TestStats(t *testing.T) {
	seed := func(repo *memHits) {
		for _, h := range []EndpointHit{
			{App: "a", URI: "/events/1", IP: "10.0.0.1", Timestamp: hitTime},
			{App: "a", URI: "/events/1", IP: "10.0.0.1", Timestamp: hitTime.Add(time.Minute)},
			{App: "a", URI: "/events/1", IP: "10.0.0.2", Timestamp: hitTime.Add(2 * time.Minute)},
			{App: "a", URI: "/events/2", IP: "10.0.0.1", Timestamp: hitTime},
		} {
			cp := h
			repo.hits = append(repo.hits, cp)
		}
	}

	t.Run("counts all hits", func(t *testing.T) {
		repo := &memHits{}
		seed(repo)
		svc := New(repo)

		out, err := svc.Stats(context.Background(), hitTime.Add(-time.Hour), hitTime.Add(time.Hour), []string{"/events/1"}, false)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, int64(3), out[0].Hits)
	})

	t.Run("unique counts each ip once", func(t *testing.T) {
		repo := &memHits{}
		seed(repo)
		svc := New(repo)

		out, err := svc.Stats(context.Background(), hitTime.Add(-time.Hour), hitTime.Add(time.Hour), []string{"/events/1"}, true)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, int64(2), out[0].Hits)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		svc := New(&memHits{})

		_, err := svc.Stats(context.Background(), hitTime, hitTime.Add(-time.Hour), nil, false)
		require.Error(t, err)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
		assert.True(t, strings.Contains(err.Error(), "precede"))
	})

	t.Run("zero bounds are rejected", func(t *testing.T) {
		svc := New(&memHits{})

		_, err := svc.Stats(context.Background(), time.Time{}, hitTime, nil, false)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	})
}
