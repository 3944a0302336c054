package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

func eventURI(id int64) string { return fmt.Sprintf("/events/%d", id) }

// project derives the read view of one event: confirmed count and vote
// totals come from the store, views from the stats service (best-effort).
func (s *Service) project(ctx context.Context, e *domain.Event) (*domain.EventView, error) {
	confirmed, err := s.events.ConfirmedCount(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	votes, err := s.events.VoteCounts(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	v := domain.Snapshot(e, confirmed, votes.Likes, votes.Dislikes, s.viewsFor(ctx, e.ID))
	return &v, nil
}

// viewsFor reads the view count through the cache; a stats-service failure
// degrades to zero views, never to an error.
func (s *Service) viewsFor(ctx context.Context, eventID int64) int64 {
	if s.cache != nil {
		if views, err := s.cache.GetViews(ctx, eventID); err == nil {
			return views
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			zlog.Warn().Err(err).Int64("event_id", eventID).Msg("views cache read failed")
		}
	}

	if s.stats == nil {
		return 0
	}
	uri := eventURI(eventID)
	views, err := s.stats.FetchViews(ctx, []string{uri})
	if err != nil {
		zlog.Warn().Err(err).Str("uri", uri).Msg("fetch views failed")
		return 0
	}

	n := views[uri]
	if s.cache != nil {
		if err := s.cache.SetViews(ctx, eventID, n); err != nil {
			zlog.Warn().Err(err).Int64("event_id", eventID).Msg("views cache write failed")
		}
	}
	return n
}

// projectMany batches the count queries and one stats call for a page of events.
func (s *Service) projectMany(ctx context.Context, events []*domain.Event) ([]domain.EventView, error) {
	if len(events) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(events))
	uris := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
		uris[i] = eventURI(e.ID)
	}

	confirmed, err := s.events.ConfirmedCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	votes, err := s.events.VoteCountsBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	var views map[string]int64
	if s.stats != nil {
		views, err = s.stats.FetchViews(ctx, uris)
		if err != nil {
			zlog.Warn().Err(err).Msg("fetch views failed")
			views = nil
		}
	}

	out := make([]domain.EventView, len(events))
	for i, e := range events {
		vt := votes[e.ID]
		out[i] = domain.Snapshot(e, confirmed[e.ID], vt.Likes, vt.Dislikes, views[eventURI(e.ID)])
	}
	return out, nil
}
