// Package feed merges the three independently stored activity streams
// (reviews, watch events, list creations) into one time-ordered, paginated
// feed scoped to an audience.
package feed

import (
	"context"
	"fmt"

	"github.com/onlyfilms/backend/internal/models"
)

// EventSource is one independently queryable activity stream. FeedEvents
// must return at most fetch events ordered timestamp descending, ties broken
// by id ascending. A nil profileIDs means no actor filter.
type EventSource interface {
	FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error)
}

// FollowGraph resolves a viewer's outgoing follow edges.
type FollowGraph interface {
	GetFollowingIDs(profileID uint) ([]uint, error)
}

// ProfileDirectory resolves public profile summaries for actor enrichment.
type ProfileDirectory interface {
	SummariesByIDs(ids []uint) (map[uint]models.ProfileSummary, error)
}

// ScopeKind selects the audience of a feed query.
type ScopeKind int

const (
	// ScopeGlobal includes events from everyone.
	ScopeGlobal ScopeKind = iota
	// ScopeProfile includes events acted by a single profile.
	ScopeProfile
	// ScopeViewer includes events acted by profiles the viewer follows.
	ScopeViewer
)

// Scope is the audience selector for a feed query.
type Scope struct {
	Kind      ScopeKind
	ProfileID uint
}

// Global selects all events.
func Global() Scope { return Scope{Kind: ScopeGlobal} }

// ForProfile selects events acted by the given profile.
func ForProfile(id uint) Scope { return Scope{Kind: ScopeProfile, ProfileID: id} }

// ForViewer selects events acted by profiles the viewer follows.
func ForViewer(viewerID uint) Scope { return Scope{Kind: ScopeViewer, ProfileID: viewerID} }

// Aggregator produces ranked activity feeds from the three event sources.
type Aggregator struct {
	reviews  EventSource
	watches  EventSource
	lists    EventSource
	follows  FollowGraph
	profiles ProfileDirectory
}

// NewAggregator creates an Aggregator over the given collaborators.
func NewAggregator(reviews, watches, lists EventSource, follows FollowGraph, profiles ProfileDirectory) *Aggregator {
	return &Aggregator{
		reviews:  reviews,
		watches:  watches,
		lists:    lists,
		follows:  follows,
		profiles: profiles,
	}
}

// GetFeed returns one page of the merged feed for the given scope, ordered
// timestamp descending with ties broken by event key ascending so repeated
// queries paginate stably.
//
// Pagination is applied to the merged sequence, never per source: each
// source is asked for a limit+offset prefix, the prefixes are k-way merged,
// and the page is sliced from the merged result. Slicing per source first
// drops or duplicates items whenever the sources have different densities
// near a page boundary.
func (a *Aggregator) GetFeed(ctx context.Context, scope Scope, limit, offset int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		return []models.ActivityEvent{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	var filter []uint
	switch scope.Kind {
	case ScopeGlobal:
		filter = nil
	case ScopeProfile:
		filter = []uint{scope.ProfileID}
	case ScopeViewer:
		ids, err := a.follows.GetFollowingIDs(scope.ProfileID)
		if err != nil {
			return nil, fmt.Errorf("resolving follow graph: %w", err)
		}
		if len(ids) == 0 {
			// Following nobody is a valid, empty feed.
			return []models.ActivityEvent{}, nil
		}
		filter = ids
	}

	// A merge-sufficient prefix: each source alone could fill the page.
	fetch := limit + offset

	streams := make([][]models.ActivityEvent, 0, 3)
	for _, source := range []EventSource{a.reviews, a.watches, a.lists} {
		events, err := source.FeedEvents(ctx, filter, fetch)
		if err != nil {
			return nil, fmt.Errorf("fetching feed events: %w", err)
		}
		streams = append(streams, events)
	}

	merged := merge(streams)
	if offset >= len(merged) {
		return []models.ActivityEvent{}, nil
	}
	merged = merged[offset:]
	if len(merged) > limit {
		merged = merged[:limit]
	}

	if err := a.enrichActors(merged); err != nil {
		return nil, fmt.Errorf("enriching feed actors: %w", err)
	}
	return merged, nil
}

// merge performs a k-way merge of streams that are each already ordered by
// (timestamp desc, key asc), producing one sequence in the same total order.
func merge(streams [][]models.ActivityEvent) []models.ActivityEvent {
	total := 0
	for _, s := range streams {
		total += len(s)
	}
	out := make([]models.ActivityEvent, 0, total)

	heads := make([]int, len(streams))
	for {
		best := -1
		for i, s := range streams {
			if heads[i] >= len(s) {
				continue
			}
			if best == -1 || before(s[heads[i]], streams[best][heads[best]]) {
				best = i
			}
		}
		if best == -1 {
			return out
		}
		out = append(out, streams[best][heads[best]])
		heads[best]++
	}
}

// before reports whether a sorts ahead of b: newer first, identical
// timestamps ordered by event key ascending.
func before(a, b models.ActivityEvent) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.Key() < b.Key()
}

// enrichActors fills in display names for events whose source could not join
// against the profile table (list events live in MongoDB).
func (a *Aggregator) enrichActors(events []models.ActivityEvent) error {
	var missing []uint
	seen := make(map[uint]bool)
	for i := range events {
		if events[i].DisplayName == "" && !seen[events[i].ProfileID] {
			seen[events[i].ProfileID] = true
			missing = append(missing, events[i].ProfileID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	summaries, err := a.profiles.SummariesByIDs(missing)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].DisplayName != "" {
			continue
		}
		if s, ok := summaries[events[i].ProfileID]; ok {
			events[i].DisplayName = s.DisplayName
			events[i].AvatarURL = s.AvatarURL
		}
	}
	return nil
}
