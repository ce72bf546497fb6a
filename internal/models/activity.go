package models

import "time"

// EventKind discriminates the closed set of activity event variants.
type EventKind string

const (
	EventKindReview EventKind = "review"
	EventKindWatch  EventKind = "watch"
	EventKindList   EventKind = "list"
)

// ActivityEvent is one item in an activity feed: a tagged union over the
// three event variants. Exactly one of Review, Watch, or List is non-nil,
// matching Kind. Events are immutable once created.
type ActivityEvent struct {
	Kind      EventKind `json:"kind"`
	ID        string    `json:"id"` // source row id, unique within a kind
	ProfileID uint      `json:"profile_id"`
	Timestamp time.Time `json:"timestamp"`

	// Actor enrichment.
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`

	// Film enrichment, absent for list events.
	TmdbID    int    `json:"tmdb_id,omitempty"`
	FilmTitle string `json:"film_title,omitempty"`
	PosterURL string `json:"poster_url,omitempty"`

	Review *ReviewActivity `json:"review,omitempty"`
	Watch  *WatchActivity  `json:"watch,omitempty"`
	List   *ListActivity   `json:"list,omitempty"`
}

// ReviewActivity is the payload of a review event.
type ReviewActivity struct {
	ReviewID      uint    `json:"review_id"`
	Rating        float64 `json:"rating"`
	Excerpt       string  `json:"excerpt,omitempty"`
	LikedByViewer bool    `json:"liked_by_viewer,omitempty"`
}

// WatchActivity is the payload of a watch event.
type WatchActivity struct {
	Watched bool `json:"watched"`
}

// ListActivity is the payload of a list-created event.
type ListActivity struct {
	ListID   string `json:"list_id"`
	ListName string `json:"list_name"`
}

// Key is the stable secondary sort key used to totally order events that
// share a timestamp. The kind prefix keeps ids from different source tables
// from colliding.
func (e ActivityEvent) Key() string {
	return string(e.Kind) + ":" + e.ID
}
