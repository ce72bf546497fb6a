package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/onlyfilms/backend/internal/auth"
	"github.com/onlyfilms/backend/internal/feed"
	"github.com/onlyfilms/backend/internal/models"
)

type staticSource struct {
	events []models.ActivityEvent
}

func (s *staticSource) FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error) {
	var out []models.ActivityEvent
	for _, e := range s.events {
		if profileIDs != nil {
			match := false
			for _, id := range profileIDs {
				if e.ProfileID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].Key() < out[j].Key()
	})
	if len(out) > fetch {
		out = out[:fetch]
	}
	return out, nil
}

type staticFollows struct {
	following map[uint][]uint
}

func (s *staticFollows) GetFollowingIDs(profileID uint) ([]uint, error) {
	return s.following[profileID], nil
}

type fakeWatchRepo struct {
	created []*models.WatchEvent
}

func (r *fakeWatchRepo) CreateWatchEvent(event *models.WatchEvent) error {
	event.ID = uint(len(r.created) + 1)
	r.created = append(r.created, event)
	return nil
}

func (r *fakeWatchRepo) GetWatchEventByID(id uint) (*models.WatchEvent, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeWatchRepo) GetWatchEventsByProfile(profileID uint, limit, offset int) ([]models.WatchEvent, error) {
	return nil, nil
}

func (r *fakeWatchRepo) DeleteWatchEvent(id, profileID uint) error { return gorm.ErrRecordNotFound }

func (r *fakeWatchRepo) HasWatched(profileID, filmID uint) (bool, error) {
	for _, e := range r.created {
		if e.ProfileID == profileID && e.FilmID == filmID && e.Watched {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWatchRepo) FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error) {
	return nil, nil
}

type fakeFilmRepo struct {
	films  map[int]*models.Film
	nextID uint
}

func newFakeFilmRepo() *fakeFilmRepo {
	return &fakeFilmRepo{films: map[int]*models.Film{}, nextID: 1}
}

func (r *fakeFilmRepo) FindOrCreate(film *models.Film) (*models.Film, error) {
	if existing, ok := r.films[film.TmdbID]; ok {
		return existing, nil
	}
	film.ID = r.nextID
	r.nextID++
	r.films[film.TmdbID] = film
	return film, nil
}

func (r *fakeFilmRepo) GetByID(id uint) (*models.Film, error) {
	for _, f := range r.films {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFilmRepo) GetByTmdbID(tmdbID int) (*models.Film, error) {
	if f, ok := r.films[tmdbID]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFilmRepo) GetByTmdbIDs(tmdbIDs []int) ([]models.Film, error) {
	var out []models.Film
	for _, id := range tmdbIDs {
		if f, ok := r.films[id]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFilmRepo) Save(film *models.Film) error { return nil }

type fakeLikeRepo struct {
	liked map[uint]map[uint]bool // profileID -> reviewID
}

func (r *fakeLikeRepo) CreateLike(like *models.Like) error          { return nil }
func (r *fakeLikeRepo) DeleteLike(profileID, reviewID uint) error   { return nil }
func (r *fakeLikeRepo) CountForReview(reviewID uint) (int64, error) { return 0, nil }

func (r *fakeLikeRepo) IsLikedBy(reviewID, profileID uint) (bool, error) {
	return r.liked[profileID][reviewID], nil
}

func (r *fakeLikeRepo) LikedReviewIDs(profileID uint, reviewIDs []uint) (map[uint]bool, error) {
	out := map[uint]bool{}
	for _, id := range reviewIDs {
		if r.liked[profileID][id] {
			out[id] = true
		}
	}
	return out, nil
}

func reviewEvent(id uint, profileID uint, ts time.Time) models.ActivityEvent {
	return models.ActivityEvent{
		Kind:        models.EventKindReview,
		ID:          strconv.FormatUint(uint64(id), 10),
		ProfileID:   profileID,
		Timestamp:   ts,
		DisplayName: "someone",
		Review:      &models.ReviewActivity{ReviewID: id, Rating: 4},
	}
}

func watchFeedEvent(id uint, profileID uint, ts time.Time) models.ActivityEvent {
	return models.ActivityEvent{
		Kind:        models.EventKindWatch,
		ID:          strconv.FormatUint(uint64(id), 10),
		ProfileID:   profileID,
		Timestamp:   ts,
		DisplayName: "someone",
		Watch:       &models.WatchActivity{Watched: true},
	}
}

type feedEnvelope struct {
	Success bool                   `json:"success"`
	Data    []models.ActivityEvent `json:"data"`
}

func newActivityHandler(reviews, watches, lists []models.ActivityEvent, follows map[uint][]uint, likes *fakeLikeRepo) *ActivityHandler {
	if likes == nil {
		likes = &fakeLikeRepo{}
	}
	agg := feed.NewAggregator(
		&staticSource{events: reviews},
		&staticSource{events: watches},
		&staticSource{events: lists},
		&staticFollows{following: follows},
		newFakeProfileRepo(),
	)
	return NewActivityHandler(agg, &fakeWatchRepo{}, newFakeFilmRepo(), likes)
}

func getFeed(t *testing.T, handler echo.HandlerFunc, target string, viewer *auth.Claims, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	if viewer != nil {
		c.Set("viewer", viewer)
	}
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRecentFeedMergesSourcesNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := newActivityHandler(
		[]models.ActivityEvent{reviewEvent(1, 1, base.Add(2 * time.Minute))},
		[]models.ActivityEvent{watchFeedEvent(1, 2, base.Add(3 * time.Minute))},
		[]models.ActivityEvent{},
		nil, nil,
	)

	rec := getFeed(t, h.RecentFeed, "/api/activity/recent", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var env feedEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 2 {
		t.Fatalf("got %d events, want 2", len(env.Data))
	}
	if env.Data[0].Kind != models.EventKindWatch || env.Data[1].Kind != models.EventKindReview {
		t.Errorf("order = [%s, %s], want newest (watch) first", env.Data[0].Kind, env.Data[1].Kind)
	}
}

func TestPersonalFeedScopedToFollowed(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Viewer 5 follows 1 but not 2.
	h := newActivityHandler(
		[]models.ActivityEvent{
			reviewEvent(1, 1, base.Add(time.Minute)),
			reviewEvent(2, 2, base.Add(2 * time.Minute)),
		},
		nil, nil,
		map[uint][]uint{5: {1}},
		nil,
	)

	viewer := &auth.Claims{ProfileID: 5}
	rec := getFeed(t, h.PersonalFeed, "/api/activity/feed", viewer)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var env feedEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 1 {
		t.Fatalf("got %d events, want 1", len(env.Data))
	}
	if env.Data[0].ProfileID != 1 {
		t.Errorf("event actor = %d, want followed profile 1", env.Data[0].ProfileID)
	}
}

func TestPersonalFeedEmptyWhenFollowingNobody(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := newActivityHandler(
		[]models.ActivityEvent{reviewEvent(1, 1, base)},
		nil, nil,
		map[uint][]uint{},
		nil,
	)

	rec := getFeed(t, h.PersonalFeed, "/api/activity/feed", &auth.Claims{ProfileID: 5})
	var env feedEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 0 {
		t.Errorf("got %d events, want an empty feed", len(env.Data))
	}
}

func TestProfileFeedPagination(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var reviews []models.ActivityEvent
	for i := uint(1); i <= 5; i++ {
		reviews = append(reviews, reviewEvent(i, 1, base.Add(time.Duration(i)*time.Minute)))
	}
	h := newActivityHandler(reviews, nil, nil, nil, nil)

	rec := getFeed(t, h.ProfileFeed, "/api/activity/user/1?limit=2&offset=2", nil, "id", "1")
	var env feedEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 2 {
		t.Fatalf("got %d events, want 2", len(env.Data))
	}
	// The newest two were skipped by the offset.
	if env.Data[0].Review.ReviewID != 3 || env.Data[1].Review.ReviewID != 2 {
		t.Errorf("page = [%d, %d], want [3, 2]",
			env.Data[0].Review.ReviewID, env.Data[1].Review.ReviewID)
	}
}

func TestFeedRejectsBadPagination(t *testing.T) {
	h := newActivityHandler(nil, nil, nil, nil, nil)
	rec := getFeed(t, h.RecentFeed, "/api/activity/recent?limit=-1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestFeedMarksReviewsLikedByViewer(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	likes := &fakeLikeRepo{liked: map[uint]map[uint]bool{5: {2: true}}}
	h := newActivityHandler(
		[]models.ActivityEvent{
			reviewEvent(1, 1, base.Add(time.Minute)),
			reviewEvent(2, 1, base),
		},
		nil, nil, nil, likes,
	)

	rec := getFeed(t, h.RecentFeed, "/api/activity/recent", &auth.Claims{ProfileID: 5})
	var env feedEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 2 {
		t.Fatalf("got %d events, want 2", len(env.Data))
	}
	if env.Data[0].Review.LikedByViewer {
		t.Error("review 1 marked liked, viewer never liked it")
	}
	if !env.Data[1].Review.LikedByViewer {
		t.Error("review 2 not marked liked")
	}
}

func TestLogWatchCreatesFilmAndEvent(t *testing.T) {
	watches := &fakeWatchRepo{}
	films := newFakeFilmRepo()
	agg := feed.NewAggregator(&staticSource{}, &staticSource{}, &staticSource{}, &staticFollows{}, newFakeProfileRepo())
	h := NewActivityHandler(agg, watches, films, &fakeLikeRepo{})

	e := echo.New()
	body := `{"tmdbId":603,"filmTitle":"The Matrix","releaseYear":1999}`
	req := httptest.NewRequest(http.MethodPost, "/api/activity/watch", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("viewer", &auth.Claims{ProfileID: 7})

	if err := h.LogWatch(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if len(watches.created) != 1 {
		t.Fatalf("created %d watch events, want 1", len(watches.created))
	}
	if watches.created[0].ProfileID != 7 {
		t.Errorf("watch profile = %d, want viewer 7", watches.created[0].ProfileID)
	}
	if _, err := films.GetByTmdbID(603); err != nil {
		t.Errorf("film row was not created: %v", err)
	}
}
