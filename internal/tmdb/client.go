// Package tmdb is the client for the external movie-metadata provider. It
// proxies read endpoints, caches responses for a fixed freshness window, and
// exposes the critic rating population for a title.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/onlyfilms/backend/internal/rating"
)

// Config holds the client settings taken from application config.
type Config struct {
	BaseURL     string
	AccessToken string
	CacheTTL    time.Duration
	Timeout     time.Duration
}

// Client talks to the metadata provider. Responses are cached by request
// signature for CacheTTL; concurrent misses for the same key are coalesced
// into a single upstream fetch. The client is constructed once at startup
// and shared; it holds no other mutable state.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cache   *ttlCache
	group   singleflight.Group
	log     *zap.SugaredLogger
}

// NewClient creates a Client.
func NewClient(cfg Config, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: cfg.Timeout},
		cache:   newTTLCache(cfg.CacheTTL),
		log:     log,
	}
}

// Popular returns a page of popular movies.
func (c *Client) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/popular", pageQuery(page))
}

// TopRated returns a page of top-rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/top_rated", pageQuery(page))
}

// NowPlaying returns a page of movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/now_playing", pageQuery(page))
}

// Upcoming returns a page of upcoming movies.
func (c *Client) Upcoming(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/upcoming", pageQuery(page))
}

// Search searches movies by title.
func (c *Client) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	q := pageQuery(page)
	q.Set("query", query)
	return c.get(ctx, "/search/movie", q)
}

// ByGenre returns a page of movies in a genre.
func (c *Client) ByGenre(ctx context.Context, genreID, page int) (json.RawMessage, error) {
	q := pageQuery(page)
	q.Set("with_genres", strconv.Itoa(genreID))
	q.Set("sort_by", "popularity.desc")
	return c.get(ctx, "/discover/movie", q)
}

// Genres returns the provider's movie genre list.
func (c *Client) Genres(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/genre/movie/list", url.Values{})
}

// Details returns the full detail document for a movie.
func (c *Client) Details(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+strconv.Itoa(id), url.Values{})
}

// Credits returns cast and crew for a movie.
func (c *Client) Credits(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+strconv.Itoa(id)+"/credits", url.Values{})
}

// Videos returns trailers and clips for a movie.
func (c *Client) Videos(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+strconv.Itoa(id)+"/videos", url.Values{})
}

// Person returns the detail document for an actor or director with their
// movie credits appended, one upstream call for both.
func (c *Client) Person(ctx context.Context, id int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("language", "en-US")
	q.Set("append_to_response", "movie_credits")
	return c.get(ctx, "/person/"+strconv.Itoa(id), q)
}

// Similar returns movies similar to the given one.
func (c *Client) Similar(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+strconv.Itoa(id)+"/similar", url.Values{})
}

// MovieRating returns the critic rating population for a movie. The
// provider scores on 0-10; the population is halved onto the 0-5 scale the
// combiner works in.
func (c *Client) MovieRating(ctx context.Context, id int) (rating.Population, error) {
	raw, err := c.Details(ctx, id)
	if err != nil {
		return rating.Population{}, err
	}

	var detail struct {
		VoteAverage float64 `json:"vote_average"`
		VoteCount   int     `json:"vote_count"`
	}
	if err := json.Unmarshal(raw, &detail); err != nil {
		return rating.Population{}, fmt.Errorf("parsing movie detail: %w", err)
	}
	return rating.Population{Score: detail.VoteAverage / 2, Count: detail.VoteCount}, nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("language", "en-US")
	return q
}

// get performs a cached GET. The cache key is the request signature (path
// plus encoded query). A miss goes upstream exactly once per key at a time;
// waiters share the result.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	key := path
	if encoded := query.Encode(); encoded != "" {
		key += "?" + encoded
	}

	if data, ok := c.cache.get(key); ok {
		return data, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		data, err := c.fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		c.cache.set(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}

func (c *Client) fetch(ctx context.Context, pathAndQuery string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warnw("metadata provider returned non-OK status", "path", pathAndQuery, "status", resp.StatusCode)
		return nil, fmt.Errorf("metadata provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
