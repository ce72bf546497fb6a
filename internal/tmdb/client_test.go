package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, upstream http.HandlerFunc, ttl time.Duration) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL:     server.URL,
		AccessToken: "test-token",
		CacheTTL:    ttl,
		Timeout:     2 * time.Second,
	}, zap.NewNop().Sugar())
	return client, server
}

func TestClientCachesBySignature(t *testing.T) {
	var hits int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprintf(w, `{"page":%q}`, r.URL.Query().Get("page"))
	}, time.Minute)

	ctx := context.Background()
	first, err := client.Popular(ctx, 1)
	if err != nil {
		t.Fatalf("Popular returned error: %v", err)
	}
	second, err := client.Popular(ctx, 1)
	if err != nil {
		t.Fatalf("Popular returned error: %v", err)
	}

	if atomic.LoadInt64(&hits) != 1 {
		t.Errorf("upstream hit %d times for a cached request, want 1", hits)
	}
	if string(first) != string(second) {
		t.Errorf("cached response differs: %s vs %s", first, second)
	}

	// A different page is a different signature.
	if _, err := client.Popular(ctx, 2); err != nil {
		t.Fatalf("Popular returned error: %v", err)
	}
	if atomic.LoadInt64(&hits) != 2 {
		t.Errorf("upstream hit %d times across two signatures, want 2", hits)
	}
}

func TestClientCacheExpires(t *testing.T) {
	var hits int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, `{"results":[]}`)
	}, 30*time.Millisecond)

	ctx := context.Background()
	if _, err := client.TopRated(ctx, 1); err != nil {
		t.Fatalf("TopRated returned error: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	if _, err := client.TopRated(ctx, 1); err != nil {
		t.Fatalf("TopRated returned error: %v", err)
	}

	if atomic.LoadInt64(&hits) != 2 {
		t.Errorf("upstream hit %d times after TTL expiry, want 2", hits)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}, time.Minute)

	if _, err := client.Genres(context.Background()); err != nil {
		t.Fatalf("Genres returned error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want \"Bearer test-token\"", gotAuth)
	}
}

func TestClientUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, time.Minute)

	if _, err := client.Details(context.Background(), 603); err == nil {
		t.Fatal("expected error for non-OK upstream status")
	}

	// Errors must not be cached.
	client2, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"vote_average":8.2,"vote_count":1200}`)
	}, time.Minute)
	if _, err := client2.Details(context.Background(), 603); err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
}

func TestPersonRequestsCreditsAppended(t *testing.T) {
	var gotPath, gotAppend string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAppend = r.URL.Query().Get("append_to_response")
		fmt.Fprint(w, `{"id":287,"name":"Brad Pitt"}`)
	}, time.Minute)

	raw, err := client.Person(context.Background(), 287)
	if err != nil {
		t.Fatalf("Person returned error: %v", err)
	}
	if gotPath != "/person/287" {
		t.Errorf("path = %q, want /person/287", gotPath)
	}
	if gotAppend != "movie_credits" {
		t.Errorf("append_to_response = %q, want movie_credits", gotAppend)
	}
	if len(raw) == 0 {
		t.Error("expected a non-empty person document")
	}
}

func TestMovieRating(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":603,"vote_average":8.2,"vote_count":25000}`)
	}, time.Minute)

	pop, err := client.MovieRating(context.Background(), 603)
	if err != nil {
		t.Fatalf("MovieRating returned error: %v", err)
	}
	if pop.Score != 4.1 {
		t.Errorf("Score = %v, want 4.1 (vote_average halved)", pop.Score)
	}
	if pop.Count != 25000 {
		t.Errorf("Count = %d, want 25000", pop.Count)
	}
}
