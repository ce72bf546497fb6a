package auth

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		method string
		want   Access
	}{
		{"/health", "GET", Public},
		{"/api/health", "GET", Public},
		{"/auth/register", "POST", Public},
		{"/auth/login", "POST", Public},
		{"/tmdb/sync/genres", "POST", Public},

		{"/movies/popular", "GET", Public},
		{"/movies/603", "GET", Public},
		{"/genres", "GET", Public},
		{"/reviews/film/603", "GET", Public},
		{"/lists/12", "GET", Public},
		{"/favorites/profile/3", "GET", Public},
		{"/comments/review/9", "GET", Public},
		{"/follows/check/4", "GET", Public},
		{"/likes/review/9", "GET", Public},
		{"/users/5", "GET", Public},
		{"/users/5/followers", "GET", Public},
		{"/activity/recent", "GET", Public},
		{"/activity/user/3", "GET", Public},
		{"/activity/42", "GET", Public},
		{"/person/287", "GET", Public},

		// Prefix rules stop at segment boundaries.
		{"/usersecret", "GET", Protected},
		{"/moviesX/popular", "GET", Protected},
		{"/listsadmin", "GET", Protected},
		{"/personal", "GET", Protected},

		// The two GET exceptions.
		{"/activity/feed", "GET", Protected},
		{"/api/activity/feed", "GET", Protected},
		{"/users/me", "GET", Protected},

		// Writes are protected everywhere outside auth and tmdb.
		{"/reviews", "POST", Protected},
		{"/activity/watch", "POST", Protected},
		{"/follows/3", "POST", Protected},
		{"/follows/3", "DELETE", Protected},
		{"/lists", "POST", Protected},
		{"/users/me", "PUT", Protected},
		{"/likes/review/9", "POST", Protected},

		// The watchlist is viewer-scoped even under GET.
		{"/watchlist", "GET", Protected},
		{"/watchlist/check/603", "GET", Protected},
		{"/watchlist/603", "POST", Protected},

		{"/", "GET", Protected},
		{"/unknown", "GET", Protected},
		{"/unknown", "POST", Protected},
	}

	for _, tt := range tests {
		if got := Classify(tt.path, tt.method); got != tt.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", tt.path, tt.method, got, tt.want)
		}
	}
}

// Classification must be total: any (path, method) pair yields an answer
// without panicking.
func TestClassifyIsTotal(t *testing.T) {
	paths := []string{"", "/", "//", "/api", "/api/", "/health/extra", "/activity", "/activity/", "/users", "/..", "/%2e%2e", "/AUTH/login", "/movies" + string(rune(0))}
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD", "TRACE", "made-up", ""}

	for _, p := range paths {
		for _, m := range methods {
			got := Classify(p, m)
			if got != Public && got != Protected {
				t.Fatalf("Classify(%q, %q) = %v, not a valid Access", p, m, got)
			}
		}
	}
}
