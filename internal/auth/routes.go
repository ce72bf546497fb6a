package auth

import "strings"

// Access is the visibility class of a route.
type Access int

const (
	// Public routes are served regardless of credentials.
	Public Access = iota
	// Protected routes require a valid identity token.
	Protected
)

func (a Access) String() string {
	if a == Public {
		return "public"
	}
	return "protected"
}

// rule is one entry in the ordered classification table. A zero method
// matches any method; exact controls whether path is matched exactly or as a
// prefix.
type rule struct {
	method string
	path   string
	exact  bool
	access Access
}

// routeTable is evaluated top to bottom, first match wins. Anything that
// falls through is Protected. The TMDB sync endpoints are public on purpose:
// they are admin-triggered refreshes of shared metadata, accepted as a known
// policy risk until a proper admin role exists.
var routeTable = []rule{
	{method: "", path: "/health", exact: true, access: Public},
	{method: "", path: "/auth/", exact: false, access: Public},
	{method: "", path: "/tmdb/", exact: false, access: Public},

	// The personalized feed and the caller's own profile stay protected even
	// under GET; they must be ahead of the broad read rules below.
	{method: "GET", path: "/activity/feed", exact: true, access: Protected},
	{method: "GET", path: "/users/me", exact: true, access: Protected},

	{method: "GET", path: "/movies", exact: false, access: Public},
	{method: "GET", path: "/person", exact: false, access: Public},
	{method: "GET", path: "/genres", exact: false, access: Public},
	{method: "GET", path: "/reviews", exact: false, access: Public},
	{method: "GET", path: "/lists", exact: false, access: Public},
	{method: "GET", path: "/favorites", exact: false, access: Public},
	{method: "GET", path: "/comments", exact: false, access: Public},
	{method: "GET", path: "/follows", exact: false, access: Public},
	{method: "GET", path: "/likes", exact: false, access: Public},
	{method: "GET", path: "/users", exact: false, access: Public},
	{method: "GET", path: "/activity", exact: false, access: Public},
}

// matchPrefix matches on path segment boundaries: a rule "/users" covers
// "/users" and "/users/42" but not "/usersecret". Rules written with a
// trailing slash cover only descendants.
func matchPrefix(path, prefix string) bool {
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Classify maps a request path and method to Public or Protected. It is
// total: every input yields exactly one answer. An optional "/api" prefix is
// normalized away so the table holds logical paths.
func Classify(path, method string) Access {
	path = strings.TrimPrefix(path, "/api")
	if path == "" {
		path = "/"
	}

	for _, r := range routeTable {
		if r.method != "" && r.method != method {
			continue
		}
		if r.exact {
			if path == r.path {
				return r.access
			}
			continue
		}
		if matchPrefix(path, r.path) {
			return r.access
		}
	}
	return Protected
}
