// Package rating blends the external critic score for a title with the
// locally computed user score into one confidence-weighted rating. It is pure
// computation: no I/O, no shared state, safe to call from any goroutine.
package rating

import "math"

// Base weights for the two populations when both are fully saturated.
const (
	criticWeight = 0.6
	userWeight   = 0.4
)

// A source's vote count saturates its confidence at these caps; beyond the
// cap extra votes stop increasing the weight. The user cap is much lower
// because the local community is expected to be much smaller.
const (
	criticVoteCap = 1000.0
	userVoteCap   = 50.0
)

// Population is one rating source: an average score on the 0-5 scale and the
// number of votes behind it.
type Population struct {
	Score float64
	Count int
}

// View is the display form of a single population.
type View struct {
	Rating     float64 `json:"rating"`
	Count      int     `json:"count"`
	Percentage int     `json:"percentage"`
	Source     string  `json:"source"`
}

// Combined is the blended rating for a title.
type Combined struct {
	Critic     View    `json:"critic"`
	User       View    `json:"user"`
	Score      float64 `json:"combinedScore"`
	TotalCount int     `json:"totalCount"`
	Percentage int     `json:"combinedPercentage"`
	HasCritic  bool    `json:"hasCriticRating"`
	HasUser    bool    `json:"hasUserRating"`
}

// Combine blends a critic population and a user population into one score.
// Degenerate cases: no votes anywhere yields zero; a single-sided population
// passes its score through unchanged.
func Combine(critic, user Population) Combined {
	score := combinedScore(critic, user)

	return Combined{
		Critic:     newView(critic, "TMDB"),
		User:       newView(user, "OnlyFilms Users"),
		Score:      round2(score),
		TotalCount: critic.Count + user.Count,
		Percentage: percentage(score),
		HasCritic:  critic.Count > 0,
		HasUser:    user.Count > 0,
	}
}

func combinedScore(critic, user Population) float64 {
	if critic.Count == 0 && user.Count == 0 {
		return 0
	}
	if user.Count == 0 {
		return critic.Score
	}
	if critic.Count == 0 {
		return user.Score
	}

	wc := math.Min(1, float64(critic.Count)/criticVoteCap)
	wu := math.Min(1, float64(user.Count)/userVoteCap)

	ec := criticWeight * wc
	eu := userWeight * wu

	total := ec + eu
	if total == 0 {
		return (critic.Score + user.Score) / 2
	}
	return (critic.Score*ec + user.Score*eu) / total
}

func newView(p Population, source string) View {
	return View{
		Rating:     round2(p.Score),
		Count:      p.Count,
		Percentage: percentage(p.Score),
		Source:     source,
	}
}

// percentage maps a 0-5 score to 0-100 with integer rounding.
func percentage(score float64) int {
	return int(math.Round(score * 20))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
