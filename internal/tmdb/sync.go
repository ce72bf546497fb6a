package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
)

// Syncer pulls provider metadata into the local film and genre tables. It
// backs the admin sync endpoints.
type Syncer struct {
	client    *Client
	films     repositories.FilmRepository
	genres    repositories.GenreRepository
	imageBase string
	log       *zap.SugaredLogger
}

// NewSyncer creates a Syncer.
func NewSyncer(client *Client, films repositories.FilmRepository, genres repositories.GenreRepository, imageBase string, log *zap.SugaredLogger) *Syncer {
	return &Syncer{client: client, films: films, genres: genres, imageBase: imageBase, log: log}
}

// SyncGenres fetches the provider genre list and stores any genres not yet
// known locally. Returns the number added.
func (s *Syncer) SyncGenres(ctx context.Context) (int, error) {
	raw, err := s.client.Genres(ctx)
	if err != nil {
		return 0, err
	}

	var payload struct {
		Genres []struct {
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, fmt.Errorf("parsing genre list: %w", err)
	}

	added := 0
	for _, g := range payload.Genres {
		if g.Name == "" {
			continue
		}
		_, err := s.genres.FindByName(g.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return added, err
		}
		genre := &models.Genre{
			Name: g.Name,
			Slug: strings.ToLower(strings.ReplaceAll(g.Name, " ", "-")),
		}
		if err := s.genres.Save(genre); err != nil {
			s.log.Errorw("saving genre", "name", g.Name, "error", err)
			continue
		}
		added++
	}
	return added, nil
}

// SyncPopular fetches the given number of popular-movie pages and stores the
// films locally. Returns the number saved.
func (s *Syncer) SyncPopular(ctx context.Context, pages int) (int, error) {
	if pages < 1 {
		pages = 1
	}

	saved := 0
	for page := 1; page <= pages; page++ {
		raw, err := s.client.Popular(ctx, page)
		if err != nil {
			return saved, err
		}
		films, err := s.parseFilms(raw)
		if err != nil {
			return saved, err
		}
		for i := range films {
			if _, err := s.films.FindOrCreate(&films[i]); err != nil {
				s.log.Errorw("saving film", "title", films[i].Title, "error", err)
				continue
			}
			saved++
		}
	}
	return saved, nil
}

func (s *Syncer) parseFilms(raw json.RawMessage) ([]models.Film, error) {
	var payload struct {
		Results []struct {
			ID           int    `json:"id"`
			Title        string `json:"title"`
			Overview     string `json:"overview"`
			ReleaseDate  string `json:"release_date"`
			PosterPath   string `json:"poster_path"`
			BackdropPath string `json:"backdrop_path"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parsing movie page: %w", err)
	}

	films := make([]models.Film, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.ID == 0 || r.Title == "" {
			continue
		}
		film := models.Film{
			TmdbID:   r.ID,
			Title:    r.Title,
			Overview: r.Overview,
		}
		if len(r.ReleaseDate) >= 4 {
			fmt.Sscanf(r.ReleaseDate[:4], "%d", &film.ReleaseYear)
		}
		if r.PosterPath != "" {
			film.PosterURL = s.imageBase + r.PosterPath
		}
		if r.BackdropPath != "" {
			film.BackdropURL = s.imageBase + r.BackdropPath
		}
		films = append(films, film)
	}
	return films, nil
}
