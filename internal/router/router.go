package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/onlyfilms/backend/internal/auth"
	"github.com/onlyfilms/backend/internal/feed"
	"github.com/onlyfilms/backend/internal/handlers"
	"github.com/onlyfilms/backend/internal/middleware"
	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/internal/tmdb"
	"github.com/onlyfilms/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes migrates the relational schema, wires repositories, the feed
// aggregator and handlers, and registers every route under /api behind the
// access gate.
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, log *zap.SugaredLogger) error {
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Film{},
		&models.Genre{},
		&models.Review{},
		&models.WatchEvent{},
		&models.WatchlistItem{},
		&models.Favorite{},
		&models.Like{},
		&models.Comment{},
	)
	if err != nil {
		return err
	}
	log.Info("PostgreSQL auto-migrations completed")

	mongoDB := db.Mongo.Database(cfg.MongoDatabase)

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	profileRepo := repositories.NewPostgresProfileRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	filmRepo := repositories.NewPostgresFilmRepository(db.Postgres)
	genreRepo := repositories.NewPostgresGenreRepository(db.Postgres)
	reviewRepo := repositories.NewPostgresReviewRepository(db.Postgres)
	watchRepo := repositories.NewPostgresWatchRepository(db.Postgres)
	watchlistRepo := repositories.NewPostgresWatchlistRepository(db.Postgres)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	listRepo := repositories.NewMongoListRepository(mongoDB)

	authority := auth.NewAuthority(cfg.JWTSecret)
	aggregator := feed.NewAggregator(reviewRepo, watchRepo, listRepo, followRepo, profileRepo)

	tmdbClient := tmdb.NewClient(tmdb.Config{
		BaseURL:     cfg.TMDBBaseURL,
		AccessToken: cfg.TMDBAccessToken,
		CacheTTL:    cfg.TMDBCacheTTL,
		Timeout:     cfg.TMDBTimeout,
	}, log)
	syncer := tmdb.NewSyncer(tmdbClient, filmRepo, genreRepo, cfg.TMDBImageBase, log)

	// One group, one gate. The gate itself decides per route whether a
	// missing token is fatal, so public and protected routes register alike.
	api := e.Group("/api")
	api.Use(middleware.AccessGate(authority))

	handlers.RegisterHealthRoutes(api)
	handlers.NewAuthHandler(userRepo, profileRepo, authority).RegisterAuthRoutes(api.Group("/auth"))
	handlers.NewUserHandler(profileRepo, followRepo, userRepo).RegisterUserRoutes(api)
	handlers.NewFollowHandler(followRepo, profileRepo).RegisterFollowRoutes(api)
	handlers.NewReviewHandler(reviewRepo, filmRepo, profileRepo, likeRepo).RegisterReviewRoutes(api)
	handlers.NewActivityHandler(aggregator, watchRepo, filmRepo, likeRepo).RegisterActivityRoutes(api)
	handlers.NewWatchlistHandler(watchlistRepo, watchRepo, filmRepo).RegisterWatchlistRoutes(api)
	handlers.NewListHandler(listRepo, filmRepo).RegisterListRoutes(api)
	handlers.NewFavoriteHandler(favoriteRepo, filmRepo).RegisterFavoriteRoutes(api)
	handlers.NewLikeHandler(likeRepo, reviewRepo).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(commentRepo, reviewRepo, profileRepo).RegisterCommentRoutes(api)
	handlers.NewMovieHandler(tmdbClient, filmRepo, reviewRepo).RegisterMovieRoutes(api)
	handlers.NewGenreHandler(genreRepo).RegisterGenreRoutes(api)
	handlers.NewTmdbHandler(syncer).RegisterTmdbRoutes(api)

	log.Info("Routes configured")
	return nil
}
