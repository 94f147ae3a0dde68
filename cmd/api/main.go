package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/fobfinder/fobfinder-go/internal/config"
	"github.com/fobfinder/fobfinder-go/internal/crypto"
	"github.com/fobfinder/fobfinder-go/internal/gate"
	"github.com/fobfinder/fobfinder-go/internal/handler"
	"github.com/fobfinder/fobfinder-go/internal/middleware"
	"github.com/fobfinder/fobfinder-go/internal/pipeline"
	"github.com/fobfinder/fobfinder-go/internal/repository"
	"github.com/fobfinder/fobfinder-go/internal/service"
	"github.com/fobfinder/fobfinder-go/internal/storage"
	"github.com/fobfinder/fobfinder-go/internal/token"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	signer, err := storage.NewSigner(ctx, storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		slog.Error("storage signer setup failed", "error", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	fobs := repository.NewFobRepository(db)
	ratings := repository.NewRatingRepository(db)
	pictures := repository.NewPictureRepository(db)

	codec := token.NewCodec(cfg.JWTSecret)
	hasher := crypto.NewHasher(crypto.DefaultHashParams())

	authHandler := handler.NewAuthHandler(service.NewAuthService(users, codec, hasher, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry))
	fobHandler := handler.NewFobHandler(service.NewFobService(fobs))
	ratingHandler := handler.NewRatingHandler(service.NewRatingService(ratings, fobs))
	pictureHandler := handler.NewPictureHandler(service.NewPictureService(pictures, fobs, signer))
	profileHandler := handler.NewProfileHandler(service.NewProfileService(users, hasher))

	authed := gate.Authenticate(codec, users)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10, 10*time.Minute))
		r.Post("/api/v1/auth/signup", pipeline.Handler(authHandler.Signup()))
		r.Post("/api/v1/auth/login", pipeline.Handler(authHandler.Login()))
		r.Post("/api/v1/auth/refresh", pipeline.Handler(authHandler.Refresh()))
	})

	r.Get("/api/v1/auth/me", pipeline.Handler(authed, authHandler.Me()))

	// Fobs. Reads are public, writes require authentication and deletion is
	// reserved for the fob's creator.
	r.Get("/api/v1/fobs", pipeline.Handler(fobHandler.Nearby()))
	r.Get("/api/v1/fobs/{fob_id}", pipeline.Handler(fobHandler.Get()))
	r.Post("/api/v1/fobs", pipeline.Handler(authed, fobHandler.Create()))
	r.Put("/api/v1/fobs/{fob_id}", pipeline.Handler(authed, fobHandler.Update()))
	r.Delete("/api/v1/fobs/{fob_id}", pipeline.Handler(authed, gate.FobExists(fobs), gate.FobOwner(), fobHandler.Delete()))

	// Ratings.
	r.Get("/api/v1/fobs/{fob_id}/ratings", pipeline.Handler(ratingHandler.List()))
	r.Post("/api/v1/fobs/{fob_id}/ratings", pipeline.Handler(authed, ratingHandler.Create()))
	r.Get("/api/v1/ratings/{rating_id}", pipeline.Handler(gate.RatingExists(ratings), ratingHandler.Get()))
	r.Put("/api/v1/ratings/{rating_id}", pipeline.Handler(authed, gate.RatingExists(ratings), gate.RatingOwner(), ratingHandler.Update()))
	r.Delete("/api/v1/ratings/{rating_id}", pipeline.Handler(authed, gate.RatingExists(ratings), gate.RatingOwner(), ratingHandler.Delete()))

	// Pictures.
	r.Get("/api/v1/fobs/{fob_id}/pictures", pipeline.Handler(pictureHandler.List()))
	r.Post("/api/v1/fobs/{fob_id}/pictures", pipeline.Handler(authed, pictureHandler.Create()))
	r.Post("/api/v1/fobs/{fob_id}/pictures/upload-url", pipeline.Handler(authed, pictureHandler.UploadURL()))
	r.Put("/api/v1/pictures/{picture_id}/status", pipeline.Handler(authed, gate.PictureExists(pictures), gate.PictureOwner(), pictureHandler.UpdateStatus()))
	r.Delete("/api/v1/pictures/{picture_id}", pipeline.Handler(authed, gate.PictureExists(pictures), gate.PictureOwner(), pictureHandler.Delete()))

	// Profiles.
	r.Get("/api/v1/profiles/{username}", pipeline.Handler(profileHandler.Get()))
	r.Put("/api/v1/profiles/{username}", pipeline.Handler(authed, gate.ProfileExists(users), gate.ProfileOwner(), profileHandler.Update()))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
