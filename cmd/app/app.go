package app

import (
	"log"

	"lifelessons/internal/config"
	"lifelessons/internal/database"
	"lifelessons/internal/identity"
	"lifelessons/internal/payments"
	"lifelessons/internal/repository"
	"lifelessons/internal/service"
	"lifelessons/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	verifier := identity.NewHTTPVerifier(cfg.IdentityTokenURL)
	provider := payments.NewStripeProvider(cfg)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, verifier, provider)

	return db, repo, services
}
