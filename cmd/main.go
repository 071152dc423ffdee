package main

import (
	"log"
	"net/http"
	"time"

	"github.com/swiftload/loadboard-service/internal/db"
	"github.com/swiftload/loadboard-service/internal/handlers"
	"github.com/swiftload/loadboard-service/internal/logger"
	"github.com/swiftload/loadboard-service/internal/repository"
	"github.com/swiftload/loadboard-service/internal/router"
	"github.com/swiftload/loadboard-service/internal/router/config"
	"github.com/swiftload/loadboard-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	appLogger := logger.New(cfg.LogLevel, cfg.LogPretty)

	userRepo := repository.NewPostgresUserRepository(dbPool)
	loadRepo := repository.NewPostgresLoadRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	messageRepo := repository.NewPostgresMessageRepository(dbPool)

	userService := services.NewUserService(userRepo)
	loadService := services.NewLoadService(loadRepo, userRepo)
	bidService := services.NewBidService(bidRepo, loadRepo, userRepo)
	messageService := services.NewMessageService(messageRepo, userRepo)

	userHandler := handlers.NewUserHandler(userService, appLogger, 5*time.Second)
	loadHandler := handlers.NewLoadHandler(loadService, appLogger, 5*time.Second)
	bidHandler := handlers.NewBidHandler(bidService, appLogger, 5*time.Second)
	messageHandler := handlers.NewMessageHandler(messageService, appLogger, 5*time.Second)

	routes := router.InitRoutes(userHandler, loadHandler, bidHandler, messageHandler)

	appLogger.Info().Str("address", cfg.ServerAddress).Msg("server is listening")
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}

	log.Println("db migrated successfully")
}
