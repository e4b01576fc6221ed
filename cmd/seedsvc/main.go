// Command seedsvc prepares a database for the event service: it creates the
// indexes and the bootstrap admin account named by ADMIN_EMAIL.
package main

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/sportshub-services/configs"
	"github.com/avvvet/sportshub-services/internal/db"
	"github.com/avvvet/sportshub-services/internal/eventsvc/auth"
	svcconfig "github.com/avvvet/sportshub-services/internal/eventsvc/config"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/service"
	"github.com/avvvet/sportshub-services/internal/eventsvc/store"
)

const SERVICE_NAME = "seed"

func main() {
	config.LoadEnv(SERVICE_NAME)
	cfg, err := svcconfig.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	config.Logging(SERVICE_NAME, cfg.LogDir)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Connect also creates the indexes
	mongo, err := db.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer mongo.Close(context.Background())
	log.Infof("indexes ready on %s", cfg.DBName)

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, no admin account created")
		return
	}

	// admin signup is allowed only here
	authService := service.NewAuthService(store.NewUserStore(mongo.DB), auth.NewTokens(cfg.JWTSecret, auth.TokenTTL), true)
	_, err = authService.Register(ctx, models.UserCreate{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.Name,
		Role:     models.RoleAdmin,
	})
	switch {
	case err == nil:
		log.Infof("admin account %s created", cfg.Admin.Email)
	case errors.Is(err, service.ErrConflict):
		log.Infof("admin account %s already exists", cfg.Admin.Email)
	default:
		log.Fatalf("create admin account: %v", err)
	}
}
