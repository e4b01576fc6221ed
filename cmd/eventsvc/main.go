package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/sportshub-services/configs"
	"github.com/avvvet/sportshub-services/internal/comm"
	"github.com/avvvet/sportshub-services/internal/db"
	"github.com/avvvet/sportshub-services/internal/eventsvc/auth"
	"github.com/avvvet/sportshub-services/internal/eventsvc/broker"
	svcconfig "github.com/avvvet/sportshub-services/internal/eventsvc/config"
	"github.com/avvvet/sportshub-services/internal/eventsvc/handlers"
	"github.com/avvvet/sportshub-services/internal/eventsvc/service"
	"github.com/avvvet/sportshub-services/internal/eventsvc/store"
	"github.com/avvvet/sportshub-services/internal/eventsvc/ws"
	nats "github.com/avvvet/sportshub-services/internal/nats"
)

const SERVICE_NAME = "event"

func init() {
	config.LoadEnv(SERVICE_NAME)
	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg, err := svcconfig.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME+"_service_"+instanceId, cfg.LogDir)

	// mongo connection
	mongo, err := db.Connect(context.Background(), cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userStore := store.NewUserStore(mongo.DB)
	eventStore := store.NewEventStore(mongo.DB)
	registrationStore := store.NewRegistrationStore(mongo.DB)
	donationStore := store.NewDonationStore(mongo.DB)

	hub := ws.NewWs()

	// notices go through NATS when configured so every instance's sockets
	// see them, otherwise straight to the local hub
	var notifier service.Notifier = hub
	var b *broker.Broker
	var n *nats.Nats
	if cfg.NatsURL != "" {
		n, err = nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"-"+instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		log.Printf("NATS connection established successfully %s", n.Url)

		b = broker.NewBroker(n.Conn, SERVICE_NAME, instanceId)
		if _, err := broker.SubscribeNotices(n.Conn, func(eventID string, msg *comm.WSMessage) {
			hub.Broadcast(eventID, msg)
		}); err != nil {
			log.Fatalf("Error: unable to subscribe to notices %v", err)
		}
		if err := b.StartHeartbeat(); err != nil {
			log.Errorf("heartbeat not started: %v", err)
		}
		notifier = b
	}

	tokens := auth.NewTokens(cfg.JWTSecret, auth.TokenTTL)
	svc := handlers.Services{
		Auth:          service.NewAuthService(userStore, tokens, cfg.AllowAdminSignup),
		Events:        service.NewEventService(eventStore, notifier),
		Registrations: service.NewRegistrationService(eventStore, registrationStore, userStore, notifier),
		Leaderboard:   service.NewLeaderboardService(userStore),
		Donations:     service.NewDonationService(donationStore, eventStore, notifier),
		Stats:         service.NewStatsService(userStore, eventStore, registrationStore, donationStore),
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.CORSOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(svc, tokens, hub, mongo)
	h.SetRoutes(r)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("%s service shutdown failed: %+v", SERVICE_NAME, err)
	}
	if b != nil {
		b.Shutdown()
	}
	n.Close()
	mongo.Close(ctx)
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
