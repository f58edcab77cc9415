package main

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/adcpm/sc2/adapters/chainrpc"
	"github.com/adcpm/sc2/adapters/events"
	"github.com/adcpm/sc2/adapters/memo"
	"github.com/adcpm/sc2/adapters/store"
	"github.com/adcpm/sc2/adapters/tokenizer"
	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/internal/config"
	"github.com/adcpm/sc2/internal/logger"
	"github.com/adcpm/sc2/service"
	transport "github.com/adcpm/sc2/transport/http"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err.Error())
	}

	log := logger.New(cfg.LogLevel)

	defaultScope := cfg.AuthorizedOps
	if len(defaultScope) == 0 {
		defaultScope = core.RecognizedOperations()
	}

	chain, err := chainrpc.Dial(ctx, cfg.ChainRPCURL)
	if err != nil {
		log.Fatal("failed to connect to chain rpc", "error", err.Error())
	}
	defer chain.Close()

	pg, err := store.NewPostgresStore(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to open store", "error", err.Error())
	}
	defer pg.Close()

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("failed to parse redis url", "error", err.Error())
	}
	redisClient := redis.NewClient(opts)

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{Client: redisClient},
		watermill.NewSlogLogger(log.Logger),
	)
	if err != nil {
		log.Fatal("failed to create event publisher", "error", err.Error())
	}

	encoder, err := memo.NewEncoder(cfg.BroadcasterKey)
	if err != nil {
		log.Fatal("failed to load broadcaster key", "error", err.Error())
	}

	jwtTokenizer := tokenizer.NewJWTTokenizer([]byte(cfg.JWTSecret))
	eventPub := events.NewWatermillPublisher(publisher)

	profileService := service.NewProfileService(chain, pg, defaultScope, cfg.MetadataMaxSize, log)
	broadcastService := service.NewBroadcastService(chain, eventPub, cfg.BroadcasterKey, defaultScope, log)
	challengeService := service.NewChallengeService(chain, jwtTokenizer, encoder, log)
	scopeService := service.NewScopeService(pg, eventPub, defaultScope, log)

	handlers := transport.NewHandlers(profileService, broadcastService, challengeService, scopeService, pg)
	router := transport.SetupRouter(handlers, jwtTokenizer)

	log.Info("starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err.Error())
	}
}
