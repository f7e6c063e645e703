package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/layer-3/drip/adapters/chain"
	"github.com/layer-3/drip/adapters/events"
	"github.com/layer-3/drip/adapters/store"
	"github.com/layer-3/drip/adapters/tokenizer"
	"github.com/layer-3/drip/config"
	"github.com/layer-3/drip/ports"
	"github.com/layer-3/drip/service"
	"github.com/layer-3/drip/transport/http"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Session signing key. Sessions do not survive a restart; clients simply
	// sign in again.
	signKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to generate session signing key")
	}

	ctx := context.Background()

	chainClient, err := chain.New(ctx, chain.Config{
		RPCURL:          cfg.RPCURL,
		PrivateKey:      cfg.PrivateKey,
		ContractAddress: cfg.ContractAddress,
		ChainID:         cfg.ChainID,
		GasLimit:        cfg.GasLimit,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to chain")
	}
	defer chainClient.Close()

	var challengeStore ports.ChallengeStore
	var eventPub ports.EventPublisher

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to parse Redis URL")
		}

		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create Redis publisher")
		}

		challengeStore = store.NewRedisStore(redisClient, 10*time.Minute)
		eventPub = events.NewWatermillPublisher(publisher)

		logger.Info().Msg("using Redis challenge store")
	} else {
		challengeStore = store.NewMemoryStore()
		logger.Info().Msg("using in-memory challenge store")
	}

	jwtTokenizer := tokenizer.NewJWTTokenizer(signKey)
	authService := service.NewAuthService(challengeStore, jwtTokenizer, int(cfg.ChainID), logger)
	faucetService := service.NewFaucetService(chainClient, eventPub, cfg.ContractAddress, cfg.Network, cfg.ChainID, logger)

	router := http.SetupRouter(authService, faucetService, http.Config{
		ExplorerURL:   cfg.ExplorerURL,
		DefaultDomain: cfg.Domain,
		DefaultOrigin: cfg.Origin,
	})

	logger.Info().Str("port", cfg.Port).Msg("starting server")

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
