package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"docuchat/internal/ai"
	"docuchat/internal/cache"
	"docuchat/internal/config"
	"docuchat/internal/model"
	mysqlClient "docuchat/internal/platform/mysql"
	rabbitmqClient "docuchat/internal/platform/rabbitmq"
	redisClient "docuchat/internal/platform/redis"
	"docuchat/internal/repository"
	"docuchat/internal/vectorindex"
	"docuchat/internal/worker"
)

// App is the composition root: it owns every shared dependency and hands
// them to the orchestrators by reference. Nothing reaches these through
// package-level state.
type App struct {
	Config         *config.Config
	MySQL          *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	Index          *vectorindex.Index
	Stats          *cache.StatsCache
	LLMClient      *ai.Client
	ExchangeWorker *worker.ExchangePersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Document{}, &model.DocumentChunk{}, &model.ChatExchange{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	llmClient := ai.NewClient()
	embedder := ai.NewEmbeddingClient(llmClient, ai.EmbeddingConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.EmbeddingModel,
	})

	index, err := vectorindex.Open(cfg.Storage.VectorDBPath, embedder)
	if err != nil {
		return nil, err
	}

	exchangeRepo := repository.NewChatExchangeRepository(mysqlDB)
	exchangeWorker := worker.NewExchangePersistWorker(mqConn, exchangeRepo, cfg.RabbitMQ.ExchangePersistQueue)
	if err := exchangeWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start exchange worker failed: %w", err)
	}

	return &App{
		Config:         cfg,
		MySQL:          mysqlDB,
		Redis:          redisCli,
		MQConn:         mqConn,
		Index:          index,
		Stats:          cache.NewStatsCache(redisCli, time.Duration(cfg.Redis.StatsTTLSeconds)*time.Second),
		LLMClient:      llmClient,
		ExchangeWorker: exchangeWorker,
		StartedAt:      time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.ExchangeWorker != nil {
		a.ExchangeWorker.Close()
	}
	if a.Index != nil {
		if err := a.Index.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
