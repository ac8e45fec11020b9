package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pressfeed/internal/config"
	"pressfeed/internal/imagestore"
	"pressfeed/internal/logger"
	"pressfeed/internal/model"
	postgresClient "pressfeed/internal/platform/postgres"
	rabbitmqClient "pressfeed/internal/platform/rabbitmq"
	redisClient "pressfeed/internal/platform/redis"
	"pressfeed/internal/worker"
)

type App struct {
	Config      *config.Config
	Log         *zap.Logger
	Postgres    *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	PurgeWorker *worker.ImagePurgeWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}

	pgDB, err := postgresClient.New(ctx, cfg.PostgresDSN())
	if err != nil {
		return nil, err
	}
	if err := pgDB.AutoMigrate(&model.User{}, &model.Article{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}
	if err := postgresClient.SetupSearchSchema(pgDB, cfg.Search.Language); err != nil {
		return nil, err
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	articleImages := imagestore.NewStore(redisCli, "article")
	purgeWorker := worker.NewImagePurgeWorker(mqConn, articleImages, cfg.RabbitMQ.ImagePurgeQueue, log)
	if err := purgeWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start image purge worker failed: %w", err)
	}

	return &App{
		Config:      cfg,
		Log:         log,
		Postgres:    pgDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		PurgeWorker: purgeWorker,
		StartedAt:   time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.PurgeWorker != nil {
		a.PurgeWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Postgres != nil {
		sqlDB, err := a.Postgres.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return closeErr
}
