package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/libtrack/borrowing-service/config"
	"github.com/libtrack/borrowing-service/internal/handler"
	"github.com/libtrack/borrowing-service/internal/repository"
	"github.com/libtrack/borrowing-service/internal/repository/inmem"
	"github.com/libtrack/borrowing-service/internal/server"
	"github.com/libtrack/borrowing-service/internal/service"
	"github.com/libtrack/borrowing-service/internal/service/catalog"
	"github.com/libtrack/borrowing-service/internal/service/member"
	"github.com/libtrack/borrowing-service/migrations"
	"github.com/libtrack/borrowing-service/pkg/kafka"
	"github.com/libtrack/borrowing-service/pkg/logger"
	"github.com/libtrack/borrowing-service/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "borrowing")

	var (
		ledger    repository.Ledger
		inventory repository.Inventory
		publisher service.Publisher
		consumer  sarama.ConsumerGroup
		db        *sqlx.DB
	)

	if cfg.Standalone {
		log.Info("standalone mode: in-memory stores, kafka disabled")
		ledger = inmem.NewLedgerStore()
		inventory = inmem.NewInventoryStore()
	} else {
		var err error
		db, err = postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			log.Error("db init", zap.Error(err))
			return err
		}
		repo, err := repository.NewRepository(db, log)
		if err != nil {
			log.Error("repository init", zap.Error(err))
			return err
		}
		ledger, inventory = repo, repo

		if err := kafka.CreateTopics(cfg.Kafka); err != nil {
			log.Error("create topics", zap.Error(err))
		}
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Warn("kafka producer unavailable, loan events disabled", zap.Error(err))
		} else {
			publisher = service.NewPublisher(producer)
			defer producer.Close()
		}
		consumer, err = kafka.NewConsumer(cfg.Kafka, kafka.BorrowingConsumerGroup)
		if err != nil {
			log.Error("kafka.NewConsumer", zap.Error(err))
			return err
		}
	}

	memberSvc := member.NewService(log, *cfg)
	catalogSvc := catalog.NewService(log, *cfg)
	svc := service.NewService(log, ledger, inventory, memberSvc, catalogSvc, publisher, cfg.Borrowing)

	consumeCtx, stopConsume := context.WithCancel(context.Background())
	defer stopConsume()
	if consumer != nil {
		go kafka.Consume(consumeCtx, consumer, handler.NewConsumer(svc.SetTotalCopies, log), log, kafka.InventorySyncTopic)
	}

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	stopConsume()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error("consumer.Close", zap.Error(err))
		}
	}
	if db != nil {
		db.Close()
	}
	log.Info("Graceful shutdown finished")
	return nil
}
