package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ariefcatur/go-auction-admin.git/internal/auction"
	"github.com/ariefcatur/go-auction-admin.git/internal/config"
	"github.com/ariefcatur/go-auction-admin.git/internal/fallback"
	kafkax "github.com/ariefcatur/go-auction-admin.git/internal/kafka"
	"github.com/ariefcatur/go-auction-admin.git/internal/postgres"
	"github.com/ariefcatur/go-auction-admin.git/internal/redisx"
	"github.com/joho/godotenv"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producer: fallback advanced
	prod := kafkax.NewProducer(cfg.KafkaBrokers, auction.TopicFallbackAdvanced, 1024)
	prod.Start(ctx)

	// Service
	svc := &fallback.Service{
		Store:       &auction.Repo{DB: db},
		Redis:       rdb,
		Producer:    prod,
		ServiceName: cfg.ServiceName + "-fallback",
	}

	// Consumer
	group := getenv("FALLBACK_GROUP", "fallback-svc")
	workers := mustAtoi(os.Getenv("FALLBACK_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, auction.TopicWinnerOutcome, workers)

	go func() {
		log.Printf("fallback consumer started: group=%s topic=%s workers=%d", group, auction.TopicWinnerOutcome, workers)
		if err := cons.Start(ctx, svc.HandleWinnerOutcome); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	prod.Close()
	prod.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
