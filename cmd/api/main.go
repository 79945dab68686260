package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-auction-admin.git/internal/auction"
	"github.com/ariefcatur/go-auction-admin.git/internal/config"
	"github.com/ariefcatur/go-auction-admin.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-auction-admin.git/internal/kafka"
	"github.com/ariefcatur/go-auction-admin.git/internal/postgres"
	"github.com/ariefcatur/go-auction-admin.git/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers: review & winner outcome (dua topic berbeda)
	pReview := kafkax.NewProducer(cfg.KafkaBrokers, auction.TopicParticipationReviewed, 1024)
	pReview.Start(ctx)
	pOutcome := kafkax.NewProducer(cfg.KafkaBrokers, auction.TopicWinnerOutcome, 1024)
	pOutcome.Start(ctx)

	// Repo, service & handler
	repo := &auction.Repo{DB: db}
	svc := &auction.Service{Store: repo, Auctions: repo, Redis: rdb}
	router := httpx.NewRouter()
	ah := &httpx.AuctionsHandler{
		Repo:            repo,
		Stats:           svc,
		ProducerReview:  pReview,
		ProducerOutcome: pOutcome,
		Service:         cfg.ServiceName,
	}
	ah.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pReview.Close() // tutup inbox -> flush & close writer
	pOutcome.Close()
	cancel() // stop producer loop
	pReview.WaitClosed()
	pOutcome.WaitClosed()
}
