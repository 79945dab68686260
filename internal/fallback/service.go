package fallback

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ariefcatur/go-auction-admin.git/internal/auction"
	kafkax "github.com/ariefcatur/go-auction-admin.git/internal/kafka"
	"github.com/ariefcatur/go-auction-admin.git/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Store: subset repo yang dibutuhkan worker. Interface supaya bisa dites
// tanpa DB.
type Store interface {
	ListBidDocs(ctx context.Context, auctionID string) ([]auction.BidDoc, error)
	ListConfirmationDocs(ctx context.Context, auctionID string) ([]auction.ConfirmationDoc, error)
	CreateWinnerConfirmation(ctx context.Context, wc auction.WinnerConfirmation) error
}

// Service menuruni ranking bid saat pemenang gagal bayar/tidak bisa
// dihubungi: rank berikutnya dapat row pending_confirmation baru.
type Service struct {
	Store       Store
	Redis       *redis.Client
	Producer    *kafkax.Producer // publish auction.winner.fallback
	ServiceName string
}

// HandleWinnerOutcome: dipasang sebagai handler consumer di topic
// auction.winner.outcome.
func (s *Service) HandleWinnerOutcome(ctx context.Context, m kafkago.Message) error {
	var env auction.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != auction.EventWinnerOutcomeRecorded {
		return nil
	}

	// dedup via Redis (pakai event_id)
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "fallback", env.EventID)
		fresh, err := redisx.MarkOnce(ctx, s.Redis, dkey, redisx.TTLDedup)
		if err == nil && !fresh {
			return nil
		}
	}

	p, err := kafkax.UnwrapPayload[auction.WinnerOutcomePayload](env.Payload)
	if err != nil {
		return err
	}
	if !auction.ConfirmationStatus(p.Status).FailedOutcome() {
		return nil // confirmed / pending: tidak ada yang perlu dilakukan
	}

	return s.advance(ctx, p, env.TraceID)
}

func (s *Service) advance(ctx context.Context, p auction.WinnerOutcomePayload, trace string) error {
	confirmations, err := s.Store.ListConfirmationDocs(ctx, p.AuctionID)
	if err != nil {
		return err
	}
	nextRank := p.FallbackRank + 1
	for _, doc := range confirmations {
		wc, ok := doc.Entity()
		if !ok || wc.ProductID != p.ProductID {
			continue
		}
		// sudah ada pemenang sah, atau attempt untuk rank ini sudah dibuat
		if wc.Status == auction.ConfirmationConfirmed || wc.FallbackRank >= nextRank {
			return nil
		}
	}

	bidDocs, err := s.Store.ListBidDocs(ctx, p.AuctionID)
	if err != nil {
		return err
	}
	bids := make([]auction.Bid, 0, len(bidDocs))
	for _, doc := range bidDocs {
		if b, ok := doc.Entity(); ok && b.ProductID == p.ProductID {
			bids = append(bids, b)
		}
	}
	ranking := auction.RankProductBidders(bids)

	if nextRank >= len(ranking) {
		// ranking habis; keputusan akhir kembali ke operator
		log.Printf("fallback exhausted: auction=%s product=%s rank=%d", p.AuctionID, p.ProductID, nextRank)
		s.publishAdvanced(p, auction.FallbackAdvancedPayload{
			AuctionID:    p.AuctionID,
			ProductID:    p.ProductID,
			PreviousRank: p.FallbackRank,
			Exhausted:    true,
		}, trace)
		return nil
	}

	candidate := ranking[nextRank]
	wc := auction.WinnerConfirmation{
		ID:           uuid.NewString(),
		AuctionID:    p.AuctionID,
		ProductID:    p.ProductID,
		UserID:       candidate.UserID,
		Status:       auction.ConfirmationPending,
		FallbackRank: nextRank,
	}
	if err := s.Store.CreateWinnerConfirmation(ctx, wc); err != nil {
		return err
	}

	s.publishAdvanced(p, auction.FallbackAdvancedPayload{
		AuctionID:      p.AuctionID,
		ProductID:      p.ProductID,
		PreviousRank:   p.FallbackRank,
		NextRank:       nextRank,
		ConfirmationID: wc.ID,
		UserID:         candidate.UserID,
	}, trace)
	return nil
}

func (s *Service) publishAdvanced(src auction.WinnerOutcomePayload, payload auction.FallbackAdvancedPayload, trace string) {
	if s.Producer == nil {
		return
	}
	ev := auction.Envelope{
		EventID:       uuid.NewString(),
		EventType:     auction.EventFallbackAdvanced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: src.AuctionID,
		Payload:       kafkax.MustMarshal(payload),
	}
	s.Producer.Publish(auction.PartitionKey(src.AuctionID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(auction.EventFallbackAdvanced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
