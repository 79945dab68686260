package auction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ariefcatur/go-auction-admin.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// StatsStore: empat read auction-scoped yang dibutuhkan aggregator.
// Dipisah jadi interface supaya Service bisa dites tanpa DB.
type StatsStore interface {
	ListVoteDocs(ctx context.Context, auctionID string) ([]VoteDoc, error)
	ListParticipationDocs(ctx context.Context, auctionID string) ([]ParticipationDoc, error)
	ListBidDocs(ctx context.Context, auctionID string) ([]BidDoc, error)
	ListConfirmationDocs(ctx context.Context, auctionID string) ([]ConfirmationDoc, error)
}

type AuctionLister interface {
	ListAuctions(ctx context.Context, p ListAuctionsParams) ([]Auction, int, error)
}

// Service menjalankan fetch paralel lalu fold murni. Redis optional (nil =
// tanpa cache); cache cuma fast path, store tetap sumber kebenaran.
type Service struct {
	Store    StatsStore
	Auctions AuctionLister
	Redis    *redis.Client
}

// Stats: fetch empat koleksi secara paralel, gagal satu fetch ->
// seluruh agregasi gagal (tanpa partial result, caller yang retry).
// Row rusak di dalam koleksi bukan error; lihat AggregateStats.
func (s *Service) Stats(ctx context.Context, auctionID string) (Stats, error) {
	if cached, ok := s.cachedStats(ctx, auctionID); ok {
		return cached, nil
	}

	var (
		votes         []VoteDoc
		requests      []ParticipationDoc
		bids          []BidDoc
		confirmations []ConfirmationDoc
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		votes, err = s.Store.ListVoteDocs(gctx, auctionID)
		return err
	})
	g.Go(func() (err error) {
		requests, err = s.Store.ListParticipationDocs(gctx, auctionID)
		return err
	})
	g.Go(func() (err error) {
		bids, err = s.Store.ListBidDocs(gctx, auctionID)
		return err
	})
	g.Go(func() (err error) {
		confirmations, err = s.Store.ListConfirmationDocs(gctx, auctionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("fetch auction stats: %w", err)
	}

	stats := AggregateStats(votes, requests, bids, confirmations)
	s.cacheStats(ctx, auctionID, stats)
	return stats, nil
}

func (s *Service) cachedStats(ctx context.Context, auctionID string) (Stats, bool) {
	if s.Redis == nil {
		return Stats{}, false
	}
	key := fmt.Sprintf(redisx.KeyAuctionStats, auctionID)
	raw, err := s.Redis.Get(ctx, key).Result()
	if err != nil || raw == "" {
		return Stats{}, false
	}
	var stats Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return Stats{}, false
	}
	return stats, true
}

func (s *Service) cacheStats(ctx context.Context, auctionID string, stats Stats) {
	if s.Redis == nil {
		return
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyAuctionStats, auctionID)
	_ = s.Redis.Set(ctx, key, b, redisx.TTLStatsCache).Err()
}

// FeaturedAuction: tiga query limit-1 independen (paralel), lalu coalesce
// active -> completed -> scheduled. Satu query error -> selection error.
func (s *Service) FeaturedAuction(ctx context.Context) (*Auction, error) {
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, redisx.KeyFeaturedAuction).Result(); err == nil && raw != "" {
			var a Auction
			if err := json.Unmarshal([]byte(raw), &a); err == nil && a.ID != "" {
				return &a, nil
			}
		}
	}

	var active, completed, scheduled []Auction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		active, _, err = s.Auctions.ListAuctions(gctx, ListAuctionsParams{
			Status: StatusActive, Limit: 1, OrderBy: "start_at",
		})
		return err
	})
	g.Go(func() (err error) {
		completed, _, err = s.Auctions.ListAuctions(gctx, ListAuctionsParams{
			Status: StatusCompleted, Limit: 1, OrderBy: "voting_end_at", OrderDesc: true,
		})
		return err
	})
	g.Go(func() (err error) {
		scheduled, _, err = s.Auctions.ListAuctions(gctx, ListAuctionsParams{
			Status: StatusScheduled, Limit: 1, OrderBy: "start_at",
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch featured auction: %w", err)
	}

	featured := SelectFeaturedAuction(active, completed, scheduled)
	if featured != nil && s.Redis != nil {
		if b, err := json.Marshal(featured); err == nil {
			_ = s.Redis.Set(ctx, redisx.KeyFeaturedAuction, b, redisx.TTLFeaturedCache).Err()
		}
	}
	return featured, nil
}
