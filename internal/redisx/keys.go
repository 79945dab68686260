package redisx

import "time"

const (
	// Cache stats per auction: auction_stats:{auction_id} -> JSON auction.Stats
	KeyAuctionStats = "auction_stats:%s"

	// Cache featured auction untuk sidebar: featured_auction -> JSON auction
	KeyFeaturedAuction = "featured_auction"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	// Stats dihitung ulang tiap read; TTL pendek cuma meredam burst dari
	// beberapa admin yang buka halaman sama.
	TTLStatsCache    = 30 * time.Second
	TTLFeaturedCache = time.Minute
	TTLDedup         = 48 * time.Hour
)
