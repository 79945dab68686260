package auction

const (
	TopicParticipationReviewed = "auction.participation.reviewed"
	TopicWinnerOutcome         = "auction.winner.outcome"
	TopicFallbackAdvanced      = "auction.winner.fallback"
)

// Partition key = auction_id, supaya semua event 1 auction maintain urutan.
func PartitionKey(auctionID string) []byte { return []byte(auctionID) }
