package auction

import (
	"encoding/json"
	"time"
)

const (
	EventParticipationReviewed = "ParticipationReviewed"
	EventWinnerOutcomeRecorded = "WinnerOutcomeRecorded"
	EventFallbackAdvanced      = "FallbackAdvanced"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "auction-admin-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya auction_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type ParticipationReviewedPayload struct {
	RequestID           string `json:"request_id"`
	AuctionID           string `json:"auction_id"`
	ProductID           string `json:"product_id,omitempty"`
	Status              string `json:"status"` // approved | declined
	ReviewedByProfileID string `json:"reviewed_by_profile_id"`
}

// WinnerOutcomePayload dipublish tiap kali admin mencatat hasil attempt.
// Worker fallback hanya bereaksi pada status gagal.
type WinnerOutcomePayload struct {
	ConfirmationID string `json:"confirmation_id"`
	AuctionID      string `json:"auction_id"`
	ProductID      string `json:"product_id"`
	UserID         string `json:"user_id"`
	Status         string `json:"status"`
	FallbackRank   int    `json:"fallback_rank"`
}

type FallbackAdvancedPayload struct {
	AuctionID      string `json:"auction_id"`
	ProductID      string `json:"product_id"`
	PreviousRank   int    `json:"previous_rank"`
	NextRank       int    `json:"next_rank,omitempty"`
	ConfirmationID string `json:"confirmation_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	// Exhausted true kalau ranking bid sudah habis: tidak ada kandidat lagi.
	Exhausted bool `json:"exhausted,omitempty"`
}
