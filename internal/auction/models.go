package auction

import "time"

type Auction struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	StartAt       time.Time  `json:"start_at"`
	VotingEndAt   time.Time  `json:"voting_end_at"`
	Status        Status     `json:"status"`   // lihat status.go
	Progress      Progress   `json:"progress"` // tahap detail, lihat status.go
	PausedAt      *time.Time `json:"paused_at,omitempty"`
	ExtendedEndAt *time.Time `json:"extended_end_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AuctionProduct mengacu ke product lewat ProductID saja; data product
// di-resolve oleh service lain.
type AuctionProduct struct {
	ID                    string    `json:"id"`
	AuctionID             string    `json:"auction_id"`
	ProductID             string    `json:"product_id"`
	SortOrder             int       `json:"sort_order"`
	MinBidPrice           float64   `json:"min_bid_price"`
	SelectedForLive       bool      `json:"selected_for_live"`
	PriceIncrementPresets []string  `json:"price_increment_presets"` // "value:label"
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type Vote struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auction_id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ParticipationRequest struct {
	ID                  string              `json:"id"`
	AuctionID           string              `json:"auction_id"`
	ProductID           *string             `json:"product_id"`
	UserProfileID       string              `json:"user_profile_id"`
	PhoneNumber         string              `json:"phone_number"`
	Status              ParticipationStatus `json:"status"`
	TermsAccepted       bool                `json:"terms_accepted"`
	ReviewedAt          *time.Time          `json:"reviewed_at,omitempty"`
	ReviewedByProfileID *string             `json:"reviewed_by_profile_id,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// Bid immutable setelah dibuat.
type Bid struct {
	ID           string    `json:"id"`
	AuctionID    string    `json:"auction_id"`
	ProductID    string    `json:"product_id"`
	UserID       string    `json:"user_id"`
	PhoneNumber  string    `json:"phone_number"`
	Amount       float64   `json:"amount"`
	FallbackRank int       `json:"fallback_rank"`
	CreatedAt    time.Time `json:"created_at"`
}

// WinnerConfirmation: satu row per kandidat pemenang yang dicoba.
// Bisa ada beberapa row per (auction, product) selama fallback berjalan.
type WinnerConfirmation struct {
	ID           string             `json:"id"`
	AuctionID    string             `json:"auction_id"`
	ProductID    string             `json:"product_id"`
	UserID       string             `json:"user_id"`
	Status       ConfirmationStatus `json:"status"`
	ConfirmedAt  *time.Time         `json:"confirmed_at,omitempty"`
	FallbackRank int                `json:"fallback_rank"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
