package auction

import "time"

// Doc types adalah row mentah hasil scan dari store, belum divalidasi.
// Aggregator memvalidasi per row: row rusak di-skip (dihitung di SkippedRows),
// tidak pernah menggagalkan agregasi (lihat stats.go).

type VoteDoc struct {
	ID        string
	AuctionID string
	ProductID string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d VoteDoc) Entity() (Vote, bool) {
	if d.ID == "" || d.ProductID == "" || d.UserID == "" {
		return Vote{}, false
	}
	return Vote(d), true
}

type ParticipationDoc struct {
	ID                  string
	AuctionID           string
	ProductID           *string
	UserProfileID       string
	PhoneNumber         string
	Status              string
	TermsAccepted       bool
	ReviewedAt          *time.Time
	ReviewedByProfileID *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Entity memvalidasi minimal: id dan status harus dikenal. ProductID boleh
// nil (request tanpa produk masuk bucket "__unknown__" saat agregasi).
func (d ParticipationDoc) Entity() (ParticipationRequest, bool) {
	status := ParticipationStatus(d.Status)
	if d.ID == "" || !status.Known() {
		return ParticipationRequest{}, false
	}
	return ParticipationRequest{
		ID:                  d.ID,
		AuctionID:           d.AuctionID,
		ProductID:           d.ProductID,
		UserProfileID:       d.UserProfileID,
		PhoneNumber:         d.PhoneNumber,
		Status:              status,
		TermsAccepted:       d.TermsAccepted,
		ReviewedAt:          d.ReviewedAt,
		ReviewedByProfileID: d.ReviewedByProfileID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}, true
}

type BidDoc struct {
	ID           string
	AuctionID    string
	ProductID    string
	UserID       string
	PhoneNumber  string
	Amount       float64
	FallbackRank int
	CreatedAt    time.Time
}

func (d BidDoc) Entity() (Bid, bool) {
	if d.ID == "" || d.ProductID == "" || d.UserID == "" || d.Amount < 0 {
		return Bid{}, false
	}
	return Bid(d), true
}

type ConfirmationDoc struct {
	ID           string
	AuctionID    string
	ProductID    string
	UserID       string
	Status       string
	ConfirmedAt  *time.Time
	FallbackRank int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (d ConfirmationDoc) Entity() (WinnerConfirmation, bool) {
	status := ConfirmationStatus(d.Status)
	if d.ID == "" || d.ProductID == "" || d.UserID == "" || !status.Known() || d.FallbackRank < 0 {
		return WinnerConfirmation{}, false
	}
	return WinnerConfirmation{
		ID:           d.ID,
		AuctionID:    d.AuctionID,
		ProductID:    d.ProductID,
		UserID:       d.UserID,
		Status:       status,
		ConfirmedAt:  d.ConfirmedAt,
		FallbackRank: d.FallbackRank,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, true
}
