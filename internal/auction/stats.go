package auction

import "sort"

// UnknownProductBucket menampung participation request tanpa produk.
const UnknownProductBucket = "__unknown__"

type ProductParticipation struct {
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

type ParticipationCounts struct {
	Approved  int                             `json:"approved"`
	Pending   int                             `json:"pending"`
	ByProduct map[string]ProductParticipation `json:"by_product"`
}

type ProductBids struct {
	HighestAmount float64 `json:"highest_amount"`
	Count         int     `json:"count"`
	Bids          []Bid   `json:"bids"` // urutan kedatangan, tidak di-sort ulang
}

// SkippedRows: jumlah row yang gagal validasi per koleksi. Row rusak tidak
// pernah menggagalkan agregasi; counter ini hanya untuk observability.
type SkippedRows struct {
	Votes                 int `json:"votes"`
	ParticipationRequests int `json:"participation_requests"`
	Bids                  int `json:"bids"`
	WinnerConfirmations   int `json:"winner_confirmations"`
}

type Stats struct {
	VoteCountsByProduct          map[string]int                `json:"vote_counts_by_product"`
	DistinctVoterCount           int                           `json:"distinct_voter_count"`
	ParticipationCounts          ParticipationCounts           `json:"participation_counts"`
	BidsByProduct                map[string]*ProductBids       `json:"bids_by_product"`
	WinnerConfirmationsByProduct map[string]WinnerConfirmation `json:"winner_confirmations_by_product"`
	Skipped                      SkippedRows                   `json:"skipped"`
}

// AggregateStats melipat empat koleksi mentah (scope satu auction) jadi satu
// summary. Fold murni dan sinkron; fetch paralel jadi urusan Service.
func AggregateStats(votes []VoteDoc, requests []ParticipationDoc, bids []BidDoc, confirmations []ConfirmationDoc) Stats {
	stats := Stats{
		VoteCountsByProduct: make(map[string]int),
		ParticipationCounts: ParticipationCounts{
			ByProduct: make(map[string]ProductParticipation),
		},
		BidsByProduct:                make(map[string]*ProductBids),
		WinnerConfirmationsByProduct: make(map[string]WinnerConfirmation),
	}

	voterIDs := make(map[string]struct{})
	for _, doc := range votes {
		v, ok := doc.Entity()
		if !ok {
			stats.Skipped.Votes++
			continue
		}
		stats.VoteCountsByProduct[v.ProductID]++
		voterIDs[v.UserID] = struct{}{}
	}
	stats.DistinctVoterCount = len(voterIDs)

	for _, doc := range requests {
		req, ok := doc.Entity()
		if !ok {
			stats.Skipped.ParticipationRequests++
			continue
		}
		bucket := UnknownProductBucket
		if req.ProductID != nil {
			bucket = *req.ProductID
		}
		per := stats.ParticipationCounts.ByProduct[bucket]
		// declined tidak dihitung di bucket manapun
		switch req.Status {
		case ParticipationApproved:
			stats.ParticipationCounts.Approved++
			per.Approved++
		case ParticipationPending:
			stats.ParticipationCounts.Pending++
			per.Pending++
		}
		stats.ParticipationCounts.ByProduct[bucket] = per
	}

	for _, doc := range bids {
		bid, ok := doc.Entity()
		if !ok {
			stats.Skipped.Bids++
			continue
		}
		pb := stats.BidsByProduct[bid.ProductID]
		if pb == nil {
			// highest mulai dari amount bid pertama, bukan 0
			pb = &ProductBids{HighestAmount: bid.Amount}
			stats.BidsByProduct[bid.ProductID] = pb
		}
		pb.Count++
		pb.Bids = append(pb.Bids, bid)
		if bid.Amount > pb.HighestAmount {
			pb.HighestAmount = bid.Amount
		}
	}

	for _, doc := range confirmations {
		wc, ok := doc.Entity()
		if !ok {
			stats.Skipped.WinnerConfirmations++
			continue
		}
		current, exists := stats.WinnerConfirmationsByProduct[wc.ProductID]
		if !exists {
			stats.WinnerConfirmationsByProduct[wc.ProductID] = wc
			continue
		}
		stats.WinnerConfirmationsByProduct[wc.ProductID] = pickConfirmation(current, wc)
	}

	return stats
}

// pickConfirmation: tie-break antar kandidat winner confirmation satu produk.
// Input tidak dijamin terurut by fallback_rank, jadi harus dibandingkan:
//  1. candidate confirmed selalu menang, berapapun rank-nya
//  2. di antara yang belum confirmed, rank terendah (kandidat paling atas
//     di ranking bid) yang dilaporkan
//  3. selain itu incumbent bertahan
//
// Asumsi data: maksimal satu row confirmed per produk. Kalau dilanggar,
// row confirmed yang diproses terakhir menang diam-diam.
func pickConfirmation(current, candidate WinnerConfirmation) WinnerConfirmation {
	if candidate.Status == ConfirmationConfirmed {
		return candidate
	}
	if current.Status != ConfirmationConfirmed && candidate.FallbackRank < current.FallbackRank {
		return candidate
	}
	return current
}

// RankProductBidders: ranking bidder satu produk untuk fallback resolution.
// Satu entry per user (bid tertingginya), urut amount menurun; kalau amount
// sama, yang lebih dulu terlihat menang. Index di hasil = fallback rank
// (0 = top bidder).
func RankProductBidders(bids []Bid) []Bid {
	highest := make(map[string]Bid)
	order := make([]string, 0, len(bids))
	for _, b := range bids {
		cur, seen := highest[b.UserID]
		if !seen {
			order = append(order, b.UserID)
			highest[b.UserID] = b
			continue
		}
		if b.Amount > cur.Amount {
			highest[b.UserID] = b
		}
	}

	ranked := make([]Bid, 0, len(order))
	for _, userID := range order {
		ranked = append(ranked, highest[userID])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})
	return ranked
}
