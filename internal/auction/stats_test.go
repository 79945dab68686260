package auction

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func strptr(s string) *string { return &s }

func TestAggregateStats_Votes(t *testing.T) {
	votes := []VoteDoc{
		{ID: "v1", ProductID: "P1", UserID: "u1"},
		{ID: "v2", ProductID: "P1", UserID: "u2"},
		{ID: "v3", ProductID: "P1", UserID: "u1"}, // vote ulang tetap dihitung
		{ID: "v4", ProductID: "P2", UserID: "u3"},
	}
	stats := AggregateStats(votes, nil, nil, nil)

	check.Equal(t, map[string]int{"P1": 3, "P2": 1}, stats.VoteCountsByProduct)
	check.Equal(t, 3, stats.DistinctVoterCount)
	check.Equal(t, 0, stats.Skipped.Votes)
}

func TestAggregateStats_MalformedVoteSkipped(t *testing.T) {
	votes := []VoteDoc{
		{ID: "v1", ProductID: "P1", UserID: "u1"},
		{ID: "v2", ProductID: "", UserID: "u2"}, // rusak: tanpa product
		{ID: "", ProductID: "P1", UserID: "u3"}, // rusak: tanpa id
		{ID: "v4", ProductID: "P1", UserID: "u4"},
	}
	stats := AggregateStats(votes, nil, nil, nil)

	// satu row rusak tidak menggagalkan sisanya
	check.Equal(t, map[string]int{"P1": 2}, stats.VoteCountsByProduct)
	check.Equal(t, 2, stats.DistinctVoterCount)
	check.Equal(t, 2, stats.Skipped.Votes)
}

func TestAggregateStats_ParticipationBuckets(t *testing.T) {
	requests := []ParticipationDoc{
		{ID: "r1", ProductID: strptr("P1"), Status: "approved"},
		{ID: "r2", ProductID: strptr("P1"), Status: "pending"},
		{ID: "r3", ProductID: nil, Status: "approved"},
	}
	stats := AggregateStats(nil, requests, nil, nil)

	check.Equal(t, 2, stats.ParticipationCounts.Approved)
	check.Equal(t, 1, stats.ParticipationCounts.Pending)
	check.Equal(t, map[string]ProductParticipation{
		"P1":                 {Approved: 1, Pending: 1},
		UnknownProductBucket: {Approved: 1, Pending: 0},
	}, stats.ParticipationCounts.ByProduct)
}

func TestAggregateStats_DeclinedCountedNowhere(t *testing.T) {
	requests := []ParticipationDoc{
		{ID: "r1", ProductID: strptr("P1"), Status: "approved"},
		{ID: "r2", ProductID: strptr("P1"), Status: "declined"},
		{ID: "r3", ProductID: strptr("P2"), Status: "declined"},
	}
	stats := AggregateStats(nil, requests, nil, nil)

	check.Equal(t, 1, stats.ParticipationCounts.Approved)
	check.Equal(t, 0, stats.ParticipationCounts.Pending)
	// bucket tetap ada (row valid), counter-nya saja yang nol
	check.Equal(t, ProductParticipation{Approved: 1}, stats.ParticipationCounts.ByProduct["P1"])
	check.Equal(t, ProductParticipation{}, stats.ParticipationCounts.ByProduct["P2"])
	check.Equal(t, 0, stats.Skipped.ParticipationRequests)
}

func TestAggregateStats_UnknownParticipationStatusSkipped(t *testing.T) {
	requests := []ParticipationDoc{
		{ID: "r1", ProductID: strptr("P1"), Status: "approved"},
		{ID: "r2", ProductID: strptr("P1"), Status: "waitlisted"},
	}
	stats := AggregateStats(nil, requests, nil, nil)

	check.Equal(t, 1, stats.ParticipationCounts.Approved)
	check.Equal(t, 1, stats.Skipped.ParticipationRequests)
}

func TestAggregateStats_BidsFold(t *testing.T) {
	bids := []BidDoc{
		{ID: "b1", ProductID: "P1", UserID: "u1", Amount: 50},
		{ID: "b2", ProductID: "P1", UserID: "u2", Amount: 80},
		{ID: "b3", ProductID: "P1", UserID: "u3", Amount: 65},
	}
	stats := AggregateStats(nil, nil, bids, nil)

	pb := stats.BidsByProduct["P1"]
	check.NotNil(t, pb)
	check.Equal(t, 3, pb.Count)
	check.Equal(t, 80.0, pb.HighestAmount)
	// urutan kedatangan, tidak di-sort ulang
	check.Equal(t, []float64{50, 80, 65}, []float64{pb.Bids[0].Amount, pb.Bids[1].Amount, pb.Bids[2].Amount})
}

func TestAggregateStats_HighestStartsAtFirstBid(t *testing.T) {
	// highest = amount bid pertama, bukan 0: satu-satunya bid kecil pun
	// jadi highest
	bids := []BidDoc{{ID: "b1", ProductID: "P1", UserID: "u1", Amount: 5}}
	stats := AggregateStats(nil, nil, bids, nil)
	check.Equal(t, 5.0, stats.BidsByProduct["P1"].HighestAmount)
	check.Equal(t, 1, stats.BidsByProduct["P1"].Count)
}

func TestAggregateStats_MalformedBidSkipped(t *testing.T) {
	bids := []BidDoc{
		{ID: "b1", ProductID: "P1", UserID: "u1", Amount: 50},
		{ID: "b2", ProductID: "P1", UserID: "u2", Amount: -10}, // rusak
		{ID: "b3", ProductID: "", UserID: "u3", Amount: 90},    // rusak
	}
	stats := AggregateStats(nil, nil, bids, nil)

	check.Equal(t, 1, stats.BidsByProduct["P1"].Count)
	check.Equal(t, 50.0, stats.BidsByProduct["P1"].HighestAmount)
	check.Equal(t, 2, stats.Skipped.Bids)
}

func TestAggregateStats_ConfirmedBeatsRank(t *testing.T) {
	confirmations := []ConfirmationDoc{
		{ID: "w1", ProductID: "P1", UserID: "u1", Status: "pending_confirmation", FallbackRank: 2},
		{ID: "w2", ProductID: "P1", UserID: "u2", Status: "confirmed", FallbackRank: 5},
		{ID: "w3", ProductID: "P1", UserID: "u3", Status: "pending_confirmation", FallbackRank: 0},
	}
	stats := AggregateStats(nil, nil, nil, confirmations)

	winner := stats.WinnerConfirmationsByProduct["P1"]
	check.Equal(t, "w2", winner.ID) // confirmed menang walau rank lebih besar
	check.Equal(t, ConfirmationConfirmed, winner.Status)
}

func TestAggregateStats_LowestRankWinsAmongUnconfirmed(t *testing.T) {
	confirmations := []ConfirmationDoc{
		{ID: "w1", ProductID: "P1", UserID: "u1", Status: "rejected", FallbackRank: 3},
		{ID: "w2", ProductID: "P1", UserID: "u2", Status: "unreachable", FallbackRank: 1},
	}
	stats := AggregateStats(nil, nil, nil, confirmations)

	winner := stats.WinnerConfirmationsByProduct["P1"]
	check.Equal(t, "w2", winner.ID)
	check.Equal(t, 1, winner.FallbackRank)
}

func TestAggregateStats_ConfirmationsPerProductBucket(t *testing.T) {
	// interleaved antar produk tidak saling mengganggu
	confirmations := []ConfirmationDoc{
		{ID: "w1", ProductID: "P1", UserID: "u1", Status: "pending_confirmation", FallbackRank: 1},
		{ID: "w2", ProductID: "P2", UserID: "u2", Status: "confirmed", FallbackRank: 0},
		{ID: "w3", ProductID: "P1", UserID: "u3", Status: "payment_failed", FallbackRank: 0},
	}
	stats := AggregateStats(nil, nil, nil, confirmations)

	check.Equal(t, "w3", stats.WinnerConfirmationsByProduct["P1"].ID)
	check.Equal(t, "w2", stats.WinnerConfirmationsByProduct["P2"].ID)
}

func TestAggregateStats_DuplicateConfirmedLastWriterWins(t *testing.T) {
	// asumsi data: maksimal satu confirmed per produk; kalau dilanggar,
	// yang diproses terakhir menang
	confirmations := []ConfirmationDoc{
		{ID: "w1", ProductID: "P1", UserID: "u1", Status: "confirmed", FallbackRank: 0},
		{ID: "w2", ProductID: "P1", UserID: "u2", Status: "confirmed", FallbackRank: 4},
	}
	stats := AggregateStats(nil, nil, nil, confirmations)
	check.Equal(t, "w2", stats.WinnerConfirmationsByProduct["P1"].ID)
}

func TestAggregateStats_MalformedConfirmationSkipped(t *testing.T) {
	confirmations := []ConfirmationDoc{
		{ID: "w1", ProductID: "P1", UserID: "u1", Status: "teleported", FallbackRank: 0}, // status asing
		{ID: "w2", ProductID: "P1", UserID: "u2", Status: "rejected", FallbackRank: 2},
	}
	stats := AggregateStats(nil, nil, nil, confirmations)

	check.Equal(t, "w2", stats.WinnerConfirmationsByProduct["P1"].ID)
	check.Equal(t, 1, stats.Skipped.WinnerConfirmations)
}

func TestAggregateStats_EmptyInput(t *testing.T) {
	stats := AggregateStats(nil, nil, nil, nil)

	check.NotNil(t, stats.VoteCountsByProduct)
	check.NotNil(t, stats.BidsByProduct)
	check.NotNil(t, stats.WinnerConfirmationsByProduct)
	check.NotNil(t, stats.ParticipationCounts.ByProduct)
	check.Equal(t, 0, stats.DistinctVoterCount)
	check.Equal(t, SkippedRows{}, stats.Skipped)
}

func TestRankProductBidders_HighestPerUserDescending(t *testing.T) {
	bids := []Bid{
		{ID: "b1", ProductID: "P1", UserID: "u1", Amount: 40},
		{ID: "b2", ProductID: "P1", UserID: "u2", Amount: 90},
		{ID: "b3", ProductID: "P1", UserID: "u1", Amount: 120}, // bid tertinggi u1
		{ID: "b4", ProductID: "P1", UserID: "u3", Amount: 70},
	}
	ranked := RankProductBidders(bids)

	check.Equal(t, 3, len(ranked))
	check.Equal(t, "u1", ranked[0].UserID) // rank 0 = top bidder
	check.Equal(t, 120.0, ranked[0].Amount)
	check.Equal(t, "u2", ranked[1].UserID)
	check.Equal(t, "u3", ranked[2].UserID)
}

func TestRankProductBidders_TieKeepsFirstSeen(t *testing.T) {
	bids := []Bid{
		{ID: "b1", UserID: "u1", Amount: 50},
		{ID: "b2", UserID: "u2", Amount: 50},
	}
	ranked := RankProductBidders(bids)
	check.Equal(t, "u1", ranked[0].UserID)
	check.Equal(t, "u2", ranked[1].UserID)
}

func TestRankProductBidders_Empty(t *testing.T) {
	check.Equal(t, 0, len(RankProductBidders(nil)))
}
