package auction

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func sampleProducts() []AuctionProduct {
	return []AuctionProduct{
		{ID: "ap1", ProductID: "p1", SortOrder: 3, SelectedForLive: true},
		{ID: "ap2", ProductID: "p2", SortOrder: 1, SelectedForLive: false},
		{ID: "ap3", ProductID: "p3", SortOrder: 2, SelectedForLive: true},
		{ID: "ap4", ProductID: "p4", SortOrder: 4, SelectedForLive: false},
	}
}

func TestFilterProductsByProgress_VotingStagesReturnAll(t *testing.T) {
	products := sampleProducts()
	for _, progress := range []Progress{ProgressVotingOpen, ProgressVotingClosed} {
		got := FilterProductsByProgress(products, progress)
		check.Equal(t, products, got) // urutan input dipertahankan
	}
}

func TestFilterProductsByProgress_LiveStagesReturnSelectedOnly(t *testing.T) {
	products := sampleProducts()
	stages := []Progress{
		ProgressParticipationApproval,
		ProgressLiveAuction,
		ProgressWinnerConfirmation,
		ProgressFallbackResolution,
	}
	for _, progress := range stages {
		got := FilterProductsByProgress(products, progress)
		check.Equal(t, 2, len(got))
		check.Equal(t, "p1", got[0].ProductID) // urutan relatif dipertahankan
		check.Equal(t, "p3", got[1].ProductID)
	}
}

func TestFilterProductsByProgress_UnknownFailsOpen(t *testing.T) {
	products := sampleProducts()
	got := FilterProductsByProgress(products, Progress("grand_finale"))
	check.Equal(t, products, got)
}

func TestSelectLiveProductID_NoneSelected(t *testing.T) {
	products := []AuctionProduct{
		{ID: "ap1", ProductID: "p1", SortOrder: 1},
		{ID: "ap2", ProductID: "p2", SortOrder: 2},
	}
	check.Equal(t, "", SelectLiveProductID(products))
	check.Equal(t, "", SelectLiveProductID(nil))
}

func TestSelectLiveProductID_SmallestSortOrderWins(t *testing.T) {
	// sort-then-pick, bukan first-seen: hasil sama untuk semua permutasi
	permutations := [][]AuctionProduct{
		{
			{ProductID: "p1", SortOrder: 3, SelectedForLive: true},
			{ProductID: "p3", SortOrder: 2, SelectedForLive: true},
			{ProductID: "p2", SortOrder: 1, SelectedForLive: false},
		},
		{
			{ProductID: "p3", SortOrder: 2, SelectedForLive: true},
			{ProductID: "p2", SortOrder: 1, SelectedForLive: false},
			{ProductID: "p1", SortOrder: 3, SelectedForLive: true},
		},
		{
			{ProductID: "p2", SortOrder: 1, SelectedForLive: false},
			{ProductID: "p1", SortOrder: 3, SelectedForLive: true},
			{ProductID: "p3", SortOrder: 2, SelectedForLive: true},
		},
	}
	for _, products := range permutations {
		check.Equal(t, "p3", SelectLiveProductID(products))
	}
}

func TestSelectLiveProductID_Idempotent(t *testing.T) {
	products := sampleProducts()
	first := SelectLiveProductID(products)
	second := SelectLiveProductID(products)
	check.Equal(t, first, second)
	check.Equal(t, "p3", first)
}

func TestSelectFeaturedAuction_Precedence(t *testing.T) {
	active := []Auction{{ID: "a", Status: StatusActive}}
	completed := []Auction{{ID: "c", Status: StatusCompleted}}
	scheduled := []Auction{{ID: "s", Status: StatusScheduled}}

	got := SelectFeaturedAuction(active, completed, scheduled)
	check.NotNil(t, got)
	check.Equal(t, "a", got.ID)

	got = SelectFeaturedAuction(nil, completed, scheduled)
	check.NotNil(t, got)
	check.Equal(t, "c", got.ID)

	got = SelectFeaturedAuction(nil, nil, scheduled)
	check.NotNil(t, got)
	check.Equal(t, "s", got.ID)

	check.Nil(t, SelectFeaturedAuction(nil, nil, nil))
}
