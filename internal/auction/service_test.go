package auction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

type stubStore struct {
	votes         []VoteDoc
	requests      []ParticipationDoc
	bids          []BidDoc
	confirmations []ConfirmationDoc

	votesErr         error
	requestsErr      error
	bidsErr          error
	confirmationsErr error
}

func (s *stubStore) ListVoteDocs(ctx context.Context, auctionID string) ([]VoteDoc, error) {
	return s.votes, s.votesErr
}
func (s *stubStore) ListParticipationDocs(ctx context.Context, auctionID string) ([]ParticipationDoc, error) {
	return s.requests, s.requestsErr
}
func (s *stubStore) ListBidDocs(ctx context.Context, auctionID string) ([]BidDoc, error) {
	return s.bids, s.bidsErr
}
func (s *stubStore) ListConfirmationDocs(ctx context.Context, auctionID string) ([]ConfirmationDoc, error) {
	return s.confirmations, s.confirmationsErr
}

type stubLister struct {
	mu       sync.Mutex
	params   []ListAuctionsParams
	byStatus map[Status][]Auction
	errFor   map[Status]error
}

func (s *stubLister) ListAuctions(ctx context.Context, p ListAuctionsParams) ([]Auction, int, error) {
	s.mu.Lock()
	s.params = append(s.params, p)
	s.mu.Unlock()
	if err := s.errFor[p.Status]; err != nil {
		return nil, 0, err
	}
	list := s.byStatus[p.Status]
	return list, len(list), nil
}

func TestServiceStats_AggregatesAllCollections(t *testing.T) {
	store := &stubStore{
		votes: []VoteDoc{{ID: "v1", ProductID: "P1", UserID: "u1"}},
		requests: []ParticipationDoc{
			{ID: "r1", ProductID: strptr("P1"), Status: "pending"},
		},
		bids: []BidDoc{{ID: "b1", ProductID: "P1", UserID: "u1", Amount: 30}},
		confirmations: []ConfirmationDoc{
			{ID: "w1", ProductID: "P1", UserID: "u1", Status: "pending_confirmation", FallbackRank: 0},
		},
	}
	svc := &Service{Store: store}

	stats, err := svc.Stats(context.Background(), "a1")
	assert.Nil(t, err)
	check.Equal(t, 1, stats.VoteCountsByProduct["P1"])
	check.Equal(t, 1, stats.ParticipationCounts.Pending)
	check.Equal(t, 30.0, stats.BidsByProduct["P1"].HighestAmount)
	check.Equal(t, "w1", stats.WinnerConfirmationsByProduct["P1"].ID)
}

func TestServiceStats_FetchFailureAbortsWholeAggregation(t *testing.T) {
	boom := errors.New("storage down")
	store := &stubStore{
		votes:   []VoteDoc{{ID: "v1", ProductID: "P1", UserID: "u1"}},
		bidsErr: boom,
	}
	svc := &Service{Store: store}

	stats, err := svc.Stats(context.Background(), "a1")
	check.NotNil(t, err)
	check.True(t, errors.Is(err, boom))
	// tidak ada partial result
	check.Equal(t, 0, len(stats.VoteCountsByProduct))
}

func TestServiceFeaturedAuction_ActiveWins(t *testing.T) {
	lister := &stubLister{byStatus: map[Status][]Auction{
		StatusActive:    {{ID: "a", Status: StatusActive}},
		StatusCompleted: {{ID: "c", Status: StatusCompleted}},
		StatusScheduled: {{ID: "s", Status: StatusScheduled}},
	}}
	svc := &Service{Auctions: lister}

	got, err := svc.FeaturedAuction(context.Background())
	assert.Nil(t, err)
	check.NotNil(t, got)
	check.Equal(t, "a", got.ID)

	// tiga query independen, satu per bucket status
	check.Equal(t, 3, len(lister.params))
	seen := map[Status]ListAuctionsParams{}
	for _, p := range lister.params {
		seen[p.Status] = p
		check.Equal(t, 1, p.Limit)
	}
	check.Equal(t, "start_at", seen[StatusActive].OrderBy)
	check.False(t, seen[StatusActive].OrderDesc)
	check.Equal(t, "voting_end_at", seen[StatusCompleted].OrderBy)
	check.True(t, seen[StatusCompleted].OrderDesc)
	check.Equal(t, "start_at", seen[StatusScheduled].OrderBy)
}

func TestServiceFeaturedAuction_FallsBackThroughBuckets(t *testing.T) {
	lister := &stubLister{byStatus: map[Status][]Auction{
		StatusCompleted: {{ID: "c", Status: StatusCompleted}},
	}}
	svc := &Service{Auctions: lister}

	got, err := svc.FeaturedAuction(context.Background())
	assert.Nil(t, err)
	check.NotNil(t, got)
	check.Equal(t, "c", got.ID)

	lister = &stubLister{byStatus: map[Status][]Auction{}}
	svc = &Service{Auctions: lister}
	got, err = svc.FeaturedAuction(context.Background())
	assert.Nil(t, err)
	check.Nil(t, got)
}

func TestServiceFeaturedAuction_AnyFetchErrorSurfaces(t *testing.T) {
	boom := errors.New("list failed")
	lister := &stubLister{
		byStatus: map[Status][]Auction{
			StatusActive: {{ID: "a", Status: StatusActive}},
		},
		errFor: map[Status]error{StatusScheduled: boom},
	}
	svc := &Service{Auctions: lister}

	_, err := svc.FeaturedAuction(context.Background())
	check.NotNil(t, err)
	check.True(t, errors.Is(err, boom))
}
