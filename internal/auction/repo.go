package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var ErrNotFound = errors.New("not found")

type ListAuctionsParams struct {
	Status      Status
	Progress    Progress
	TitleSearch string
	OrderBy     string
	OrderDesc   bool
	Limit       int
	Offset      int
}

// Kolom yang boleh dipakai order by (hindari injection dari query param).
var auctionOrderColumns = map[string]string{
	"start_at":      "start_at",
	"voting_end_at": "voting_end_at",
	"title":         "title",
	"status":        "status",
	"progress":      "progress",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

const auctionColumns = `id, title, description, start_at, voting_end_at, status, progress,
	paused_at, extended_end_at, created_at, updated_at`

func scanAuction(row pgx.Row) (Auction, error) {
	var a Auction
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.StartAt, &a.VotingEndAt,
		&a.Status, &a.Progress, &a.PausedAt, &a.ExtendedEndAt, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// ListAuctions: filter status/progress exact match + title contains, paged.
// Return juga total (tanpa limit/offset) untuk pagination UI.
func (r *Repo) ListAuctions(ctx context.Context, p ListAuctionsParams) ([]Auction, int, error) {
	where := ""
	args := []any{}
	add := func(cond string, v any) {
		args = append(args, v)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}
	if p.Status != "" {
		add("status=$%d", string(p.Status))
	}
	if p.Progress != "" {
		add("progress=$%d", string(p.Progress))
	}
	if p.TitleSearch != "" {
		add("title ILIKE $%d", "%"+p.TitleSearch+"%")
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM auctions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol, ok := auctionOrderColumns[p.OrderBy]
	if !ok {
		orderCol = "start_at"
	}
	dir := "ASC"
	if p.OrderDesc {
		dir = "DESC"
	}
	q := `SELECT ` + auctionColumns + ` FROM auctions` + where +
		fmt.Sprintf(" ORDER BY %s %s", orderCol, dir)
	if p.Limit > 0 {
		args = append(args, p.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if p.Offset > 0 {
		args = append(args, p.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *Repo) GetAuction(ctx context.Context, id string) (Auction, error) {
	a, err := scanAuction(r.DB.QueryRow(ctx,
		`SELECT `+auctionColumns+` FROM auctions WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Auction{}, ErrNotFound
	}
	return a, err
}

type AuctionParams struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartAt     time.Time `json:"start_at"`
	VotingEndAt time.Time `json:"voting_end_at"`
	Status      Status    `json:"status"`
	Progress    Progress  `json:"progress"`
}

func (r *Repo) CreateAuction(ctx context.Context, p AuctionParams) (Auction, error) {
	id := uuid.NewString()
	a, err := scanAuction(r.DB.QueryRow(ctx, `
		INSERT INTO auctions(id, title, description, start_at, voting_end_at, status, progress, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now(),now())
		RETURNING `+auctionColumns,
		id, p.Title, p.Description, p.StartAt, p.VotingEndAt, p.Status, p.Progress))
	return a, err
}

func (r *Repo) UpdateAuction(ctx context.Context, id string, p AuctionParams) (Auction, error) {
	a, err := scanAuction(r.DB.QueryRow(ctx, `
		UPDATE auctions
		SET title=$2, description=$3, start_at=$4, voting_end_at=$5, status=$6, progress=$7, updated_at=now()
		WHERE id=$1
		RETURNING `+auctionColumns,
		id, p.Title, p.Description, p.StartAt, p.VotingEndAt, p.Status, p.Progress))
	if errors.Is(err, pgx.ErrNoRows) {
		return Auction{}, ErrNotFound
	}
	return a, err
}

func (r *Repo) DeleteAuction(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM auctions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const auctionProductColumns = `id, auction_id, product_id, sort_order, min_bid_price,
	selected_for_live, price_increment_presets, created_at, updated_at`

func (r *Repo) ListAuctionProducts(ctx context.Context, auctionID string) ([]AuctionProduct, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+auctionProductColumns+`
		FROM auction_products WHERE auction_id=$1 ORDER BY sort_order`, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuctionProduct
	for rows.Next() {
		var p AuctionProduct
		if err := rows.Scan(&p.ID, &p.AuctionID, &p.ProductID, &p.SortOrder, &p.MinBidPrice,
			&p.SelectedForLive, &p.PriceIncrementPresets, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type AuctionProductParams struct {
	ProductID             string   `json:"product_id"`
	SortOrder             int      `json:"sort_order"`
	MinBidPrice           float64  `json:"min_bid_price"`
	SelectedForLive       bool     `json:"selected_for_live"`
	PriceIncrementPresets []string `json:"price_increment_presets"`
}

// CreateAuctionProducts: insert batch dalam satu tx; gagal satu -> rollback semua.
func (r *Repo) CreateAuctionProducts(ctx context.Context, auctionID string, items []AuctionProductParams) ([]AuctionProduct, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make([]AuctionProduct, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("missing product_id")
		}
		if it.MinBidPrice < 0 {
			return nil, fmt.Errorf("negative min_bid_price for product %s", it.ProductID)
		}
		var p AuctionProduct
		err := tx.QueryRow(ctx, `
			INSERT INTO auction_products(id, auction_id, product_id, sort_order, min_bid_price,
				selected_for_live, price_increment_presets, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,now(),now())
			RETURNING `+auctionProductColumns,
			uuid.NewString(), auctionID, it.ProductID, it.SortOrder, it.MinBidPrice,
			it.SelectedForLive, it.PriceIncrementPresets,
		).Scan(&p.ID, &p.AuctionID, &p.ProductID, &p.SortOrder, &p.MinBidPrice,
			&p.SelectedForLive, &p.PriceIncrementPresets, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- koleksi mentah untuk stats (scope satu auction) ----

func (r *Repo) ListVoteDocs(ctx context.Context, auctionID string) ([]VoteDoc, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, auction_id, product_id, user_id, created_at, updated_at
		FROM votes WHERE auction_id=$1`, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VoteDoc
	for rows.Next() {
		var d VoteDoc
		if err := rows.Scan(&d.ID, &d.AuctionID, &d.ProductID, &d.UserID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

const participationColumns = `id, auction_id, product_id, user_profile_id, phone_number, status,
	terms_accepted, reviewed_at, reviewed_by_profile_id, created_at, updated_at`

func scanParticipationDoc(row pgx.Row) (ParticipationDoc, error) {
	var d ParticipationDoc
	err := row.Scan(&d.ID, &d.AuctionID, &d.ProductID, &d.UserProfileID, &d.PhoneNumber,
		&d.Status, &d.TermsAccepted, &d.ReviewedAt, &d.ReviewedByProfileID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *Repo) ListParticipationDocs(ctx context.Context, auctionID string) ([]ParticipationDoc, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+participationColumns+`
		FROM participation_requests WHERE auction_id=$1`, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ParticipationDoc
	for rows.Next() {
		d, err := scanParticipationDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type ListParticipationParams struct {
	Status    ParticipationStatus
	OrderDesc bool
	Limit     int
	Offset    int
}

// ListParticipationRequests: halaman review untuk admin. Row yang gagal
// validasi di-skip, sama seperti kebijakan aggregator.
func (r *Repo) ListParticipationRequests(ctx context.Context, auctionID string, p ListParticipationParams) ([]ParticipationRequest, int, error) {
	where := ` WHERE auction_id=$1`
	args := []any{auctionID}
	if p.Status != "" {
		args = append(args, string(p.Status))
		where += fmt.Sprintf(" AND status=$%d", len(args))
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM participation_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if p.OrderDesc {
		dir = "DESC"
	}
	q := `SELECT ` + participationColumns + ` FROM participation_requests` + where +
		" ORDER BY created_at " + dir
	if p.Limit > 0 {
		args = append(args, p.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if p.Offset > 0 {
		args = append(args, p.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []ParticipationRequest
	for rows.Next() {
		d, err := scanParticipationDoc(rows)
		if err != nil {
			return nil, 0, err
		}
		if req, ok := d.Entity(); ok {
			out = append(out, req)
		}
	}
	return out, total, rows.Err()
}

func (r *Repo) UpdateParticipationStatus(ctx context.Context, id string, status ParticipationStatus, reviewedByProfileID string) (ParticipationRequest, error) {
	d, err := scanParticipationDoc(r.DB.QueryRow(ctx, `
		UPDATE participation_requests
		SET status=$2, reviewed_at=now(), reviewed_by_profile_id=$3, updated_at=now()
		WHERE id=$1
		RETURNING `+participationColumns,
		id, string(status), reviewedByProfileID))
	if errors.Is(err, pgx.ErrNoRows) {
		return ParticipationRequest{}, ErrNotFound
	}
	if err != nil {
		return ParticipationRequest{}, err
	}
	req, ok := d.Entity()
	if !ok {
		return ParticipationRequest{}, fmt.Errorf("participation request %s has invalid shape after update", id)
	}
	return req, nil
}

func (r *Repo) ListBidDocs(ctx context.Context, auctionID string) ([]BidDoc, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, auction_id, product_id, user_id, phone_number, amount, fallback_rank, created_at
		FROM bids WHERE auction_id=$1 ORDER BY created_at`, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BidDoc
	for rows.Next() {
		var d BidDoc
		if err := rows.Scan(&d.ID, &d.AuctionID, &d.ProductID, &d.UserID, &d.PhoneNumber,
			&d.Amount, &d.FallbackRank, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

const confirmationColumns = `id, auction_id, product_id, user_id, status, confirmed_at,
	fallback_rank, created_at, updated_at`

func scanConfirmationDoc(row pgx.Row) (ConfirmationDoc, error) {
	var d ConfirmationDoc
	err := row.Scan(&d.ID, &d.AuctionID, &d.ProductID, &d.UserID, &d.Status,
		&d.ConfirmedAt, &d.FallbackRank, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *Repo) ListConfirmationDocs(ctx context.Context, auctionID string) ([]ConfirmationDoc, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+confirmationColumns+`
		FROM winner_confirmations WHERE auction_id=$1`, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConfirmationDoc
	for rows.Next() {
		d, err := scanConfirmationDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) CreateWinnerConfirmation(ctx context.Context, wc WinnerConfirmation) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO winner_confirmations(id, auction_id, product_id, user_id, status, confirmed_at, fallback_rank, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now(),now())`,
		wc.ID, wc.AuctionID, wc.ProductID, wc.UserID, string(wc.Status), wc.ConfirmedAt, wc.FallbackRank)
	return err
}

// UpdateWinnerConfirmationStatus mencatat hasil attempt; confirmed_at terisi
// hanya saat status jadi confirmed.
func (r *Repo) UpdateWinnerConfirmationStatus(ctx context.Context, id string, status ConfirmationStatus) (WinnerConfirmation, error) {
	d, err := scanConfirmationDoc(r.DB.QueryRow(ctx, `
		UPDATE winner_confirmations
		SET status=$2,
		    confirmed_at=CASE WHEN $2='confirmed' THEN now() ELSE confirmed_at END,
		    updated_at=now()
		WHERE id=$1
		RETURNING `+confirmationColumns,
		id, string(status)))
	if errors.Is(err, pgx.ErrNoRows) {
		return WinnerConfirmation{}, ErrNotFound
	}
	if err != nil {
		return WinnerConfirmation{}, err
	}
	wc, ok := d.Entity()
	if !ok {
		return WinnerConfirmation{}, fmt.Errorf("winner confirmation %s has invalid shape after update", id)
	}
	return wc, nil
}
