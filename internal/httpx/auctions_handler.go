package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ariefcatur/go-auction-admin.git/internal/auction"
	kafkax "github.com/ariefcatur/go-auction-admin.git/internal/kafka"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

type AuctionsHandler struct {
	Repo            *auction.Repo
	Stats           *auction.Service
	ProducerReview  *kafkax.Producer // auction.participation.reviewed
	ProducerOutcome *kafkax.Producer // auction.winner.outcome
	Service         string
}

func (h *AuctionsHandler) Register(r *chi.Mux) {
	r.Get("/auctions", h.listAuctions)
	r.Post("/auctions", h.createAuction)
	r.Get("/auctions/featured", h.featuredAuction)
	r.Get("/auctions/{id}", h.getAuction)
	r.Put("/auctions/{id}", h.updateAuction)
	r.Delete("/auctions/{id}", h.deleteAuction)
	r.Get("/auctions/{id}/products", h.listProducts)
	r.Post("/auctions/{id}/products", h.createProducts)
	r.Get("/auctions/{id}/stage", h.stageView)
	r.Get("/auctions/{id}/stats", h.auctionStats)
	r.Get("/auctions/{id}/participation-requests", h.listParticipation)
	r.Post("/participation-requests/{id}/review", h.reviewParticipation)
	r.Post("/winner-confirmations/{id}/outcome", h.recordOutcome)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

type ListAuctionsResp struct {
	Auctions []auction.Auction `json:"auctions"`
	Total    int               `json:"total"`
}

func (h *AuctionsHandler) listAuctions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	q := r.URL.Query()
	list, total, err := h.Repo.ListAuctions(ctx, auction.ListAuctionsParams{
		Status:      auction.Status(q.Get("status")),
		Progress:    auction.Progress(q.Get("progress")),
		TitleSearch: q.Get("title_search"),
		OrderBy:     q.Get("order_by"),
		OrderDesc:   q.Get("order_desc") == "true",
		Limit:       queryInt(r, "limit", 25),
		Offset:      queryInt(r, "offset", 0),
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []auction.Auction{}
	}
	writeJSON(w, http.StatusOK, ListAuctionsResp{Auctions: list, Total: total})
}

func (h *AuctionsHandler) getAuction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	a, err := h.Repo.GetAuction(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, auction.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AuctionsHandler) createAuction(w http.ResponseWriter, r *http.Request) {
	var p auction.AuctionParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if p.Title == "" || p.StartAt.IsZero() || p.VotingEndAt.IsZero() {
		writeErr(w, http.StatusBadRequest, "missing fields")
		return
	}
	if p.Status == "" {
		p.Status = auction.StatusDraft
	}
	if p.Progress == "" {
		p.Progress = auction.ProgressVotingOpen
	}
	if !p.Status.Known() || !p.Progress.Known() {
		writeErr(w, http.StatusBadRequest, "unknown status or progress")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	a, err := h.Repo.CreateAuction(ctx, p)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AuctionsHandler) updateAuction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p auction.AuctionParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !p.Status.Known() || !p.Progress.Known() {
		writeErr(w, http.StatusBadRequest, "unknown status or progress")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := h.Repo.GetAuction(ctx, id)
	if errors.Is(err, auction.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Engine stats tidak pernah menggeser progress sendiri; perpindahan
	// datang dari operator dan divalidasi di sini.
	if p.Status != cur.Status && !auction.CanTransitionStatus(cur.Status, p.Status) {
		writeErr(w, http.StatusUnprocessableEntity, "invalid status transition")
		return
	}
	if p.Progress != cur.Progress && !auction.CanTransitionProgress(cur.Progress, p.Progress) {
		// draft masih bebas diatur ulang
		if cur.Status != auction.StatusDraft {
			writeErr(w, http.StatusUnprocessableEntity, "invalid progress transition")
			return
		}
	}

	a, err := h.Repo.UpdateAuction(ctx, id, p)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AuctionsHandler) deleteAuction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.Repo.DeleteAuction(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, auction.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuctionsHandler) featuredAuction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	a, err := h.Stats.FeaturedAuction(ctx)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"auction": a})
}

func (h *AuctionsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Repo.ListAuctionProducts(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ps == nil {
		ps = []auction.AuctionProduct{}
	}
	writeJSON(w, http.StatusOK, ps)
}

type CreateProductsReq struct {
	Products []auction.AuctionProductParams `json:"products"`
}

func (h *AuctionsHandler) createProducts(w http.ResponseWriter, r *http.Request) {
	var req CreateProductsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Products) == 0 {
		writeErr(w, http.StatusBadRequest, "missing products")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ps, err := h.Repo.CreateAuctionProducts(ctx, chi.URLParam(r, "id"), req.Products)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ps)
}

type StageViewResp struct {
	Progress      auction.Progress         `json:"progress"`
	Products      []auction.AuctionProduct `json:"products"`
	LiveProductID string                   `json:"live_product_id,omitempty"`
}

// stageView: produk yang relevan untuk tahap sekarang + produk live (kalau
// sedang live_auction). Murni turunan dari progress dan rows auction_products.
func (h *AuctionsHandler) stageView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	a, err := h.Repo.GetAuction(ctx, id)
	if errors.Is(err, auction.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	products, err := h.Repo.ListAuctionProducts(ctx, id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := StageViewResp{
		Progress: a.Progress,
		Products: auction.FilterProductsByProgress(products, a.Progress),
	}
	if resp.Products == nil {
		resp.Products = []auction.AuctionProduct{}
	}
	if a.Progress == auction.ProgressLiveAuction {
		resp.LiveProductID = auction.SelectLiveProductID(products)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuctionsHandler) auctionStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Stats.Stats(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type ListParticipationResp struct {
	Requests []auction.ParticipationRequest `json:"requests"`
	Total    int                            `json:"total"`
}

func (h *AuctionsHandler) listParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	reqs, total, err := h.Repo.ListParticipationRequests(ctx, chi.URLParam(r, "id"), auction.ListParticipationParams{
		Status:    auction.ParticipationStatus(r.URL.Query().Get("status")),
		OrderDesc: r.URL.Query().Get("order_desc") == "true",
		Limit:     queryInt(r, "limit", 25),
		Offset:    queryInt(r, "offset", 0),
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if reqs == nil {
		reqs = []auction.ParticipationRequest{}
	}
	writeJSON(w, http.StatusOK, ListParticipationResp{Requests: reqs, Total: total})
}

type ReviewParticipationReq struct {
	Status              string `json:"status"` // approved | declined
	ReviewedByProfileID string `json:"reviewed_by_profile_id"`
}

func (h *AuctionsHandler) reviewParticipation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ReviewParticipationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	status := auction.ParticipationStatus(req.Status)
	if status != auction.ParticipationApproved && status != auction.ParticipationDeclined {
		writeErr(w, http.StatusBadRequest, "status must be approved or declined")
		return
	}
	if req.ReviewedByProfileID == "" {
		writeErr(w, http.StatusBadRequest, "missing reviewed_by_profile_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pr, err := h.Repo.UpdateParticipationStatus(ctx, id, status, req.ReviewedByProfileID)
	if errors.Is(err, auction.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := auction.ParticipationReviewedPayload{
		RequestID:           pr.ID,
		AuctionID:           pr.AuctionID,
		Status:              string(pr.Status),
		ReviewedByProfileID: req.ReviewedByProfileID,
	}
	if pr.ProductID != nil {
		payload.ProductID = *pr.ProductID
	}
	h.publish(h.ProducerReview, r, auction.EventParticipationReviewed, pr.AuctionID, kafkax.MustMarshal(payload))

	writeJSON(w, http.StatusOK, pr)
}

type RecordOutcomeReq struct {
	Status string `json:"status"`
}

// recordOutcome: admin mencatat hasil attempt konfirmasi pemenang. Outcome
// gagal memicu fallback worker lewat topic auction.winner.outcome.
func (h *AuctionsHandler) recordOutcome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req RecordOutcomeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	status := auction.ConfirmationStatus(req.Status)
	if !status.Known() || status == auction.ConfirmationPending {
		writeErr(w, http.StatusBadRequest, "invalid outcome status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	wc, err := h.Repo.UpdateWinnerConfirmationStatus(ctx, id, status)
	if errors.Is(err, auction.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.publish(h.ProducerOutcome, r, auction.EventWinnerOutcomeRecorded, wc.AuctionID,
		kafkax.MustMarshal(auction.WinnerOutcomePayload{
			ConfirmationID: wc.ID,
			AuctionID:      wc.AuctionID,
			ProductID:      wc.ProductID,
			UserID:         wc.UserID,
			Status:         string(wc.Status),
			FallbackRank:   wc.FallbackRank,
		}))

	writeJSON(w, http.StatusOK, wc)
}

func (h *AuctionsHandler) publish(p *kafkax.Producer, r *http.Request, eventType, auctionID string, payload []byte) {
	if p == nil {
		return
	}
	ev := auction.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: auctionID,
		Payload:       payload,
	}
	p.Publish(auction.PartitionKey(auctionID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
