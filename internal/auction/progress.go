package auction

import "sort"

// FilterProductsByProgress memilih subset AuctionProduct yang relevan untuk
// tahap sekarang:
//   - voting_open / voting_closed: semua produk (urutan input dipertahankan)
//   - participation_approval s/d fallback_resolution: hanya selected_for_live
//   - nilai progress asing: fail-open, kembalikan semua
func FilterProductsByProgress(products []AuctionProduct, progress Progress) []AuctionProduct {
	switch progress {
	case ProgressVotingOpen, ProgressVotingClosed:
		return products
	case ProgressParticipationApproval, ProgressLiveAuction,
		ProgressWinnerConfirmation, ProgressFallbackResolution:
		out := make([]AuctionProduct, 0, len(products))
		for _, p := range products {
			if p.SelectedForLive {
				out = append(out, p)
			}
		}
		return out
	default:
		return products
	}
}

// SelectLiveProductID menentukan produk yang sedang live: produk
// selected_for_live dengan sort_order terkecil. sort_order adalah satu-satunya
// tie-break. Return "" kalau belum ada produk terpilih.
// Hanya bermakna saat progress = live_auction.
func SelectLiveProductID(products []AuctionProduct) string {
	selected := make([]AuctionProduct, 0, len(products))
	for _, p := range products {
		if p.SelectedForLive {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		return ""
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].SortOrder < selected[j].SortOrder
	})
	return selected[0].ProductID
}

// SelectFeaturedAuction: coalesce tiga hasil query limit-1,
// precedence active -> completed -> scheduled -> nil.
func SelectFeaturedAuction(active, completed, scheduled []Auction) *Auction {
	if len(active) > 0 {
		return &active[0]
	}
	if len(completed) > 0 {
		return &completed[0]
	}
	if len(scheduled) > 0 {
		return &scheduled[0]
	}
	return nil
}
