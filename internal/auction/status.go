package auction

// Status: lifecycle kasar sebuah auction.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Progress: tahap detail di dalam lifecycle. Nilai ini di-advance oleh
// operator lewat endpoint update; engine stats hanya membaca nilainya.
type Progress string

const (
	ProgressVotingOpen            Progress = "voting_open"
	ProgressVotingClosed          Progress = "voting_closed"
	ProgressParticipationApproval Progress = "participation_approval"
	ProgressLiveAuction           Progress = "live_auction"
	ProgressWinnerConfirmation    Progress = "winner_confirmation"
	ProgressFallbackResolution    Progress = "fallback_resolution"
)

type ParticipationStatus string

const (
	ParticipationPending  ParticipationStatus = "pending"
	ParticipationApproved ParticipationStatus = "approved"
	ParticipationDeclined ParticipationStatus = "declined"
)

type ConfirmationStatus string

const (
	ConfirmationPending       ConfirmationStatus = "pending_confirmation"
	ConfirmationConfirmed     ConfirmationStatus = "confirmed"
	ConfirmationRejected      ConfirmationStatus = "rejected"
	ConfirmationPaymentFailed ConfirmationStatus = "payment_failed"
	ConfirmationUnreachable   ConfirmationStatus = "unreachable"
)

var validNextStatus = map[Status]map[Status]bool{
	StatusDraft:     {StatusScheduled: true, StatusCancelled: true},
	StatusScheduled: {StatusActive: true, StatusCancelled: true},
	StatusActive:    {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

func CanTransitionStatus(from, to Status) bool {
	return validNextStatus[from][to]
}

// Urutan progress: voting_open -> voting_closed -> participation_approval ->
// live_auction -> winner_confirmation -> fallback_resolution.
// winner_confirmation boleh kembali ke live_auction (produk berikutnya).
var validNextProgress = map[Progress]map[Progress]bool{
	ProgressVotingOpen:            {ProgressVotingClosed: true},
	ProgressVotingClosed:          {ProgressParticipationApproval: true},
	ProgressParticipationApproval: {ProgressLiveAuction: true},
	ProgressLiveAuction:           {ProgressWinnerConfirmation: true},
	ProgressWinnerConfirmation:    {ProgressFallbackResolution: true, ProgressLiveAuction: true},
	ProgressFallbackResolution:    {ProgressLiveAuction: true},
}

func CanTransitionProgress(from, to Progress) bool {
	return validNextProgress[from][to]
}

func (s Status) Known() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Known lapor apakah nilai progress dikenali. Nilai asing TIDAK dianggap
// error oleh engine; filter produk fail-open (lihat progress.go).
func (p Progress) Known() bool {
	switch p {
	case ProgressVotingOpen, ProgressVotingClosed, ProgressParticipationApproval,
		ProgressLiveAuction, ProgressWinnerConfirmation, ProgressFallbackResolution:
		return true
	}
	return false
}

func (s ParticipationStatus) Known() bool {
	switch s {
	case ParticipationPending, ParticipationApproved, ParticipationDeclined:
		return true
	}
	return false
}

func (s ConfirmationStatus) Known() bool {
	switch s {
	case ConfirmationPending, ConfirmationConfirmed, ConfirmationRejected,
		ConfirmationPaymentFailed, ConfirmationUnreachable:
		return true
	}
	return false
}

// FailedOutcome: status yang memicu fallback ke kandidat berikutnya.
func (s ConfirmationStatus) FailedOutcome() bool {
	switch s {
	case ConfirmationRejected, ConfirmationPaymentFailed, ConfirmationUnreachable:
		return true
	}
	return false
}
