package auction

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestCanTransitionStatus(t *testing.T) {
	check.True(t, CanTransitionStatus(StatusDraft, StatusScheduled))
	check.True(t, CanTransitionStatus(StatusScheduled, StatusActive))
	check.True(t, CanTransitionStatus(StatusActive, StatusCompleted))
	check.True(t, CanTransitionStatus(StatusActive, StatusCancelled))

	check.False(t, CanTransitionStatus(StatusDraft, StatusActive))
	check.False(t, CanTransitionStatus(StatusCompleted, StatusActive))
	check.False(t, CanTransitionStatus(StatusCancelled, StatusScheduled))
}

func TestCanTransitionProgress(t *testing.T) {
	check.True(t, CanTransitionProgress(ProgressVotingOpen, ProgressVotingClosed))
	check.True(t, CanTransitionProgress(ProgressVotingClosed, ProgressParticipationApproval))
	check.True(t, CanTransitionProgress(ProgressParticipationApproval, ProgressLiveAuction))
	check.True(t, CanTransitionProgress(ProgressLiveAuction, ProgressWinnerConfirmation))
	check.True(t, CanTransitionProgress(ProgressWinnerConfirmation, ProgressFallbackResolution))
	// produk berikutnya kembali ke live
	check.True(t, CanTransitionProgress(ProgressWinnerConfirmation, ProgressLiveAuction))
	check.True(t, CanTransitionProgress(ProgressFallbackResolution, ProgressLiveAuction))

	check.False(t, CanTransitionProgress(ProgressVotingOpen, ProgressLiveAuction))
	check.False(t, CanTransitionProgress(ProgressVotingClosed, ProgressVotingOpen))
	check.False(t, CanTransitionProgress(Progress("grand_finale"), ProgressVotingOpen))
}

func TestProgressKnown(t *testing.T) {
	known := []Progress{
		ProgressVotingOpen, ProgressVotingClosed, ProgressParticipationApproval,
		ProgressLiveAuction, ProgressWinnerConfirmation, ProgressFallbackResolution,
	}
	for _, p := range known {
		check.True(t, p.Known())
	}
	check.False(t, Progress("grand_finale").Known())
	check.False(t, Progress("").Known())
}

func TestConfirmationStatusFailedOutcome(t *testing.T) {
	check.True(t, ConfirmationRejected.FailedOutcome())
	check.True(t, ConfirmationPaymentFailed.FailedOutcome())
	check.True(t, ConfirmationUnreachable.FailedOutcome())

	check.False(t, ConfirmationConfirmed.FailedOutcome())
	check.False(t, ConfirmationPending.FailedOutcome())
}
