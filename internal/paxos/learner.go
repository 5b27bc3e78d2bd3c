// =============================================================================
// LEARNER - Recognizing the Chosen Value
// =============================================================================
//
// A value is chosen once a strict majority of all nodes accepted the same
// proposal within one Propose phase. The learner keeps the last chosen
// proposal; later rounds that reach quorum re-learn it, and the adoption
// rule guarantees they carry the same value.
//
// A later quorum with a different value would mean the adoption rule was
// bypassed. The learner still records it, as the round did happen, but logs
// a warning.
//
// =============================================================================

package paxos

import (
	"context"

	"github.com/senutpal/paxossim/internal/klogging"
)

type Learner struct {
	chosen    Proposal
	hasChosen bool
}

func NewLearner() *Learner {
	return &Learner{chosen: EmptyProposal()}
}

// Learn records p as chosen if responses is a majority of nodeCount, and
// reports whether it did.
func (l *Learner) Learn(ctx context.Context, p Proposal, responses, nodeCount int) bool {
	if !IsMajority(responses, nodeCount) {
		return false
	}
	if l.hasChosen && l.chosen.Value != p.Value {
		klogging.Warning(ctx).
			With("previousValue", l.chosen.Value).
			With("previousNumber", l.chosen.Number).
			With("newValue", p.Value).
			With("newNumber", p.Number).
			Log("ChosenValueChanged", "a different value reached quorum")
	}
	l.chosen = p
	l.hasChosen = true
	return true
}

func (l *Learner) ChosenValue() (string, bool) {
	return l.chosen.Value, l.hasChosen
}

// Chosen returns the proposal that last reached quorum.
func (l *Learner) Chosen() (Proposal, bool) {
	return l.chosen, l.hasChosen
}
