// =============================================================================
// ACCEPTOR - The Safety Guardian of Paxos
// =============================================================================
//
// Two rules, applied to both phases with the same comparison:
//
// PROMISE RULE:    Prepare(n) is rejected when n < maxAcceptable. Otherwise
//                  maxAcceptable = n and the last accepted proposal is
//                  returned unchanged.
//
// ACCEPTANCE RULE: Propose(p) is rejected when p.Number < maxAcceptable.
//                  Otherwise maxAcceptable = p.Number and p becomes the
//                  accepted proposal.
//
// Equal numbers pass both checks, so a proposer that was promised n can
// have n accepted, and a repeated Prepare at the same ballot re-promises.
//
// maxAcceptable never decreases and accepted.Number <= maxAcceptable
// always holds after a successful call.
//
// =============================================================================

package paxos

import (
	"github.com/senutpal/paxossim/internal/kerror"
	"github.com/senutpal/paxossim/internal/storage"
)

type Acceptor struct {
	storage storage.Storage
}

func NewAcceptor(s storage.Storage) *Acceptor {
	return &Acceptor{storage: s}
}

// HandlePrepare applies the promise rule and returns the previously accepted
// proposal (EmptyProposal if none).
func (a *Acceptor) HandlePrepare(number int64) (Proposal, error) {
	maxAcceptable, err := a.storage.LoadPromised()
	if err != nil {
		return EmptyProposal(), wrapStorage(err)
	}
	if number < maxAcceptable {
		return EmptyProposal(), NewStaleProposal(number, maxAcceptable)
	}
	if err := a.storage.SavePromised(number); err != nil {
		return EmptyProposal(), wrapStorage(err)
	}
	return a.accepted()
}

// HandlePropose applies the acceptance rule.
func (a *Acceptor) HandlePropose(p Proposal) error {
	maxAcceptable, err := a.storage.LoadPromised()
	if err != nil {
		return wrapStorage(err)
	}
	if p.Number < maxAcceptable {
		return NewStaleProposal(p.Number, maxAcceptable)
	}
	if err := a.storage.SavePromised(p.Number); err != nil {
		return wrapStorage(err)
	}
	if err := a.storage.SaveAccepted(p.Number, p.Value); err != nil {
		return wrapStorage(err)
	}
	return nil
}

// State returns (maxAcceptable, previously accepted proposal).
func (a *Acceptor) State() (int64, Proposal) {
	maxAcceptable, _ := a.storage.LoadPromised()
	previous, _ := a.accepted()
	return maxAcceptable, previous
}

func (a *Acceptor) accepted() (Proposal, error) {
	number, value, err := a.storage.LoadAccepted()
	if err != nil {
		return EmptyProposal(), wrapStorage(err)
	}
	return NewProposal(number, value), nil
}

func wrapStorage(err error) *kerror.Kerror {
	return kerror.Wrap(err, "StorageError", "acceptor state unavailable", true).
		WithErrorCode(kerror.EC_INTERNAL_ERROR)
}
