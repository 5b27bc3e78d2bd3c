// =============================================================================
// PROPOSALS - Ballot Numbers and Values
// =============================================================================
//
// A proposal pairs a ballot number with a value. Acceptors compare numbers
// only: a higher number always beats a lower one, and a proposal whose
// number is below an acceptor's promise is rejected.
//
// The simulator has exactly one proposer at a time, so the number is a
// plain integer chosen by the operator instead of a (round, proposerID)
// pair. Two rounds submitted with the same number are allowed; the second
// one re-promises at the same ballot.
//
// EmptyProposal (number -1, value "") stands for "nothing accepted yet". It
// loses every comparison against a real proposal, which is what lets the
// Prepare phase start its search for the highest prior proposal from it.
//
// =============================================================================

package paxos

import "fmt"

// NoProposalNumber is the ballot number of EmptyProposal.
const NoProposalNumber int64 = -1

// Proposal is immutable; build a new one for every attempt.
type Proposal struct {
	Number int64  `json:"number"`
	Value  string `json:"value"`
}

func NewProposal(number int64, value string) Proposal {
	return Proposal{Number: number, Value: value}
}

// EmptyProposal is the identity element for "highest proposal seen".
func EmptyProposal() Proposal {
	return Proposal{Number: NoProposalNumber}
}

// IsEmpty reports whether no real proposal is carried.
func (p Proposal) IsEmpty() bool {
	return p.Number <= NoProposalNumber
}

func (p Proposal) GreaterThan(other Proposal) bool {
	return p.Number > other.Number
}

func (p Proposal) String() string {
	if p.IsEmpty() {
		return "(none)"
	}
	return fmt.Sprintf("(number=%d, value=%q)", p.Number, p.Value)
}
