package paxos

import (
	"fmt"

	"github.com/senutpal/paxossim/internal/kerror"
)

// Error kinds. Per-node kinds (RequestFailed, StaleProposal) are expected
// during a round and end up in the event log; the others are API misuse and
// are returned to the caller.
const (
	ErrRequestFailed          = "RequestFailed"
	ErrStaleProposal          = "StaleProposal"
	ErrUnknownNode            = "UnknownNode"
	ErrInvalidNodeCount       = "InvalidNodeCount"
	ErrInvalidErrorPercentage = "InvalidErrorPercentage"
	ErrNoProposerSet          = "NoProposerSet"
)

type Phase string

const (
	PhasePrepare Phase = "prepare"
	PhasePropose Phase = "propose"
)

func NewRequestFailed(phase Phase) *kerror.Kerror {
	return kerror.Create(ErrRequestFailed, fmt.Sprintf("Randomly failed to respond to %s request", phase)).
		WithErrorCode(kerror.EC_UNAVAILABLE)
}

func NewStaleProposal(number, maxAcceptable int64) *kerror.Kerror {
	return kerror.Create(ErrStaleProposal, fmt.Sprintf("Proposal number is too low to accept. Maximum acceptable value is %d", maxAcceptable)).
		WithErrorCode(kerror.EC_CONFLICT).
		With("proposalNumber", number)
}

func NewUnknownNode(id int) *kerror.Kerror {
	return kerror.Create(ErrUnknownNode, "no node with this id in the network").
		WithErrorCode(kerror.EC_NOT_FOUND).
		With("nodeId", id)
}

func NewInvalidNodeCount(count int) *kerror.Kerror {
	return kerror.Create(ErrInvalidNodeCount, "Number must be positive/nonzero").
		WithErrorCode(kerror.EC_INVALID_PARAMETER).
		With("nodeCount", count)
}

func NewInvalidErrorPercentage(pct float64) *kerror.Kerror {
	return kerror.Create(ErrInvalidErrorPercentage, "error percentage must be within [0, 1]").
		WithErrorCode(kerror.EC_INVALID_PARAMETER).
		With("errorPercentage", pct)
}

func NewNoProposerSet() *kerror.Kerror {
	return kerror.Create(ErrNoProposerSet, "There is no proposer id set").
		WithErrorCode(kerror.EC_PRECONDITION)
}

// Message returns the text that goes into an event log entry for err.
func Message(err error) string {
	if ke, ok := err.(*kerror.Kerror); ok {
		return ke.Msg
	}
	return err.Error()
}
