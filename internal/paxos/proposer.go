// =============================================================================
// PROPOSER - Driving One Prepare/Propose Round
// =============================================================================
//
//   Idle ──▶ Preparing ──┬──▶ Proposing ──▶ Decided (chosen / not chosen)
//                        └──▶ PrepareQuorumFailed
//
// PHASE 1: Prepare(n) goes to every node, the proposer's own node included.
//          Each successful Promise counts once; the highest-numbered
//          previously accepted proposal among them is remembered.
//
// PHASE 2: Only with a strict majority of promises. If any promise carried
//          a previously accepted proposal, its value replaces the caller's
//          value. This adoption rule is what keeps a chosen value chosen.
//          Accept(n, value) then goes to every node.
//
// A failed or rejected reply never aborts a phase. It becomes an ERROR entry
// in the event log keyed by the replying node, and the loop moves on.
// Round-level INFO entries are keyed by the proposer id.
//
// =============================================================================

package paxos

import (
	"context"
	"fmt"

	"github.com/senutpal/paxossim/internal/klogging"
)

// Transport delivers a request to every node and returns one reply per node,
// in node registration order.
type Transport interface {
	BroadcastPrepare(ctx context.Context, msg Prepare) []Promise
	BroadcastAccept(ctx context.Context, msg Accept) []Accepted
	Size() int
}

type Outcome string

const (
	OutcomeChosen              Outcome = "chosen"
	OutcomeNotChosen           Outcome = "not_chosen"
	OutcomePrepareQuorumFailed Outcome = "prepare_quorum_failed"
)

// RoundResult summarizes one round; the event log holds the details.
type RoundResult struct {
	Number           int64   `json:"number"`
	SubmittedValue   string  `json:"submittedValue"`
	Value            string  `json:"value"` // value carried by the Propose phase
	Adopted          bool    `json:"adopted"`
	NodeCount        int     `json:"nodeCount"`
	PrepareResponses int     `json:"prepareResponses"`
	ProposeResponses int     `json:"proposeResponses"`
	Outcome          Outcome `json:"outcome"`
}

type Proposer struct {
	id        int
	transport Transport
	eventLog  *EventLog
	learner   *Learner
}

func NewProposer(id int, transport Transport, eventLog *EventLog, learner *Learner) *Proposer {
	return &Proposer{
		id:        id,
		transport: transport,
		eventLog:  eventLog,
		learner:   learner,
	}
}

// Run executes one full round with the given ballot number and value.
func (p *Proposer) Run(ctx context.Context, number int64, value string) RoundResult {
	result := RoundResult{
		Number:         number,
		SubmittedValue: value,
		Value:          value,
		NodeCount:      p.transport.Size(),
	}
	klogging.Info(ctx).With("proposerId", p.id).With("number", number).With("value", value).With("nodeCount", result.NodeCount).Log("PrepareStarted", "")

	responses, highest := p.runPhase1(ctx, number)
	result.PrepareResponses = responses
	if !IsMajority(responses, result.NodeCount) {
		p.eventLog.Info(p.id, "A majority of nodes did not respond to prepare request. Proposal will not be sent")
		result.Outcome = OutcomePrepareQuorumFailed
		p.finish(ctx, result)
		return result
	}

	if !highest.IsEmpty() {
		p.eventLog.Info(p.id, fmt.Sprintf("Highest numbered proposal received ('%s') in prepare overwrites submitted proposal value", highest.Value))
		result.Value = highest.Value
		result.Adopted = true
	}

	proposal := NewProposal(number, result.Value)
	result.ProposeResponses = p.runPhase2(ctx, proposal)
	if p.learner.Learn(ctx, proposal, result.ProposeResponses, result.NodeCount) {
		p.eventLog.Info(p.id, fmt.Sprintf("Received %d/%d responses. Value '%s' has been chosen", result.ProposeResponses, result.NodeCount, proposal.Value))
		result.Outcome = OutcomeChosen
	} else {
		p.eventLog.Info(p.id, fmt.Sprintf("Received %d/%d responses. Did not receive enough responses from acceptors for value '%s' to be chosen", result.ProposeResponses, result.NodeCount, proposal.Value))
		result.Outcome = OutcomeNotChosen
	}
	p.finish(ctx, result)
	return result
}

func (p *Proposer) runPhase1(ctx context.Context, number int64) (int, Proposal) {
	promises := p.transport.BroadcastPrepare(ctx, Prepare{Number: number, From: p.id})
	highest := EmptyProposal()
	responses := 0
	for _, promise := range promises {
		reportReply(PhasePrepare, promise.Err)
		if !promise.OK() {
			p.eventLog.Error(promise.From, Message(promise.Err))
			klogging.Debug(ctx).With("nodeId", promise.From).WithError(promise.Err).Log("PrepareRejected", "")
			continue
		}
		responses++
		if promise.Previous.GreaterThan(highest) {
			highest = promise.Previous
		}
		klogging.Debug(ctx).With("nodeId", promise.From).With("previous", promise.Previous.String()).Log("PrepareAccepted", "")
	}
	return responses, highest
}

func (p *Proposer) runPhase2(ctx context.Context, proposal Proposal) int {
	replies := p.transport.BroadcastAccept(ctx, Accept{Proposal: proposal, From: p.id})
	responses := 0
	for _, accepted := range replies {
		reportReply(PhasePropose, accepted.Err)
		if !accepted.OK() {
			p.eventLog.Error(accepted.From, Message(accepted.Err))
			klogging.Debug(ctx).With("nodeId", accepted.From).WithError(accepted.Err).Log("ProposeRejected", "")
			continue
		}
		responses++
		klogging.Debug(ctx).With("nodeId", accepted.From).Log("ProposeAccepted", "")
	}
	return responses
}

func (p *Proposer) finish(ctx context.Context, result RoundResult) {
	RoundMetrics.GetTimeSequence(string(result.Outcome)).Add(1)
	klogging.Info(ctx).
		With("proposerId", p.id).
		With("number", result.Number).
		With("value", result.Value).
		With("prepareResponses", result.PrepareResponses).
		With("proposeResponses", result.ProposeResponses).
		With("outcome", result.Outcome).
		Log("RoundFinished", "")
}
