package transport

import (
	"context"

	"github.com/senutpal/paxossim/internal/kerror"
	"github.com/senutpal/paxossim/internal/klogging"
	"github.com/senutpal/paxossim/internal/paxos"
)

// Loopback delivers requests in-process to registered endpoints.
type Loopback struct {
	endpoints []Endpoint
	byID      map[int]Endpoint
}

func NewLoopback() *Loopback {
	return &Loopback{byID: make(map[int]Endpoint)}
}

// AddNode registers an endpoint; ids must be unique.
func (l *Loopback) AddNode(e Endpoint) error {
	if _, ok := l.byID[e.ID()]; ok {
		return kerror.Create("DuplicateNode", "node id already registered").
			WithErrorCode(kerror.EC_CONFLICT).
			With("nodeId", e.ID())
	}
	l.endpoints = append(l.endpoints, e)
	l.byID[e.ID()] = e
	return nil
}

func (l *Loopback) Lookup(id int) (Endpoint, bool) {
	e, ok := l.byID[id]
	return e, ok
}

func (l *Loopback) Size() int {
	return len(l.endpoints)
}

func (l *Loopback) BroadcastPrepare(ctx context.Context, msg paxos.Prepare) []paxos.Promise {
	replies := make([]paxos.Promise, 0, len(l.endpoints))
	for _, e := range l.endpoints {
		previous, err := e.HandlePrepare(msg.Number)
		klogging.Verbose(ctx).With("from", msg.From).With("to", e.ID()).With("number", msg.Number).With("ok", err == nil).Log("PrepareDelivered", "")
		replies = append(replies, paxos.Promise{
			Number:   msg.Number,
			Previous: previous,
			From:     e.ID(),
			Err:      err,
		})
	}
	return replies
}

func (l *Loopback) BroadcastAccept(ctx context.Context, msg paxos.Accept) []paxos.Accepted {
	replies := make([]paxos.Accepted, 0, len(l.endpoints))
	for _, e := range l.endpoints {
		err := e.HandlePropose(msg.Proposal)
		klogging.Verbose(ctx).With("from", msg.From).With("to", e.ID()).With("number", msg.Proposal.Number).With("ok", err == nil).Log("AcceptDelivered", "")
		replies = append(replies, paxos.Accepted{
			Proposal: msg.Proposal,
			From:     e.ID(),
			Err:      err,
		})
	}
	return replies
}
