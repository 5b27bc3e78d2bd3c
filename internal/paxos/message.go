// =============================================================================
// MESSAGES - What Travels Between Proposer and Acceptors
// =============================================================================
//
//   Proposer                          Acceptor
//      │ ── Prepare{Number} ──────────▶ │
//      │ ◀──────────── Promise{...} ─── │   Err set on rejection/failure
//      │ ── Accept{Proposal} ─────────▶ │
//      │ ◀─────────── Accepted{...} ─── │   Err set on rejection/failure
//
// Replies always come back, even for a node that "failed": the simulator
// models unavailability as an immediate error reply rather than a hang.
//
// =============================================================================

package paxos

type Prepare struct {
	Number int64
	From   int
}

type Promise struct {
	Number   int64
	Previous Proposal // last accepted proposal of the replying node
	From     int
	Err      error
}

func (p Promise) OK() bool { return p.Err == nil }

type Accept struct {
	Proposal Proposal
	From     int
}

type Accepted struct {
	Proposal Proposal
	From     int
	Err      error
}

func (a Accepted) OK() bool { return a.Err == nil }
