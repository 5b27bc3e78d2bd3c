// =============================================================================
// TRANSPORT - How Requests Reach the Nodes
// =============================================================================
//
// The simulator has no wire. A request is "delivered" by calling the target
// node's handler directly and turning its return values into a reply
// message. Delivery is:
//
// - synchronous: every handler returns before the next one is called
// - ordered:     nodes are visited in the order they were added
// - complete:    every node gets the request and produces exactly one reply
//
// There is no delay, reordering or loss at this layer. Unavailability is
// modeled by the node itself (see node.FailsRequest) as an error reply.
//
// =============================================================================

package transport

import (
	"github.com/senutpal/paxossim/internal/paxos"
)

// Endpoint is anything that can answer Prepare and Propose requests.
type Endpoint interface {
	ID() int
	HandlePrepare(number int64) (paxos.Proposal, error)
	HandlePropose(p paxos.Proposal) error
}

var _ paxos.Transport = (*Loopback)(nil)
