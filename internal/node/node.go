// =============================================================================
// NODE - One Participant of the Simulated Network
// =============================================================================
//
// Every node is an acceptor. At most one node per network additionally holds
// the Proposer role; the network moves that role around, the node only
// records it.
//
//   ┌──────────────────────────────────────────┐
//   │                   NODE                   │
//   │  role: Acceptor | Proposer               │
//   │  errorPercentage ──▶ FailsRequest()      │
//   │        │                                 │
//   │        ▼                                 │
//   │  ┌───────────┐      ┌───────────┐        │
//   │  │ ACCEPTOR  │ ───▶ │  STORAGE  │        │
//   │  └───────────┘      └───────────┘        │
//   └──────────────────────────────────────────┘
//
// FAILURE INJECTION: before handling any request the node draws once from
// its Rand; with probability errorPercentage the request fails outright
// (crash/partition, not byzantine). The draw comes before the ballot check,
// so a failing node never touches its acceptor state.
//
// =============================================================================

package node

import (
	"fmt"
	"strings"

	"github.com/senutpal/paxossim/internal/paxos"
	"github.com/senutpal/paxossim/internal/storage"
)

type Role int

const (
	RoleAcceptor Role = iota
	RoleProposer
)

func (r Role) String() string {
	switch r {
	case RoleAcceptor:
		return "acceptor"
	case RoleProposer:
		return "proposer"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "acceptor":
		*r = RoleAcceptor
	case "proposer":
		*r = RoleProposer
	default:
		return fmt.Errorf("unknown role %q", text)
	}
	return nil
}

// Rand is the failure draw source. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type Node struct {
	id              int
	role            Role
	errorPercentage float64
	rand            Rand
	storage         storage.Storage
	acceptor        *paxos.Acceptor
}

type Option func(*Node)

// WithStorage replaces the default in-memory acceptor store.
func WithStorage(s storage.Storage) Option {
	return func(n *Node) {
		n.storage = s
	}
}

func NewNode(id int, role Role, errorPercentage float64, r Rand, opts ...Option) *Node {
	n := &Node{
		id:              id,
		role:            role,
		errorPercentage: errorPercentage,
		rand:            r,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.storage == nil {
		n.storage = storage.NewMemoryStorage()
	}
	n.acceptor = paxos.NewAcceptor(n.storage)
	return n
}

func (n *Node) ID() int {
	return n.id
}

func (n *Node) Role() Role {
	return n.role
}

func (n *Node) SetRole(role Role) {
	n.role = role
}

func (n *Node) IsProposer() bool {
	return n.role == RoleProposer
}

func (n *Node) ErrorPercentage() float64 {
	return n.errorPercentage
}

// FailsRequest draws once: true with probability errorPercentage.
func (n *Node) FailsRequest() bool {
	return n.errorPercentage > n.rand.Float64()
}

// HandlePrepare is the promise step. On success the returned proposal is the
// node's previously accepted one, unchanged.
func (n *Node) HandlePrepare(number int64) (paxos.Proposal, error) {
	if n.FailsRequest() {
		return paxos.EmptyProposal(), paxos.NewRequestFailed(paxos.PhasePrepare).With("nodeId", n.id)
	}
	previous, err := n.acceptor.HandlePrepare(number)
	if err != nil {
		return paxos.EmptyProposal(), withNodeID(err, n.id)
	}
	return previous, nil
}

// HandlePropose is the accept step.
func (n *Node) HandlePropose(p paxos.Proposal) error {
	if n.FailsRequest() {
		return paxos.NewRequestFailed(paxos.PhasePropose).With("nodeId", n.id)
	}
	if err := n.acceptor.HandlePropose(p); err != nil {
		return withNodeID(err, n.id)
	}
	return nil
}

func (n *Node) MaxAcceptableProposalNumber() int64 {
	maxAcceptable, _ := n.acceptor.State()
	return maxAcceptable
}

func (n *Node) PreviousProposal() paxos.Proposal {
	_, previous := n.acceptor.State()
	return previous
}

// Info is a read-only copy of a node's state.
type Info struct {
	ID                          int            `json:"id"`
	Role                        Role           `json:"role"`
	ErrorPercentage             float64        `json:"errorPercentage"`
	MaxAcceptableProposalNumber int64          `json:"maxAcceptableProposalNumber"`
	PreviousProposal            paxos.Proposal `json:"previousProposal"`
}

func (n *Node) Info() Info {
	maxAcceptable, previous := n.acceptor.State()
	return Info{
		ID:                          n.id,
		Role:                        n.role,
		ErrorPercentage:             n.errorPercentage,
		MaxAcceptableProposalNumber: maxAcceptable,
		PreviousProposal:            previous,
	}
}
