// Package network owns a simulated Paxos network: its nodes, the single
// proposer role, the event log and the chosen value.
//
// Every exported method takes the network mutex, so rounds, proposer
// changes and snapshots never interleave. The lock is network-wide since a
// round touches every node.
package network

import (
	"context"
	"sync"

	"github.com/senutpal/paxossim/internal/klogging"
	"github.com/senutpal/paxossim/internal/node"
	"github.com/senutpal/paxossim/internal/paxos"
	"github.com/senutpal/paxossim/internal/transport"
)

// NoProposerID is reported as the actor of round-level log entries when no
// proposer has been assigned.
const NoProposerID = -1

type Network struct {
	mu          sync.Mutex
	nodes       []*node.Node
	nodeByID    map[int]*node.Node
	transport   *transport.Loopback
	proposerID  int
	hasProposer bool
	learner     *paxos.Learner
	eventLog    *paxos.EventLog
	rand        node.Rand
	nextID      int
	rounds      int
}

type options struct {
	rand node.Rand
	seed int64
}

type Option func(*options)

// WithRand injects the failure draw source shared by all nodes.
func WithRand(r node.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithSeed seeds the default source; ignored when WithRand is given.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// Generate builds a fresh network of nodeCount nodes. Node ids start at 0
// and node 0 is the proposer.
func Generate(ctx context.Context, nodeCount int, errorPercentage float64, opts ...Option) (*Network, error) {
	if nodeCount <= 0 {
		return nil, paxos.NewInvalidNodeCount(nodeCount)
	}
	if errorPercentage < 0 || errorPercentage > 1 {
		return nil, paxos.NewInvalidErrorPercentage(errorPercentage)
	}
	n := newNetwork(ctx, opts...)
	for i := 0; i < nodeCount; i++ {
		n.addNode(errorPercentage)
	}
	if err := n.setProposerLocked(ctx, 0); err != nil {
		return nil, err
	}
	klogging.Info(ctx).With("nodeCount", nodeCount).With("errorPercentage", errorPercentage).Log("NetworkGenerated", "")
	return n, nil
}

func newNetwork(ctx context.Context, opts ...Option) *Network {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.rand == nil {
		o.rand = node.NewRand(ctx, o.seed)
	}
	return &Network{
		nodeByID:   make(map[int]*node.Node),
		transport:  transport.NewLoopback(),
		proposerID: NoProposerID,
		learner:    paxos.NewLearner(),
		eventLog:   paxos.NewEventLog(),
		rand:       o.rand,
	}
}

// addNode registers a new acceptor with the next id from this network's
// own counter.
func (n *Network) addNode(errorPercentage float64) *node.Node {
	nd := node.NewNode(n.nextID, node.RoleAcceptor, errorPercentage, n.rand)
	n.nextID++
	n.nodes = append(n.nodes, nd)
	n.nodeByID[nd.ID()] = nd
	// ids come from our own counter, a duplicate cannot happen
	_ = n.transport.AddNode(nd)
	return nd
}

// SetProposer moves the proposer role to id. Asking for the current proposer
// is a no-op.
func (n *Network) SetProposer(ctx context.Context, id int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.setProposerLocked(ctx, id)
}

func (n *Network) setProposerLocked(ctx context.Context, id int) error {
	if n.hasProposer && n.proposerID == id {
		return nil
	}
	target, ok := n.nodeByID[id]
	if !ok {
		return paxos.NewUnknownNode(id)
	}
	previous := NoProposerID
	if n.hasProposer {
		previous = n.proposerID
		n.nodeByID[n.proposerID].SetRole(node.RoleAcceptor)
	}
	target.SetRole(node.RoleProposer)
	n.proposerID = id
	n.hasProposer = true
	klogging.Info(ctx).With("previousProposerId", previous).With("proposerId", id).Log("ProposerChanged", "")
	return nil
}

// Round is the outcome of one Prepare call together with the event log
// entries it appended.
type Round struct {
	paxos.RoundResult
	ProposerID int           `json:"proposerId"`
	Events     []paxos.Event `json:"events"`
}

// Prepare runs a full round: Prepare fan-out, quorum check, value adoption,
// Propose fan-out and the chosen-value decision. Per-node failures go to the
// event log, never to the caller.
func (n *Network) Prepare(ctx context.Context, number int64, value string) Round {
	n.mu.Lock()
	defer n.mu.Unlock()
	actor := n.proposerIDLocked()
	offset := n.eventLog.Len()
	result := paxos.NewProposer(actor, n.transport, n.eventLog, n.learner).Run(ctx, number, value)
	n.rounds++
	return Round{
		RoundResult: result,
		ProposerID:  actor,
		Events:      n.eventLog.Since(offset),
	}
}

func (n *Network) proposerIDLocked() int {
	if !n.hasProposer {
		return NoProposerID
	}
	return n.proposerID
}

// ProposerID returns the current proposer id, if one is assigned.
func (n *Network) ProposerID() (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.proposerID, n.hasProposer
}

// Proposer returns the proposer's state, or NoProposerSet.
func (n *Network) Proposer() (node.Info, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.hasProposer {
		return node.Info{}, paxos.NewNoProposerSet()
	}
	return n.nodeByID[n.proposerID].Info(), nil
}

// MinProposalNumber is the lowest ballot the current proposer's own acceptor
// would still take; operators start numbering from here.
func (n *Network) MinProposalNumber() (int64, error) {
	proposer, err := n.Proposer()
	if err != nil {
		return 0, err
	}
	return proposer.MaxAcceptableProposalNumber, nil
}

func (n *Network) Node(id int) (node.Info, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodeByID[id]
	if !ok {
		return node.Info{}, paxos.NewUnknownNode(id)
	}
	return nd.Info(), nil
}

func (n *Network) NodeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.nodes)
}

// Nodes returns node states in creation order.
func (n *Network) Nodes() []node.Info {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nodesLocked()
}

func (n *Network) nodesLocked() []node.Info {
	infos := make([]node.Info, 0, len(n.nodes))
	for _, nd := range n.nodes {
		infos = append(infos, nd.Info())
	}
	return infos
}

func (n *Network) EventLog() []paxos.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.eventLog.Entries()
}

func (n *Network) ChosenValue() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.learner.ChosenValue()
}

// Snapshot is a consistent copy of everything a viewer needs.
type Snapshot struct {
	Nodes       []node.Info     `json:"nodes"`
	ProposerID  *int            `json:"proposerId,omitempty"`
	ChosenValue *string         `json:"chosenValue,omitempty"`
	Chosen      *paxos.Proposal `json:"chosen,omitempty"`
	EventLog    []paxos.Event   `json:"eventLog"`
	Rounds      int             `json:"rounds"`
}

func (n *Network) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	snap := Snapshot{
		Nodes:    n.nodesLocked(),
		EventLog: n.eventLog.Entries(),
		Rounds:   n.rounds,
	}
	if n.hasProposer {
		id := n.proposerID
		snap.ProposerID = &id
	}
	if chosen, ok := n.learner.Chosen(); ok {
		snap.ChosenValue = &chosen.Value
		snap.Chosen = &chosen
	}
	return snap
}
