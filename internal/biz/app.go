package biz

import (
	"context"
	"sync"

	"github.com/senutpal/paxossim/internal/kerror"
	"github.com/senutpal/paxossim/internal/klogging"
	"github.com/senutpal/paxossim/internal/network"
	"github.com/senutpal/paxossim/internal/paxos"
)

// App holds the session's current network. Generate swaps it out wholesale;
// everything else is delegated to the network, which does its own locking.
type App struct {
	mu       sync.Mutex
	network  *network.Network
	maxNodes int
	seed     int64
}

// NewApp starts a session with a defaultNodes-node, zero-error network.
func NewApp(ctx context.Context, maxNodes, defaultNodes int, seed int64) *App {
	app := &App{maxNodes: maxNodes, seed: seed}
	app.Generate(ctx, defaultNodes, 0, 0)
	return app
}

func (a *App) MaxNodes() int {
	return a.maxNodes
}

func (a *App) current() *network.Network {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.network
}

// Generate replaces the network. A zero seed falls back to the app seed, and
// to a crypto seed when that is zero too.
func (a *App) Generate(ctx context.Context, nodeCount int, errorPercentage float64, seed int64) network.Snapshot {
	if nodeCount > a.maxNodes {
		panic(kerror.Create(paxos.ErrInvalidNodeCount, "Number of nodes exceeds the maximum").
			WithErrorCode(kerror.EC_INVALID_PARAMETER).
			With("nodeCount", nodeCount).
			With("maxNodes", a.maxNodes))
	}
	if seed == 0 {
		seed = a.seed
	}
	n, err := network.Generate(ctx, nodeCount, errorPercentage, network.WithSeed(seed))
	if err != nil {
		panic(err)
	}
	a.mu.Lock()
	a.network = n
	a.mu.Unlock()
	klogging.Info(ctx).With("nodeCount", nodeCount).With("errorPercentage", errorPercentage).Log("SessionNetworkReplaced", "")
	return n.Snapshot()
}

func (a *App) Snapshot() network.Snapshot {
	return a.current().Snapshot()
}

// SetProposer returns the new snapshot and the lowest ballot the new
// proposer could use.
func (a *App) SetProposer(ctx context.Context, id int) (network.Snapshot, int64) {
	n := a.current()
	if err := n.SetProposer(ctx, id); err != nil {
		panic(err)
	}
	minNumber, err := n.MinProposalNumber()
	if err != nil {
		panic(err)
	}
	return n.Snapshot(), minNumber
}

func (a *App) Prepare(ctx context.Context, number int64, value string) (network.Round, network.Snapshot) {
	n := a.current()
	round := n.Prepare(ctx, number, value)
	return round, n.Snapshot()
}
