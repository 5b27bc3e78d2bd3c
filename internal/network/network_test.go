package network

import (
	"context"
	"math/rand"
	"testing"

	"github.com/senutpal/paxossim/internal/kerror"
	"github.com/senutpal/paxossim/internal/node"
	"github.com/senutpal/paxossim/internal/paxos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, nodeCount int, errorPercentage float64, opts ...Option) *Network {
	t.Helper()
	n, err := Generate(context.Background(), nodeCount, errorPercentage, opts...)
	require.NoError(t, err)
	return n
}

func proposerCount(n *Network) int {
	count := 0
	for _, info := range n.Nodes() {
		if info.Role == node.RoleProposer {
			count++
		}
	}
	return count
}

func TestGenerateFiveNodesChoosesFoo(t *testing.T) {
	ctx := context.Background()
	n := generate(t, 5, 0)
	round := n.Prepare(ctx, 1, "foo")

	assert.Equal(t, paxos.OutcomeChosen, round.Outcome)
	assert.Equal(t, 5, round.PrepareResponses)
	assert.Equal(t, 5, round.ProposeResponses)
	assert.Equal(t, []paxos.Event{{ID: 0, Level: paxos.LevelInfo, Message: "Received 5/5 responses. Value 'foo' has been chosen"}}, n.EventLog())
	assert.Equal(t, n.EventLog(), round.Events)

	value, ok := n.ChosenValue()
	assert.True(t, ok)
	assert.Equal(t, "foo", value)
	for _, info := range n.Nodes() {
		assert.Equal(t, int64(1), info.MaxAcceptableProposalNumber)
		assert.Equal(t, paxos.NewProposal(1, "foo"), info.PreviousProposal)
	}
}

func TestGenerateSingleNode(t *testing.T) {
	n := generate(t, 1, 0)
	round := n.Prepare(context.Background(), 1, "solo")
	assert.Equal(t, paxos.OutcomeChosen, round.Outcome)
	value, ok := n.ChosenValue()
	assert.True(t, ok)
	assert.Equal(t, "solo", value)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	for _, count := range []int{0, -3} {
		_, err := Generate(ctx, count, 0)
		assert.True(t, kerror.IsType(err, paxos.ErrInvalidNodeCount), "count %d", count)
	}
	for _, pct := range []float64{-0.1, 1.5} {
		_, err := Generate(ctx, 3, pct)
		assert.True(t, kerror.IsType(err, paxos.ErrInvalidErrorPercentage), "pct %v", pct)
	}
}

func TestGenerateRestartsIDs(t *testing.T) {
	generate(t, 4, 0)
	n := generate(t, 3, 0)
	infos := n.Nodes()
	require.Len(t, infos, 3)
	for i, info := range infos {
		assert.Equal(t, i, info.ID)
	}
	id, ok := n.ProposerID()
	assert.True(t, ok)
	assert.Equal(t, 0, id)
	assert.Equal(t, 1, proposerCount(n))
}

func TestLowerBallotAfterChosen(t *testing.T) {
	ctx := context.Background()
	n := generate(t, 3, 0)
	n.Prepare(ctx, 5, "x")
	round := n.Prepare(ctx, 3, "y")

	assert.Equal(t, paxos.OutcomePrepareQuorumFailed, round.Outcome)
	assert.Equal(t, 0, round.PrepareResponses)
	require.Len(t, round.Events, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, paxos.Event{ID: i, Level: paxos.LevelError, Message: "Proposal number is too low to accept. Maximum acceptable value is 5"}, round.Events[i])
	}
	assert.Equal(t, "A majority of nodes did not respond to prepare request. Proposal will not be sent", round.Events[3].Message)

	value, _ := n.ChosenValue()
	assert.Equal(t, "x", value)
}

func TestAlwaysFailingNodes(t *testing.T) {
	ctx := context.Background()
	n := generate(t, 4, 1, WithRand(node.FixedRand(0.5)))
	for i := int64(1); i <= 3; i++ {
		offset := len(n.EventLog())
		round := n.Prepare(ctx, i, "v")
		assert.Equal(t, paxos.OutcomePrepareQuorumFailed, round.Outcome)
		failures := 0
		for _, e := range n.EventLog()[offset:] {
			if e.Level == paxos.LevelError {
				failures++
				assert.Equal(t, "Randomly failed to respond to prepare request", e.Message)
			}
		}
		assert.Equal(t, 4, failures)
	}
	_, ok := n.ChosenValue()
	assert.False(t, ok)
	for _, info := range n.Nodes() {
		assert.Equal(t, int64(0), info.MaxAcceptableProposalNumber)
	}
}

func TestZeroErrorAlwaysReachesQuorum(t *testing.T) {
	ctx := context.Background()
	for _, count := range []int{1, 2, 3, 4, 7, 30} {
		n := generate(t, count, 0)
		round := n.Prepare(ctx, 1, "v")
		assert.Equal(t, count, round.PrepareResponses)
		assert.Equal(t, count, round.ProposeResponses)
		assert.Equal(t, paxos.OutcomeChosen, round.Outcome)
	}
}

func TestChosenValueIsStable(t *testing.T) {
	ctx := context.Background()
	n := generate(t, 5, 0)
	r := rand.New(rand.NewSource(42))
	n.Prepare(ctx, 1, "first")

	ballot := int64(1)
	for i := 0; i < 50; i++ {
		require.NoError(t, n.SetProposer(ctx, r.Intn(5)))
		ballot += int64(r.Intn(3) + 1)
		round := n.Prepare(ctx, ballot, "other")
		assert.Equal(t, "first", round.Value)
		assert.True(t, round.Adopted)
		value, ok := n.ChosenValue()
		require.True(t, ok)
		assert.Equal(t, "first", value)
	}
}

func TestSafetyUnderRandomFailures(t *testing.T) {
	ctx := context.Background()
	n := generate(t, 5, 0.4, WithSeed(7))
	var chosen string
	ballot := int64(0)
	for i := 0; i < 200; i++ {
		ballot++
		n.Prepare(ctx, ballot, "v"+string(rune('a'+i%26)))
		value, ok := n.ChosenValue()
		if !ok {
			continue
		}
		if chosen == "" {
			chosen = value
		}
		require.Equal(t, chosen, value, "round %d", i)
	}
}

func TestMaxAcceptableNeverDecreases(t *testing.T) {
	ctx := context.Background()
	r := rand.New(rand.NewSource(3))
	n := generate(t, 3, 0.3, WithSeed(11))
	last := make([]int64, 3)
	for i := 0; i < 100; i++ {
		n.Prepare(ctx, int64(r.Intn(20)), "v")
		for _, info := range n.Nodes() {
			assert.GreaterOrEqual(t, info.MaxAcceptableProposalNumber, last[info.ID])
			last[info.ID] = info.MaxAcceptableProposalNumber
		}
	}
}

func TestSetProposer(t *testing.T) {
	ctx := context.Background()
	n := generate(t, 4, 0)
	before := len(n.EventLog())

	require.NoError(t, n.SetProposer(ctx, 0))
	assert.Equal(t, before, len(n.EventLog()))
	assert.Equal(t, 1, proposerCount(n))

	for _, id := range []int{3, 1, 1, 2} {
		require.NoError(t, n.SetProposer(ctx, id))
		got, ok := n.ProposerID()
		assert.True(t, ok)
		assert.Equal(t, id, got)
		assert.Equal(t, 1, proposerCount(n))
	}

	err := n.SetProposer(ctx, 9)
	assert.True(t, kerror.IsType(err, paxos.ErrUnknownNode))
	got, _ := n.ProposerID()
	assert.Equal(t, 2, got)

	round := n.Prepare(ctx, 1, "v")
	assert.Equal(t, 2, round.ProposerID)
	assert.Equal(t, 2, round.Events[len(round.Events)-1].ID)
}

func TestProposerNotSet(t *testing.T) {
	ctx := context.Background()
	n := newNetwork(ctx, WithRand(node.FixedRand(1)))
	n.addNode(0)
	n.addNode(0)

	_, err := n.Proposer()
	assert.True(t, kerror.IsType(err, paxos.ErrNoProposerSet))
	_, err = n.MinProposalNumber()
	assert.True(t, kerror.IsType(err, paxos.ErrNoProposerSet))
	_, ok := n.ProposerID()
	assert.False(t, ok)

	round := n.Prepare(ctx, 1, "v")
	assert.Equal(t, NoProposerID, round.ProposerID)
	assert.Equal(t, NoProposerID, round.Events[0].ID)

	require.NoError(t, n.SetProposer(ctx, 1))
	proposer, err := n.Proposer()
	require.NoError(t, err)
	assert.Equal(t, 1, proposer.ID)
	minNumber, err := n.MinProposalNumber()
	require.NoError(t, err)
	assert.Equal(t, int64(1), minNumber)
}

func TestSeededNetworksAgree(t *testing.T) {
	ctx := context.Background()
	a := generate(t, 5, 0.5, WithSeed(99))
	b := generate(t, 5, 0.5, WithSeed(99))
	for i := int64(1); i <= 10; i++ {
		a.Prepare(ctx, i, "v")
		b.Prepare(ctx, i, "v")
	}
	assert.Equal(t, a.EventLog(), b.EventLog())
	assert.Equal(t, a.Nodes(), b.Nodes())
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	n := generate(t, 3, 0)
	snap := n.Snapshot()
	require.NotNil(t, snap.ProposerID)
	assert.Equal(t, 0, *snap.ProposerID)
	assert.Nil(t, snap.ChosenValue)
	assert.Empty(t, snap.EventLog)

	n.Prepare(ctx, 1, "foo")
	snap = n.Snapshot()
	require.NotNil(t, snap.ChosenValue)
	assert.Equal(t, "foo", *snap.ChosenValue)
	assert.Equal(t, paxos.NewProposal(1, "foo"), *snap.Chosen)
	assert.Equal(t, 1, snap.Rounds)
	assert.Len(t, snap.Nodes, 3)

	snap.EventLog[0].Message = "changed"
	assert.NotEqual(t, "changed", n.EventLog()[0].Message)
}

func TestNodeLookup(t *testing.T) {
	n := generate(t, 2, 0)
	info, err := n.Node(1)
	require.NoError(t, err)
	assert.Equal(t, node.RoleAcceptor, info.Role)
	_, err = n.Node(2)
	assert.True(t, kerror.IsType(err, paxos.ErrUnknownNode))
	assert.Equal(t, 2, n.NodeCount())
}
