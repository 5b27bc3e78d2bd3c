// =============================================================================
// DEMO RUNNER - Single-Decree Paxos in Action
// =============================================================================
//
// Generates a simulated network, runs a number of rounds with increasing
// ballots and moves the proposer role to the next node between rounds. After
// each round the new event log entries are printed; at the end every node's
// state and the chosen value are shown.
//
//   go run ./cmd/demo -nodes 5 -error 0.3 -rounds 4 -value hello
//
//   ┌─────────┬─────────┬─────────┬─────────┬─────────┐
//   │ Node 0  │ Node 1  │ Node 2  │ Node 3  │ Node 4  │
//   │ (prop)  │ (acc)   │ (acc)   │ (acc)   │ (acc)   │
//   └────┬────┴────┬────┴────┬────┴────┬────┴────┬────┘
//        │  round 1, proposer moves to node 1, round 2, ...
//        ▼
//   chosen value (once any round reaches a Propose quorum)
//
// With -error above zero some rounds fail; a fixed -seed replays the same
// failures.
//
// =============================================================================

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/senutpal/paxossim/internal/klogging"
	"github.com/senutpal/paxossim/internal/network"
	"github.com/senutpal/paxossim/internal/paxos"
)

func main() {
	nodeCount := flag.Int("nodes", 5, "number of nodes")
	errorPercentage := flag.Float64("error", 0, "probability in [0,1] that a node fails a request")
	seed := flag.Int64("seed", 0, "random seed, 0 for a random one")
	rounds := flag.Int("rounds", 3, "number of rounds to run")
	value := flag.String("value", "hello", "value submitted by every proposer")
	logLevel := flag.String("log-level", "warning", "klogging level")
	flag.Parse()

	ctx := context.Background()
	logger := klogging.NewLogrusLogger().WithOutput(os.Stderr)
	if err := logger.SetConfig(*logLevel, "text"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	klogging.SetDefaultLogger(logger)

	n, err := network.Generate(ctx, *nodeCount, *errorPercentage, network.WithSeed(*seed))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("Generated %d nodes, error percentage %.2f\n", *nodeCount, *errorPercentage)

	for i := 0; i < *rounds; i++ {
		proposerID, _ := n.ProposerID()
		if i > 0 {
			proposerID = (proposerID + 1) % *nodeCount
			if err := n.SetProposer(ctx, proposerID); err != nil {
				klogging.Fatal(ctx).WithError(err).Log("SetProposerFailed", "")
			}
		}
		minNumber, err := n.MinProposalNumber()
		if err != nil {
			klogging.Fatal(ctx).WithError(err).Log("MinProposalNumberFailed", "")
		}
		number := minNumber + 1
		submitted := fmt.Sprintf("%s-%d", *value, proposerID)

		fmt.Printf("\n--- round %d: proposer %d, prepare(%d, %q)\n", i+1, proposerID, number, submitted)
		round := n.Prepare(ctx, number, submitted)
		printEvents(round.Events)
		fmt.Printf("outcome: %s (prepare %d/%d, propose %d/%d)\n",
			round.Outcome, round.PrepareResponses, round.NodeCount, round.ProposeResponses, round.NodeCount)
	}

	fmt.Println("\n--- nodes")
	for _, info := range n.Nodes() {
		fmt.Printf("node %d  %-8s  maxAcceptable=%d  previous=%s\n",
			info.ID, info.Role, info.MaxAcceptableProposalNumber, info.PreviousProposal)
	}
	if chosen, ok := n.ChosenValue(); ok {
		fmt.Printf("\nChosen value: %q\n", chosen)
	} else {
		fmt.Println("\nNo value chosen")
	}
}

func printEvents(events []paxos.Event) {
	for _, e := range events {
		fmt.Printf("  [%-5s] node %2d: %s\n", e.Level, e.ID, e.Message)
	}
}
