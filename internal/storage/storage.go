// =============================================================================
// STORAGE - Where an Acceptor Keeps Its Promises
// =============================================================================
//
// An acceptor owns exactly two pieces of state:
//
// 1. The highest ballot number it has promised (or accepted). Every Prepare
//    and Propose below it is rejected.
//
// 2. The last proposal it accepted, returned to the proposer in every
//    successful Prepare so the proposer can adopt it.
//
// The acceptor writes both through a Storage before it answers. The
// simulator keeps everything in memory: a network lives for one session and
// is rebuilt from scratch on every generation, so nothing survives a
// restart. Reset wipes a store back to its initial state.
//
// Initial state: promised = 0, accepted = (-1, "").
//
// =============================================================================

package storage

// Storage is not required to be safe for concurrent use; the network
// serializes every round.
type Storage interface {
	SavePromised(number int64) error
	LoadPromised() (int64, error)

	SaveAccepted(number int64, value string) error
	LoadAccepted() (int64, string, error)

	Reset()
}
