package paxos

// IsMajority reports whether responses is a strict majority of nodeCount,
// i.e. responses > nodeCount/2 with real division. With 4 nodes that takes
// 3 responses; 2 is half, not a majority.
func IsMajority(responses, nodeCount int) bool {
	return 2*responses > nodeCount
}

// QuorumSize is the smallest response count that is a majority.
func QuorumSize(nodeCount int) int {
	return nodeCount/2 + 1
}
