package paxos

import (
	"github.com/senutpal/paxossim/internal/kerror"
	"github.com/senutpal/paxossim/internal/kmetrics"
)

var (
	RoundMetrics     = kmetrics.CreateKmetric("paxos_round", "prepare rounds by outcome", []string{"outcome"}).CountOnly()
	NodeReplyMetrics = kmetrics.CreateKmetric("paxos_node_reply", "per-node replies by phase and result", []string{"phase", "result"}).CountOnly()
)

func reportReply(phase Phase, err error) {
	result := "ok"
	switch {
	case err == nil:
	case kerror.IsType(err, ErrRequestFailed):
		result = "failed"
	default:
		result = "rejected"
	}
	NodeReplyMetrics.GetTimeSequence(string(phase), result).Add(1)
}
