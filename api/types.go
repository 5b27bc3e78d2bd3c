package api

import (
	"github.com/senutpal/paxossim/internal/network"
)

// GenerateRequest replaces the current network. Seed 0 asks for a random seed.
type GenerateRequest struct {
	NodeCount       int     `json:"nodeCount"`
	ErrorPercentage float64 `json:"errorPercentage"`
	Seed            int64   `json:"seed,omitempty"`
}

type SetProposerRequest struct {
	ID int `json:"id"`
}

type SetProposerResponse struct {
	Network           network.Snapshot `json:"network"`
	MinProposalNumber int64            `json:"minProposalNumber"`
}

type PrepareRequest struct {
	Number int64  `json:"number"`
	Value  string `json:"value"`
}

type PrepareResponse struct {
	Round   network.Round    `json:"round"`
	Network network.Snapshot `json:"network"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Msg   string `json:"msg"`
	Code  string `json:"code"`
}
