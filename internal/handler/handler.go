package handler

import (
	"encoding/json"
	"net/http"

	"github.com/senutpal/paxossim/api"
	"github.com/senutpal/paxossim/internal/biz"
	"github.com/senutpal/paxossim/internal/kerror"
	"github.com/senutpal/paxossim/internal/klogging"
)

type Handler struct {
	app *biz.App
}

func NewHandler(app *biz.App) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes wires every API route behind the error middleware.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/network", ErrorHandlingMiddleware(http.HandlerFunc(h.NetworkHandler)))
	mux.Handle("/api/proposer", ErrorHandlingMiddleware(http.HandlerFunc(h.ProposerHandler)))
	mux.Handle("/api/prepare", ErrorHandlingMiddleware(http.HandlerFunc(h.PrepareHandler)))
}

// NetworkHandler: GET returns the current snapshot, POST generates a new
// network.
func (h *Handler) NetworkHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.app.Snapshot())
	case http.MethodPost:
		var req api.GenerateRequest
		decode(r, &req)
		klogging.Info(r.Context()).
			With("nodeCount", req.NodeCount).
			With("errorPercentage", req.ErrorPercentage).
			With("seed", req.Seed).
			Log("GenerateRequest", "")
		writeJSON(w, h.app.Generate(r.Context(), req.NodeCount, req.ErrorPercentage, req.Seed))
	default:
		methodNotAllowed("GET", "POST")
	}
}

func (h *Handler) ProposerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed("POST")
	}
	var req api.SetProposerRequest
	decode(r, &req)
	klogging.Info(r.Context()).With("id", req.ID).Log("SetProposerRequest", "")
	snapshot, minNumber := h.app.SetProposer(r.Context(), req.ID)
	writeJSON(w, &api.SetProposerResponse{Network: snapshot, MinProposalNumber: minNumber})
}

func (h *Handler) PrepareHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed("POST")
	}
	var req api.PrepareRequest
	decode(r, &req)
	klogging.Info(r.Context()).With("number", req.Number).With("value", req.Value).Log("PrepareRequest", "")
	round, snapshot := h.app.Prepare(r.Context(), req.Number, req.Value)
	writeJSON(w, &api.PrepareResponse{Round: round, Network: snapshot})
}

func decode(r *http.Request, v interface{}) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		panic(kerror.Create("InvalidRequest", "invalid request format").
			WithErrorCode(kerror.EC_INVALID_PARAMETER).
			With("error", err.Error()))
	}
}

func methodNotAllowed(allowed ...string) {
	panic(kerror.Create("MethodNotAllowed", "method not allowed").
		WithErrorCode(kerror.EC_INVALID_PARAMETER).
		With("allowed", allowed))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(kerror.Create("EncodingError", "failed to encode response").
			WithErrorCode(kerror.EC_INTERNAL_ERROR).
			With("error", err.Error()))
	}
}
