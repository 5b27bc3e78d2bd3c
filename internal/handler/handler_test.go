package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/senutpal/paxossim/api"
	"github.com/senutpal/paxossim/internal/biz"
	"github.com/senutpal/paxossim/internal/klogging"
	"github.com/senutpal/paxossim/internal/network"
	"github.com/senutpal/paxossim/internal/paxos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	klogging.SetDefaultLogger(klogging.NewNullLogger())
	os.Exit(m.Run())
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	app := biz.NewApp(context.Background(), 7, 5, 1)
	mux := http.NewServeMux()
	NewHandler(app).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestGetNetwork(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/network")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snap network.Snapshot
	decodeBody(t, resp, &snap)
	assert.Len(t, snap.Nodes, 5)
	require.NotNil(t, snap.ProposerID)
	assert.Equal(t, 0, *snap.ProposerID)
}

func TestGenerateAndPrepare(t *testing.T) {
	srv := newServer(t)
	resp := post(t, srv, "/api/network", api.GenerateRequest{NodeCount: 3, ErrorPercentage: 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, srv, "/api/prepare", api.PrepareRequest{Number: 1, Value: "foo"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prepared api.PrepareResponse
	decodeBody(t, resp, &prepared)
	assert.Equal(t, paxos.OutcomeChosen, prepared.Round.Outcome)
	assert.Equal(t, 3, prepared.Round.ProposeResponses)
	require.NotNil(t, prepared.Network.ChosenValue)
	assert.Equal(t, "foo", *prepared.Network.ChosenValue)
	assert.Equal(t, []paxos.Event{{ID: 0, Level: paxos.LevelInfo, Message: "Received 3/3 responses. Value 'foo' has been chosen"}}, prepared.Round.Events)

	resp = post(t, srv, "/api/proposer", api.SetProposerRequest{ID: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var moved api.SetProposerResponse
	decodeBody(t, resp, &moved)
	assert.Equal(t, int64(1), moved.MinProposalNumber)
	assert.Equal(t, 2, *moved.Network.ProposerID)
}

func TestApiErrors(t *testing.T) {
	srv := newServer(t)
	tests := []struct {
		name         string
		path         string
		body         interface{}
		expectedCode int
		expectedType string
	}{
		{"zero nodes", "/api/network", api.GenerateRequest{NodeCount: 0}, http.StatusBadRequest, paxos.ErrInvalidNodeCount},
		{"too many nodes", "/api/network", api.GenerateRequest{NodeCount: 8}, http.StatusBadRequest, paxos.ErrInvalidNodeCount},
		{"bad percentage", "/api/network", api.GenerateRequest{NodeCount: 3, ErrorPercentage: 2}, http.StatusBadRequest, paxos.ErrInvalidErrorPercentage},
		{"unknown node", "/api/proposer", api.SetProposerRequest{ID: 42}, http.StatusNotFound, paxos.ErrUnknownNode},
		{"bad body", "/api/prepare", "not an object", http.StatusBadRequest, "InvalidRequest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.path, tt.body)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			var body api.ErrorResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.expectedType, body.Error)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/prepare")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body api.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "MethodNotAllowed", body.Error)
}
