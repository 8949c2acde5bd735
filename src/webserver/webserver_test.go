package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/electionbot/src/election"
	"github.com/openballot/electionbot/src/ledger"
)

type stubReader struct {
	topics map[string][]ledger.Event
	err    error
}

func (r *stubReader) TopicMessages(_ context.Context, topicID string) ([]ledger.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.topics[topicID], nil
}

func testEngine(reader election.Reader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := election.NewService(reader, election.Topics{
		Created:        "t-created",
		Ended:          "t-ended",
		CandidateAdded: "t-candidates",
	})
	return New(svc)
}

func get(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, testEngine(&stubReader{}), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListElections(t *testing.T) {
	engine := testEngine(&stubReader{topics: map[string][]ledger.Event{
		"t-created": {
			{Type: ledger.EventElectionCreated, ElectionID: "e1", ElectionName: "Board Vote"},
			{Type: ledger.EventElectionCreated, ElectionID: "e2"},
		},
		"t-ended": {
			{Type: ledger.EventElectionEnded, ElectionID: "e2", WinnerName: "Alice"},
		},
	}})

	w := get(t, engine, "/v1/elections")
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []election.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	assert.False(t, summaries[0].Ended)
	assert.True(t, summaries[1].Ended)

	w = get(t, engine, "/v1/elections?status=ongoing")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "e1", summaries[0].ID)

	w = get(t, engine, "/v1/elections?status=past")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Alice", summaries[0].WinnerName)
}

func TestListElectionsBadStatus(t *testing.T) {
	w := get(t, testEngine(&stubReader{}), "/v1/elections?status=archived")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestElectionDetail(t *testing.T) {
	engine := testEngine(&stubReader{topics: map[string][]ledger.Event{
		"t-created": {{Type: ledger.EventElectionCreated, ElectionID: "e1", ElectionName: "Board Vote"}},
		"t-ended":   {{Type: ledger.EventElectionEnded, ElectionID: "e1", WinnerName: "Alice"}},
		"t-candidates": {
			{Type: ledger.EventCandidateAdded, ElectionID: "e1", CandidateID: "c1", CandidateName: "O'Brien"},
		},
	}})

	w := get(t, engine, "/v1/elections/e1")
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		ElectionID string               `json:"electionId"`
		Ended      bool                 `json:"ended"`
		WinnerName string               `json:"winnerName"`
		Candidates []election.Candidate `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "e1", detail.ElectionID)
	assert.True(t, detail.Ended)
	assert.Equal(t, "Alice", detail.WinnerName)
	require.Len(t, detail.Candidates, 1)
	assert.Equal(t, "OBrien", detail.Candidates[0].DisplayName)
}

func TestElectionDetailNotFound(t *testing.T) {
	w := get(t, testEngine(&stubReader{}), "/v1/elections/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestElectionCandidates(t *testing.T) {
	engine := testEngine(&stubReader{topics: map[string][]ledger.Event{
		"t-candidates": {
			{Type: ledger.EventCandidateAdded, ElectionID: "e1", CandidateID: "c1", CandidateName: "Alice"},
		},
	}})

	w := get(t, engine, "/v1/elections/e1/candidates")
	require.Equal(t, http.StatusOK, w.Code)

	var roster []election.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roster))
	require.Len(t, roster, 1)
	assert.Equal(t, "Alice", roster[0].DisplayName)
}

func TestUpstreamFailure(t *testing.T) {
	w := get(t, testEngine(&stubReader{err: errors.New("mirror down")}), "/v1/elections")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
