package election

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

var testTopics = Topics{
	Created:        "t-created",
	Ended:          "t-ended",
	CandidateAdded: "t-candidates",
}

func TestServiceOngoing(t *testing.T) {
	svc := NewService(&stubReader{topics: map[string][]ledger.Event{
		"t-created": {created("e1", "Board Vote"), created("e2", "Treasury Vote")},
		"t-ended":   {endedEv("e2", "Alice")},
	}}, testTopics)

	ongoing, err := svc.Ongoing(context.Background())
	require.NoError(t, err)
	require.Len(t, ongoing, 1)
	assert.Equal(t, "e1", ongoing[0].ElectionID)
}

func TestServicePast(t *testing.T) {
	svc := NewService(&stubReader{topics: map[string][]ledger.Event{
		"t-ended": {endedEv("e2", "Alice")},
	}}, testTopics)

	past, err := svc.Past(context.Background())
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, "e2", past[0].ElectionID)
}

func TestServiceSummaries(t *testing.T) {
	svc := NewService(&stubReader{topics: map[string][]ledger.Event{
		"t-created": {created("e1", "Board Vote"), created("e2", "Treasury Vote")},
		"t-ended":   {endedEv("e2", "Alice")},
	}}, testTopics)

	summaries, err := svc.Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.False(t, summaries[0].Ended)
	assert.True(t, summaries[1].Ended)
	assert.Equal(t, "Board Vote", summaries[0].Name)
}

func TestServiceDetail(t *testing.T) {
	svc := NewService(&stubReader{topics: map[string][]ledger.Event{
		"t-created":    {created("e1", "Board Vote")},
		"t-ended":      {endedEv("e1", "Alice")},
		"t-candidates": {candidateEv("e1", "c1", "Alice"), candidateEv("e2", "c2", "Bob")},
	}}, testTopics)

	d, err := svc.Detail(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, d.Ended)
	assert.Equal(t, "Alice", d.WinnerName)
	require.Len(t, d.Candidates, 1)
}

func TestServiceDetailNotFound(t *testing.T) {
	svc := NewService(&stubReader{topics: map[string][]ledger.Event{}}, testTopics)

	_, err := svc.Detail(context.Background(), "e1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceTransportFailurePropagates(t *testing.T) {
	svc := NewService(&stubReader{err: errors.New("mirror down")}, testTopics)

	_, err := svc.Ongoing(context.Background())
	require.Error(t, err)
	_, err = svc.Candidates(context.Background(), "e1")
	require.Error(t, err)
}
