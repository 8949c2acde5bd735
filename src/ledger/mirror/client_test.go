package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/electionbot/src/ledger"
)

func topicServer(t *testing.T, topicID string, payloads []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, fmt.Sprintf("/api/v1/topics/%s/messages", topicID), r.URL.Path)

		type msg struct {
			Message string `json:"message"`
		}
		body := struct {
			Messages []msg `json:"messages"`
		}{}
		for _, p := range payloads {
			body.Messages = append(body.Messages, msg{Message: p})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
}

func TestTopicMessagesDecodesInDeliveryOrder(t *testing.T) {
	first, err := ledger.Encode(ledger.Event{
		Type:         ledger.EventElectionCreated,
		ElectionID:   "e1",
		ElectionName: "Board Vote",
	})
	require.NoError(t, err)
	second, err := ledger.Encode(ledger.Event{
		Type:         ledger.EventElectionCreated,
		ElectionID:   "e2",
		ElectionName: "Treasury Vote",
	})
	require.NoError(t, err)

	srv := topicServer(t, "0.0.1001", []string{first, second})
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	events, err := client.TopicMessages(context.Background(), "0.0.1001")
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ElectionID)
	assert.Equal(t, "e2", events[1].ElectionID)
}

func TestTopicMessagesEmptyTopic(t *testing.T) {
	srv := topicServer(t, "0.0.1001", nil)
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	events, err := client.TopicMessages(context.Background(), "0.0.1001")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestTopicMessagesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.TopicMessages(context.Background(), "0.0.1001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestTopicMessagesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.TopicMessages(context.Background(), "0.0.1001")
	require.Error(t, err)
}

func TestTopicMessagesCorruptRecordFailsRead(t *testing.T) {
	srv := topicServer(t, "0.0.1001", []string{"!!! not base64 !!!"})
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.TopicMessages(context.Background(), "0.0.1001")
	require.Error(t, err)

	var decodeErr *ledger.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}
