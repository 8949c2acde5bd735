package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/openballot/electionbot/src/ledger"
	"github.com/openballot/electionbot/src/webclient"
)

// Client reads the full message history of a topic from the remote log
// service. Every call re-fetches; there is no cache, no retry and no
// pagination handling (the log service returns the complete history in one
// page for the topic sizes this bot serves).
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = webclient.NewDefault(0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

type topicMessagesResponse struct {
	Messages []topicMessage `json:"messages"`
}

type topicMessage struct {
	Message string `json:"message"`
}

// TopicMessages fetches and decodes every message of a topic, oldest first
// per the log service's own ordering. A transport fault or a record that
// fails to decode fails the whole read.
func (c *Client) TopicMessages(ctx context.Context, topicID string) ([]ledger.Event, error) {
	url := fmt.Sprintf("%s/api/v1/topics/%s/messages", c.baseURL, topicID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("mirror: build request for topic %s: %w", topicID, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mirror: fetch topic %s: %w", topicID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mirror: fetch topic %s: status %d", topicID, resp.StatusCode)
	}

	var body topicMessagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("mirror: parse topic %s response: %w", topicID, err)
	}

	events := make([]ledger.Event, 0, len(body.Messages))
	for i, msg := range body.Messages {
		ev, err := ledger.Decode(msg.Message)
		if err != nil {
			return nil, fmt.Errorf("mirror: topic %s message %d: %w", topicID, i, err)
		}
		events = append(events, ev)
	}

	return events, nil
}
