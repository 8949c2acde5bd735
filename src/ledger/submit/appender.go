package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/openballot/electionbot/src/webclient"
)

// Appender durably appends one message to a topic. The actual submission
// protocol (signing, consensus, confirmation) lives behind this boundary.
type Appender interface {
	AppendMessage(ctx context.Context, topicID string, payload interface{}) error
}

// GatewayClient appends messages through the ledger gateway's HTTP API.
type GatewayClient struct {
	baseURL string
	client  *http.Client
}

func NewGatewayClient(baseURL string, httpClient *http.Client) *GatewayClient {
	if httpClient == nil {
		httpClient = webclient.NewDefault(0)
	}
	return &GatewayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

func (c *GatewayClient) AppendMessage(ctx context.Context, topicID string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit: marshal payload for topic %s: %w", topicID, err)
	}

	url := fmt.Sprintf("%s/v1/topics/%s/messages", c.baseURL, topicID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request for topic %s: %w", topicID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: append to topic %s: %w", topicID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		return fmt.Errorf("submit: append to topic %s: status %d", topicID, resp.StatusCode)
	}
}
