package paymentgw

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Client talks to the external payment gateway. The gateway itself (charge
// execution, webhooks signing) is an external collaborator; this client only
// creates payment intents.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// CreateIntent registers a pending charge with the gateway and returns its
// intent identifier.
func (c *Client) CreateIntent(req CreateIntentRequest) (*CreateIntentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/v1/intents", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("payment gateway returned non-OK status: " + resp.Status)
	}

	var apiResp CreateIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	if apiResp.IntentID == "" {
		return nil, errors.New("payment gateway returned empty intent id")
	}

	return &apiResp, nil
}
