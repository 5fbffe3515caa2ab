package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client verifies transaction references against Paystack. The engine treats
// it as an opaque verifier: success or failure, one attempt.
type Client struct {
	BaseURL string
	Secret  string
	HTTP    *http.Client
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 8 * time.Second}
}

type verifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status string `json:"status"`
	} `json:"data"`
}

func (c *Client) Verify(ctx context.Context, reference string) (bool, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.BaseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Secret)

	resp, err := c.client().Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode verify response: %w", err)
	}
	return out.Status && out.Data.Status == "success", nil
}
