package inventoryfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/httpclient"
)

const feedTimeout = 30 * time.Second

var ErrFeedNotConfigured = errors.New("INVENTORY_API_URL is not set")

type Client struct {
	url string
}

func CreateInventoryFeedClient(config *config.Config) *Client {
	return &Client{url: config.InventoryConfig.APIURL}
}

func (c *Client) Configured() bool {
	return c.url != ""
}

func (c *Client) FetchInventory(ctx context.Context) ([]dto.InventoryRecord, error) {
	if c.url == "" {
		return nil, ErrFeedNotConfigured
	}

	statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    c.url,
		Method: http.MethodGet,
		Headers: map[string]string{
			"Accept": "application/json",
		},
		Timeout: feedTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("error calling inventory feed: %w", err)
	}

	if statusCode < 200 || statusCode > 299 {
		return nil, fmt.Errorf("inventory feed returned non-OK status: %d", statusCode)
	}

	return DecodeInventory(body)
}

// DecodeInventory accepts a JSON array of records, or the same array encoded
// inside a JSON string.
func DecodeInventory(body []byte) ([]dto.InventoryRecord, error) {
	body = bytes.TrimSpace(body)

	var records []dto.InventoryRecord
	err := json.Unmarshal(body, &records)
	if err == nil {
		return records, nil
	}

	var encoded string
	if json.Unmarshal(body, &encoded) != nil {
		return nil, fmt.Errorf("error unmarshalling inventory feed: %w", err)
	}

	if err := json.Unmarshal([]byte(encoded), &records); err != nil {
		return nil, fmt.Errorf("error unmarshalling string-encoded inventory feed: %w", err)
	}

	return records, nil
}
