package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const (
	payPalSandboxBase = "https://api-m.sandbox.paypal.com"
	payPalLiveBase    = "https://api-m.paypal.com"

	payPalTimeout = 15 * time.Second
)

type PayPalClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	cb           *gobreaker.CircuitBreaker[[]byte]

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func CreatePayPalClient(config *config.Config, cb *gobreaker.CircuitBreaker[[]byte]) *PayPalClient {
	baseURL := config.PayPalConfig.APIBase
	if baseURL == "" {
		baseURL = payPalSandboxBase
		if config.PayPalConfig.Environment == "live" {
			baseURL = payPalLiveBase
		}
	}

	return &PayPalClient{
		clientID:     config.PayPalConfig.ClientID,
		clientSecret: config.PayPalConfig.ClientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		cb:           cb,
	}
}

func (c *PayPalClient) ClientID() string {
	return c.clientID
}

// GetPaymentDetails re-fetches a checkout order so the caller can compare it
// against the stored order. An ID PayPal does not recognise yields
// errs.ErrPaymentNotFound, which the breaker should be told to ignore.
func (c *PayPalClient) GetPaymentDetails(ctx context.Context, paypalOrderID string) (details dto.PaymentDetails, err error) {
	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.fetchOrder(ctx, paypalOrderID)
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PayPalGetPaymentDetails").Msg("")
		return details, err
	}

	var order dto.PayPalOrder
	if err = json.Unmarshal(body, &order); err != nil {
		return details, fmt.Errorf("error unmarshalling paypal order: %w", err)
	}

	details = dto.PaymentDetails{
		ID:           order.ID,
		Status:       order.Status,
		UpdateTime:   order.UpdateTime,
		EmailAddress: order.Payer.EmailAddress,
	}
	if len(order.PurchaseUnits) > 0 {
		details.Amount = order.PurchaseUnits[0].Amount.Value
		details.CurrencyCode = order.PurchaseUnits[0].Amount.CurrencyCode
	}

	return details, nil
}

func (c *PayPalClient) fetchOrder(ctx context.Context, paypalOrderID string) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/v2/checkout/orders/%s", c.baseURL, url.PathEscape(paypalOrderID)),
		Method: http.MethodGet,
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
			"Content-Type":  "application/json",
		},
		Timeout: payPalTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("error calling paypal orders api: %w", err)
	}

	if statusCode == http.StatusUnauthorized {
		c.resetToken()
	}

	switch statusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: paypal orders api returned status %d for %q", errs.ErrPaymentNotFound, statusCode, paypalOrderID)
	default:
		return nil, fmt.Errorf("paypal orders api returned non-OK status: %d", statusCode)
	}
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    c.baseURL + "/v1/oauth2/token",
		Method: http.MethodPost,
		Body:   []byte("grant_type=client_credentials"),
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"Accept":       "application/json",
		},
		Username: c.clientID,
		Password: c.clientSecret,
		Timeout:  payPalTimeout,
	})
	if err != nil {
		return "", fmt.Errorf("error calling paypal oauth api: %w", err)
	}

	if statusCode != http.StatusOK {
		return "", fmt.Errorf("paypal oauth api returned non-OK status: %d", statusCode)
	}

	var token dto.PayPalAccessToken
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("error unmarshalling paypal token: %w", err)
	}

	c.token = token.AccessToken
	// refresh a minute early
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)

	return c.token, nil
}

func (c *PayPalClient) resetToken() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
}
