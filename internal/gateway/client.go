package gateway

import (
	"encoding/json"
	"fmt"
	"net/url"

	"appypay-service/internal/config"
	"appypay-service/pkg/common"
)

// Client is the HTTP transport for the AppyPay API. All authenticated
// calls carry a Bearer token plus the fixed Accept-Language, Accept and
// Content-Type headers from configuration.
type Client struct {
	cfg *config.Config
}

func NewClient(cfg *config.Config) *Client {
	common.SetTimeout(cfg.Timeout)
	return &Client{cfg: cfg}
}

func (c *Client) headers(token string) map[string]string {
	return map[string]string{
		"Accept-Language": c.cfg.AcceptLanguage,
		"Accept":          c.cfg.Accept,
		"Content-Type":    c.cfg.ContentType,
		"Authorization":   "Bearer " + token,
	}
}

// ExchangeToken performs the OAuth2 client-credentials exchange against
// the configured auth endpoint.
func (c *Client) ExchangeToken() (*TokenResponse, error) {
	form := url.Values{
		"grant_type":    {c.cfg.GrantType},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"resource":      {c.cfg.Resource},
	}

	body, status, err := common.PostForm(c.cfg.AuthURL, form, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("token endpoint returned status %d: %s", status, body)
	}

	var tr TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("malformed token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}
	return &tr, nil
}

// CreateCharge posts a charge payload. Non-2xx statuses are not an
// error here; the classifier decides what they mean.
func (c *Client) CreateCharge(token string, payload *ChargePayload) (*ChargeResponse, error) {
	body, status, err := common.PostJSON(c.cfg.APIURL+"/charges", payload, c.headers(token))
	if err != nil {
		return nil, err
	}

	var cr ChargeResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("malformed charge response (status %d): %w", status, err)
	}
	cr.HTTPStatus = status
	return &cr, nil
}

// ListCharges fetches the remote payment listing. The limit is set high
// enough to behave as "fetch all".
func (c *Client) ListCharges(token string, limit int) (*ChargeList, error) {
	url := fmt.Sprintf("%s/charges?limit=%d", c.cfg.APIURL, limit)
	body, status, err := common.Get(url, c.headers(token))
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("charge listing returned status %d", status)
	}

	var list ChargeList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("malformed charge listing: %w", err)
	}
	return &list, nil
}

// ListApplications fetches the payment-method listing.
func (c *Client) ListApplications(token string) (*ApplicationList, error) {
	body, status, err := common.Get(c.cfg.APIURL+"/applications", c.headers(token))
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("application listing returned status %d", status)
	}

	var list ApplicationList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("malformed application listing: %w", err)
	}
	return &list, nil
}
