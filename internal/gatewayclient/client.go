// Package gatewayclient talks to the external credit-card gateway that
// charges customer cards during cash-desk payments.
package gatewayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// CardNetwork is the detected network of a credit-card number.
type CardNetwork string

const (
	NetworkVisa       CardNetwork = "visa"
	NetworkMastercard CardNetwork = "mastercard"
	NetworkUnknown    CardNetwork = "unknown"
)

// DetectNetwork recognizes the card network from the number prefix.
func DetectNetwork(cardNumber string) CardNetwork {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)

	switch {
	case strings.HasPrefix(digits, "4"):
		return NetworkVisa
	case len(digits) >= 2 && digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5':
		return NetworkMastercard
	default:
		return NetworkUnknown
	}
}

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type chargeReq struct {
	CardNumber string  `json:"cardNumber"`
	Network    string  `json:"network"`
	Amount     float64 `json:"amount"`
}

type chargeResp struct {
	Charged bool `json:"charged"`
}

// ChargeCard asks the gateway to charge the amount on the card. A false
// result means the gateway declined; the caller decides whether to retry.
func (c *Client) ChargeCard(ctx context.Context, cardNumber string, amount float64) (bool, error) {
	network := DetectNetwork(cardNumber)
	if network == NetworkUnknown {
		return false, nil
	}

	body, err := json.Marshal(chargeReq{CardNumber: cardNumber, Network: string(network), Amount: amount})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	var out chargeResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.Charged, nil
}
