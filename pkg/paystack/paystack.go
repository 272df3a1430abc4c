// Package paystack talks to the Paystack transaction API: initialize a
// hosted-checkout session, verify the outcome of a reference.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.paystack.co"

// StatusSuccess is the gateway's status label for a completed payment.
// Anything else ("failed", "abandoned", ...) is a non-success outcome.
const StatusSuccess = "success"

// GatewayError is any failure talking to the gateway: connection error,
// timeout, non-2xx response, malformed or incomplete body. The message is
// descriptive and safe to return to callers; the secret key never appears
// in it.
type GatewayError struct {
	Op      string
	Message string
}

func (e *GatewayError) Error() string {
	return "paystack " + e.Op + ": " + e.Message
}

type InitResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyResult is the gateway's answer for a reference. A non-nil error from
// Verify means the call itself failed and no VerifyResult is returned; a nil
// error means the call succeeded and Status carries the payment outcome,
// which the caller inspects separately.
type VerifyResult struct {
	Status      string
	AmountMinor int64
	PaidAt      *time.Time
}

type Gateway interface {
	Initialize(ctx context.Context, reference, email string, amountMinor int64) (*InitResult, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

type Client struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type initializeReq struct {
	Reference string `json:"reference"`
	Email     string `json:"email"`
	Amount    int64  `json:"amount"` // minor units
}

type initializeResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// Initialize opens a checkout session for the reference. The amount is in
// minor units (kobo/cents), per the gateway protocol.
func (c *Client) Initialize(ctx context.Context, reference, email string, amountMinor int64) (*InitResult, error) {
	body, _ := json.Marshal(initializeReq{Reference: reference, Email: email, Amount: amountMinor})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, &GatewayError{Op: "initialize", Message: err.Error()}
	}
	c.setHeaders(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GatewayError{Op: "initialize", Message: err.Error()}
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{Op: "initialize", Message: fmt.Sprintf("gateway returned %d: %s", resp.StatusCode, respBody)}
	}
	var out initializeResp
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &GatewayError{Op: "initialize", Message: "malformed response: " + err.Error()}
	}
	if !out.Status {
		return nil, &GatewayError{Op: "initialize", Message: out.Message}
	}
	if out.Data.AuthorizationURL == "" {
		return nil, &GatewayError{Op: "initialize", Message: "response missing authorization_url"}
	}
	log.Printf("[PAYSTACK] initialized reference=%s amount_minor=%d", reference, amountMinor)
	return &InitResult{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

type verifyResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"` // minor units
		PaidAt string `json:"paid_at"`
	} `json:"data"`
}

// Verify fetches the current state of a reference from the gateway.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, &GatewayError{Op: "verify", Message: err.Error()}
	}
	c.setHeaders(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GatewayError{Op: "verify", Message: err.Error()}
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{Op: "verify", Message: fmt.Sprintf("gateway returned %d: %s", resp.StatusCode, respBody)}
	}
	var out verifyResp
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &GatewayError{Op: "verify", Message: "malformed response: " + err.Error()}
	}
	if !out.Status {
		return nil, &GatewayError{Op: "verify", Message: out.Message}
	}
	if out.Data.Status == "" {
		return nil, &GatewayError{Op: "verify", Message: "response missing transaction status"}
	}
	res := &VerifyResult{
		Status:      out.Data.Status,
		AmountMinor: out.Data.Amount,
	}
	if out.Data.PaidAt != "" {
		if t, err := time.Parse(time.RFC3339, out.Data.PaidAt); err == nil {
			res.PaidAt = &t
		}
	}
	log.Printf("[PAYSTACK] verified reference=%s status=%s amount_minor=%d", reference, res.Status, res.AmountMinor)
	return res, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
}
