// Package payments talks to the PortOne (Iamport) REST API to confirm that a
// client-reported payment really happened for the expected amount.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.iamport.kr"

type PortOneConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
	Timeout   time.Duration
}

// Payment is the part of the gateway's payment record we look at.
type Payment struct {
	ImpUID string          `json:"imp_uid"`
	Status string          `json:"status"`
	Amount decimal.Decimal `json:"amount"`
	PaidAt int64           `json:"paid_at"`
}

// PaidTime converts the gateway's unix timestamp. Zero means unknown.
func (p *Payment) PaidTime() *time.Time {
	if p == nil || p.PaidAt == 0 {
		return nil
	}
	t := time.Unix(p.PaidAt, 0).UTC()
	return &t
}

// Verification is the outcome of a successful Verify. Skipped is set when
// no credentials are configured and nothing was checked.
type Verification struct {
	Skipped bool
	Payment *Payment
}

type PortOneVerifier struct {
	cfg    PortOneConfig
	client *resty.Client
}

func NewPortOneVerifier(cfg PortOneConfig) *PortOneVerifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &PortOneVerifier{cfg: cfg, client: client}
}

func (v *PortOneVerifier) Configured() bool {
	return v.cfg.APIKey != "" && v.cfg.APISecret != ""
}

type envelope struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

// Verify checks that transactionID was paid and that exactly expected was
// charged. Every failure, including transport errors, is VerificationFailed.
func (v *PortOneVerifier) Verify(ctx context.Context, transactionID string, expected int64) (*Verification, error) {
	if !v.Configured() {
		slog.Warn("payment gateway credentials are not set, skipping verification", "transaction_id", transactionID)
		return &Verification{Skipped: true}, nil
	}

	token, err := v.accessToken(ctx)
	if err != nil {
		return nil, apperrors.VerificationFailed("payment gateway authentication failed", err)
	}

	payment, err := v.payment(ctx, token, transactionID)
	if err != nil {
		return nil, apperrors.VerificationFailed("payment information could not be retrieved", err)
	}

	if payment.Status != string(models.PaymentStatusPaid) {
		return nil, apperrors.VerificationFailed(fmt.Sprintf("payment is not completed (status: %s)", payment.Status), nil)
	}
	if !payment.Amount.Equal(decimal.NewFromInt(expected)) {
		return nil, apperrors.VerificationFailed(
			fmt.Sprintf("payment amount mismatch (expected: %d, actual: %s)", expected, payment.Amount.String()), nil)
	}

	return &Verification{Payment: payment}, nil
}

func (v *PortOneVerifier) accessToken(ctx context.Context) (string, error) {
	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"imp_key":    v.cfg.APIKey,
			"imp_secret": v.cfg.APISecret,
		}).
		Post("/users/getToken")
	if err != nil {
		return "", err
	}

	body, err := decodeEnvelope(resp)
	if err != nil {
		return "", err
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("token not found in response")
	}
	return token.AccessToken, nil
}

func (v *PortOneVerifier) payment(ctx context.Context, token, transactionID string) (*Payment, error) {
	resp, err := v.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetPathParam("impUID", transactionID).
		Get("/payments/{impUID}")
	if err != nil {
		return nil, err
	}

	body, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("failed to parse payment response: %w", err)
	}
	return &payment, nil
}

// decodeEnvelope unwraps the gateway's {code, message, response} body. The
// gateway's own wording only goes to the log; returned errors carry the
// status code alone.
func decodeEnvelope(resp *resty.Response) (json.RawMessage, error) {
	var env envelope
	parseErr := json.Unmarshal(resp.Body(), &env)

	if resp.StatusCode() != http.StatusOK {
		slog.Warn("payment gateway request failed",
			"url", resp.Request.URL, "status", resp.StatusCode(), "code", env.Code, "message", env.Message)
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode())
	}
	if parseErr != nil {
		return nil, fmt.Errorf("invalid response from payment gateway: %w", parseErr)
	}
	if len(env.Response) == 0 || string(env.Response) == "null" {
		slog.Warn("payment gateway returned no data", "url", resp.Request.URL, "code", env.Code, "message", env.Message)
		return nil, errors.New("empty response from payment gateway")
	}
	return env.Response, nil
}
