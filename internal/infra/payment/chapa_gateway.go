package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/ports/adapter"
	"internship-marketplace/internal/infra/metrics"
)

// ChapaGateway implements PaymentGateway against Chapa's transaction API
// using direct HTTP calls.
type ChapaGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewChapaGateway creates a Chapa gateway. baseURL defaults to production.
func NewChapaGateway(secretKey, baseURL string) (*ChapaGateway, error) {
	if secretKey == "" {
		return nil, domain.ErrInvalidArgument
	}
	if baseURL == "" {
		baseURL = "https://api.chapa.co"
	}
	return &ChapaGateway{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (g *ChapaGateway) Name() string { return "chapa" }

// chapaInitializeResponse represents the response from the transaction
// initialize API.
type chapaInitializeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

// InitializeTransaction registers a pending transaction with Chapa and
// returns the hosted checkout URL. Chapa reports application-level failures
// in the body with Status != "success", sometimes under HTTP 200, so the body
// status is checked regardless of the transport result.
func (g *ChapaGateway) InitializeTransaction(ctx context.Context, txReq adapter.TransactionRequest) (string, error) {
	jsonData, err := json.Marshal(txReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := g.baseURL + "/v1/transaction/initialize"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), false)
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), false)
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var response chapaInitializeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), false)
		return "", fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if response.Status != "success" {
		metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), false)
		return "", fmt.Errorf("%w: chapa status %q, message: %s", domain.ErrGatewayFailed, response.Status, response.Message)
	}
	if response.Data.CheckoutURL == "" {
		metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), false)
		return "", fmt.Errorf("%w: chapa returned no checkout_url", domain.ErrGatewayFailed)
	}

	metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), true)
	return response.Data.CheckoutURL, nil
}
