package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"app/internal/usecase"
)

// Client は決済ゲートウェイのトランザクション作成API。
// usecase.PaymentGateway を満たす。
type Client struct {
	apiURL     string
	serverKey  string
	httpClient *http.Client
}

func NewClient(apiURL string, serverKey string) *Client {
	return &Client{
		apiURL:    apiURL,
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type transactionRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	CustomerDetails struct {
		FirstName string `json:"first_name"`
		Email     string `json:"email"`
	} `json:"customer_details"`
}

type transactionResponse struct {
	Token         string   `json:"token"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

func (c *Client) CreateTransaction(ctx context.Context, req usecase.GatewayTransactionRequest) (string, error) {
	var body transactionRequest
	//order_idはゲートウェイ側で一意である必要があるので試行Referenceを混ぜる
	body.TransactionDetails.OrderID = fmt.Sprintf("ORDER-%d-%s", req.OrderID, req.Reference)
	body.TransactionDetails.GrossAmount = req.Amount
	body.CustomerDetails.FirstName = req.Customer.Name
	body.CustomerDetails.Email = req.Customer.Email

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.serverKey+":")))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out transactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.ErrorMessages) > 0 {
		return "", fmt.Errorf("payment gateway: %s", out.ErrorMessages[0])
	}
	if out.Token == "" {
		return "", fmt.Errorf("payment gateway: empty token (status %d)", resp.StatusCode)
	}

	return out.Token, nil
}
