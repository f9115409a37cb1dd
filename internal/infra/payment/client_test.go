package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func gatewayRequest() usecase.GatewayTransactionRequest {
	return usecase.GatewayTransactionRequest{
		OrderID:   55,
		Reference: "ref-1",
		Amount:    31000,
		Customer:  usecase.GatewayCustomer{Name: "Hana", Email: "hana@example.com"},
	}
}

func TestClient_CreateTransaction_Success(t *testing.T) {
	var got transactionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		// server keyのBasic認証（key + ":" をbase64）
		assert.Equal(t, "Basic c2VydmVyLWtleTo=", r.Header.Get("Authorization"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-abc123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "server-key")

	token, err := c.CreateTransaction(context.Background(), gatewayRequest())
	assert.NoError(t, err)
	assert.Equal(t, "tok-abc123", token)

	// order_idは注文IDに試行Referenceを混ぜて一意にする
	assert.Equal(t, "ORDER-55-ref-1", got.TransactionDetails.OrderID)
	assert.Equal(t, int64(31000), got.TransactionDetails.GrossAmount)
	assert.Equal(t, "Hana", got.CustomerDetails.FirstName)
	assert.Equal(t, "hana@example.com", got.CustomerDetails.Email)
}

func TestClient_CreateTransaction_GatewayReportsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string][]string{"error_messages": {"Access denied"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "wrong-key")

	_, err := c.CreateTransaction(context.Background(), gatewayRequest())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Access denied")
}

func TestClient_CreateTransaction_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "server-key")

	_, err := c.CreateTransaction(context.Background(), gatewayRequest())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty token")
}
