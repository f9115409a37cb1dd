package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPaymentUsecase_IssueToken_Success(t *testing.T) {
	users := new(UserRepoMock)
	gateway := new(GatewayMock)

	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7, Name: "Hana", Email: "hana@example.com"}, nil)
	gateway.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req GatewayTransactionRequest) bool {
		return req.OrderID == 55 &&
			req.Amount == 31000 &&
			req.Reference != "" &&
			req.Customer.Name == "Hana" &&
			req.Customer.Email == "hana@example.com"
	})).Return("tok-abc123", nil)

	uc := NewPaymentUsecase(users, gateway)

	token, err := uc.IssueToken(context.Background(), model.Order{ID: 55, UserID: 7, TotalAmount: 31000})
	assert.NoError(t, err)
	assert.Equal(t, "tok-abc123", token)

	gateway.AssertExpectations(t)
}

func TestPaymentUsecase_IssueToken_NewReferencePerAttempt(t *testing.T) {
	users := new(UserRepoMock)
	gateway := new(GatewayMock)

	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7}, nil)

	var refs []string
	gateway.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req GatewayTransactionRequest) bool {
		refs = append(refs, req.Reference)
		return true
	})).Return("tok", nil)

	uc := NewPaymentUsecase(users, gateway)
	order := model.Order{ID: 55, UserID: 7, TotalAmount: 31000}

	_, err := uc.IssueToken(context.Background(), order)
	assert.NoError(t, err)
	_, err = uc.IssueToken(context.Background(), order)
	assert.NoError(t, err)

	assert.Equal(t, 2, len(refs))
	assert.NotEqual(t, refs[0], refs[1])
}

func TestPaymentUsecase_IssueToken_GatewayError(t *testing.T) {
	users := new(UserRepoMock)
	gateway := new(GatewayMock)

	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7}, nil)
	gateway.On("CreateTransaction", mock.Anything, mock.Anything).Return("", errors.New("timeout"))

	uc := NewPaymentUsecase(users, gateway)

	_, err := uc.IssueToken(context.Background(), model.Order{ID: 55, UserID: 7})
	assertErrContains(t, err, "payment gateway error")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, he.Status)
}

func TestPaymentUsecase_IssueToken_EmptyTokenIsError(t *testing.T) {
	users := new(UserRepoMock)
	gateway := new(GatewayMock)

	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7}, nil)
	gateway.On("CreateTransaction", mock.Anything, mock.Anything).Return("", nil)

	uc := NewPaymentUsecase(users, gateway)

	_, err := uc.IssueToken(context.Background(), model.Order{ID: 55, UserID: 7})
	assertErrContains(t, err, "payment gateway error")
}

func TestPaymentUsecase_IssueToken_UserMissing(t *testing.T) {
	users := new(UserRepoMock)
	gateway := new(GatewayMock)

	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{}, repo.ErrNotFound)

	uc := NewPaymentUsecase(users, gateway)

	_, err := uc.IssueToken(context.Background(), model.Order{ID: 55, UserID: 7})
	assertErrContains(t, err, "user not found")

	gateway.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}
