package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		err        *ApiError
		wantStatus int
		wantCode   string
	}{
		{NewValidationError("wajib diisi"), http.StatusBadRequest, CodeValidationError},
		{NewAuthError("belum diotorisasi"), http.StatusUnauthorized, CodeAuthError},
		{NewDeliveryError("ditolak penyedia"), http.StatusBadGateway, CodeDeliveryError},
		{NewTransactionError("gagal disimpan"), http.StatusInternalServerError, CodeTransactionError},
		{CreateNotFoundError("Prospek"), http.StatusNotFound, CodeNotFound},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.wantStatus, tc.err.StatusCode)
		assert.Equal(t, tc.wantCode, tc.err.ErrorCode)
		assert.NotEmpty(t, tc.err.Error())
	}

	assert.Equal(t, "Prospek tidak ditemukan", CreateNotFoundError("Prospek").Message)
}

func TestErrorPredicatesAreDisjoint(t *testing.T) {
	validation := NewValidationError("x")
	auth := NewAuthError("x")
	delivery := NewDeliveryError("x")
	transaction := NewTransactionError("x")

	assert.True(t, IsValidationError(validation))
	assert.True(t, IsAuthError(auth))
	assert.True(t, IsDeliveryError(delivery))
	assert.True(t, IsTransactionError(transaction))

	assert.False(t, IsValidationError(auth))
	assert.False(t, IsAuthError(delivery))
	assert.False(t, IsDeliveryError(transaction))
	assert.False(t, IsTransactionError(validation))
}

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("lookup gagal: %w", NewAuthError("token kedaluwarsa"))

	assert.True(t, IsAuthError(wrapped))
	assert.False(t, IsAuthError(errors.New("plain")))
	assert.False(t, IsAuthError(nil))
}
