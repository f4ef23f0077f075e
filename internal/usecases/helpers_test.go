package usecases_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	domainerrors "localtrade.backend/internal/domain/errors"
)

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, status, appErr.Status)
	if message != "" {
		require.Equal(t, message, appErr.Message)
	}
}

const (
	walletA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	walletB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)
