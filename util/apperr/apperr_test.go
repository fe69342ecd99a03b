package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"shareit/util/apperr"

	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	err := apperr.NotFound("item id=%d not found", 7)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
	require.Equal(t, "item id=7 not found", err.Error())

	wrapped := fmt.Errorf("lookup: %w", apperr.State("booking is not WAITING"))
	require.Equal(t, apperr.ErrState, apperr.Code(wrapped))

	require.Equal(t, apperr.ErrCode(""), apperr.Code(errors.New("plain")))
	require.Equal(t, apperr.ErrCode(""), apperr.Code(nil))
}
