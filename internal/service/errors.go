package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/models"
)

// connectError maps domain errors onto Connect status codes.
func connectError(err error) *connect.Error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
