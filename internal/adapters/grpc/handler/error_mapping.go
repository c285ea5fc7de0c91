package handler

import (
	"errors"
	"log"

	"github.com/ogurasousui/hrms-lite/internal/core/coreerr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	if err == nil {
		return nil
	}

	switch kind := coreerr.KindOf(err); {
	case errors.Is(kind, coreerr.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(kind, coreerr.ErrDuplicateKey), errors.Is(kind, coreerr.ErrAlreadyMarked):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(kind, coreerr.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		log.Printf("internal error: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
}
