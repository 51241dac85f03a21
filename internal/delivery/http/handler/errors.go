package handler

import (
	"errors"

	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"
	ucauth "gigboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError translates usecase sentinels into transport errors. The
// 409 covers lifecycle actions attempted from the wrong status, including
// losing a take/complete race.
func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrPermissionDenied):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrInvalidState):
		return middleware.NewAppError(fiber.StatusConflict, "Job is no longer in the required state", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
