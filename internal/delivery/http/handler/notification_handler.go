package handler

import (
	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Feed)
	r.Post("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) Feed(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}

	ns, err := h.uc.Feed(c.Context(), viewer, queryInt(c, "limit", 50))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNotificationResponses(ns))
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Context(), id, viewer); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
