package handler

import (
	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:jobId/:otherUserId", h.List)
	r.Post("/:jobId/:otherUserId", h.Send)
}

func (h *ChatHandler) List(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}
	other, err := pathUUID(c, "otherUserId")
	if err != nil {
		return err
	}

	msgs, err := h.uc.ListMessages(c.Context(), jobID, viewer, other)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatMessageResponses(msgs))
}

func (h *ChatHandler) Send(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}
	other, err := pathUUID(c, "otherUserId")
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.SendMessage(c.Context(), usecase.SendMessageInput{
		JobID:       jobID,
		Viewer:      viewer,
		Other:       other,
		SenderEmail: currentEmail(c),
		Body:        req.Body,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "message sent", dto.NewChatMessageResponse(m))
}
