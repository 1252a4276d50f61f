package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-tailor/internal/messaging"
	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/services"
)

type MessageHandler struct {
	router *messaging.Router
}

func NewMessageHandler(router *messaging.Router) *MessageHandler {
	return &MessageHandler{
		router: router,
	}
}

// HandleMessage handles POST /messages
func (h *MessageHandler) HandleMessage(c *fiber.Ctx) error {
	var msg messaging.Message

	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(messaging.Reply{
			Error: "Invalid message payload",
		})
	}

	reply, err := h.router.Send(c.UserContext(), msg)
	if err != nil {
		reply.Error = err.Error()
		switch {
		case errors.Is(err, messaging.ErrUnknownAction), errors.Is(err, messaging.ErrEmptyJobText):
			return c.Status(fiber.StatusBadRequest).JSON(reply)
		case errors.Is(err, messaging.ErrNoReceiver):
			return c.Status(fiber.StatusNotFound).JSON(reply)
		case errors.Is(err, services.ErrWorkerStopped), errors.Is(err, services.ErrQueueFull):
			return c.Status(fiber.StatusServiceUnavailable).JSON(reply)
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(reply)
		}
	}

	return c.JSON(reply)
}

// GeneratePDFListener acknowledges generate_pdf messages with "started" as
// soon as the job is queued; the outcome is never sent back.
func GeneratePDFListener(worker services.Worker) messaging.HandlerFunc {
	return func(ctx context.Context, msg messaging.Message) (messaging.Reply, error) {
		if msg.JobText == "" {
			return messaging.Reply{}, messaging.ErrEmptyJobText
		}

		jobID, err := worker.Dispatch(models.TailorRequest{
			JobText:            msg.JobText,
			IncludeCoverLetter: msg.IncludeCoverLetter,
		})
		if err != nil {
			return messaging.Reply{}, err
		}

		return messaging.Reply{
			Status: messaging.StatusStarted,
			JobID:  jobID.String(),
		}, nil
	}
}
