package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/services"
	"tattoo-studio-api/pkg/lambda"
)

// ContactHandler serves the public contact form
type ContactHandler struct {
	contactService services.ContactService
	logger         *logrus.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService services.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// ContactResponse acknowledges an accepted submission
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// Handle accepts POST submissions only
func (h *ContactHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	switch requestMethod(req, http.MethodPost) {
	case http.MethodOptions:
		return preflightResponse(contactCORS)
	case http.MethodPost:
		return h.handleSubmit(ctx, req)
	default:
		return errorResponse(http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param message body services.ContactRequest true "Visitor contact details"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) handleSubmit(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var body services.ContactRequest
	if err := decodeBody(req, &body); err != nil {
		return errorResponse(http.StatusBadRequest, msgMalformedBody)
	}

	msg, err := h.contactService.SubmitContactMessage(ctx, &body)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	return jsonResponse(http.StatusOK, ContactResponse{
		Success: true,
		Message: services.MsgContactAccepted,
		ID:      msg.ID,
	})
}
