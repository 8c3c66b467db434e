package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/middleware"
	"tattoo-studio-api/internal/services"
	"tattoo-studio-api/pkg/lambda"
)

// MessageHandler serves the order chat function
type MessageHandler struct {
	messageService services.MessageService
	auth           *middleware.AuthService
	logger         *logrus.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService services.MessageService, auth *middleware.AuthService, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		auth:           auth,
		logger:         logger,
	}
}

// Handle answers preflight requests, then requires a caller for every other method
func (h *MessageHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	method := requestMethod(req, http.MethodGet)
	if method == http.MethodOptions {
		return preflightResponse(messagesCORS)
	}

	callerID, err := h.auth.Identify(req)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	switch method {
	case http.MethodGet:
		return h.handleList(ctx, req, callerID)
	case http.MethodPost:
		return h.handlePost(ctx, req, callerID)
	default:
		return errorResponse(http.StatusMethodNotAllowed, msgMethodUnsupported)
	}
}

// @Summary List the messages of an order
// @Tags messages
// @Produce json
// @Param order_id query int true "Order id"
// @Success 200 {array} models.OrderMessageDetails
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) handleList(ctx context.Context, req *lambda.Request, callerID int64) (*lambda.Response, error) {
	orderID, ok, err := queryID(req, "order_id")
	if err != nil || !ok {
		return errorResponse(http.StatusBadRequest, services.MsgOrderIDRequired)
	}

	messages, err := h.messageService.ListMessages(ctx, callerID, orderID)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	return jsonResponse(http.StatusOK, messages)
}

// @Summary Post a message to an order
// @Description Moves a pending order to discussing
// @Tags messages
// @Accept json
// @Produce json
// @Param message body services.PostMessageRequest true "Message"
// @Success 201 {object} models.OrderMessage
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) handlePost(ctx context.Context, req *lambda.Request, callerID int64) (*lambda.Response, error) {
	var body services.PostMessageRequest
	if err := decodeBody(req, &body); err != nil {
		return errorResponse(http.StatusBadRequest, msgMalformedBody)
	}

	msg, err := h.messageService.PostMessage(ctx, callerID, &body)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	return jsonResponse(http.StatusCreated, msg)
}
