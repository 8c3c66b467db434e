package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/middleware"
	"tattoo-studio-api/internal/services"
	"tattoo-studio-api/pkg/lambda"
)

// OrderHandler serves the custom orders function
type OrderHandler struct {
	orderService services.OrderService
	auth         *middleware.AuthService
	logger       *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderService, auth *middleware.AuthService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		auth:         auth,
		logger:       logger,
	}
}

// Handle answers preflight requests, then requires a caller for every other method
func (h *OrderHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	method := requestMethod(req, http.MethodGet)
	if method == http.MethodOptions {
		return preflightResponse(ordersCORS)
	}

	callerID, err := h.auth.Identify(req)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	switch method {
	case http.MethodGet:
		return h.handleGet(ctx, req, callerID)
	case http.MethodPost:
		return h.handleCreate(ctx, req, callerID)
	case http.MethodPut:
		return h.handleUpdate(ctx, req, callerID)
	default:
		return errorResponse(http.StatusMethodNotAllowed, msgMethodUnsupported)
	}
}

// @Summary List orders or get one order
// @Description Without id: masters see every order, clients their own. With id: a single order.
// @Tags orders
// @Produce json
// @Param id query int false "Order id"
// @Success 200 {array} models.OrderDetails
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) handleGet(ctx context.Context, req *lambda.Request, callerID int64) (*lambda.Response, error) {
	orderID, ok, err := queryID(req, "id")
	if err != nil {
		return errorResponse(http.StatusBadRequest, services.MsgOrderIDRequired)
	}

	if !ok {
		orders, err := h.orderService.ListOrders(ctx, callerID)
		if err != nil {
			return handleError(h.logger, req, err)
		}
		return jsonResponse(http.StatusOK, orders)
	}

	order, err := h.orderService.GetOrder(ctx, callerID, orderID)
	if err != nil {
		return handleError(h.logger, req, err)
	}
	return jsonResponse(http.StatusOK, order)
}

// @Summary Create an order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body services.CreateOrderRequest true "Order data"
// @Success 201 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) handleCreate(ctx context.Context, req *lambda.Request, callerID int64) (*lambda.Response, error) {
	var body services.CreateOrderRequest
	if err := decodeBody(req, &body); err != nil {
		return errorResponse(http.StatusBadRequest, msgMalformedBody)
	}

	order, err := h.orderService.CreateOrder(ctx, callerID, &body)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	return jsonResponse(http.StatusCreated, order)
}

// @Summary Update an order
// @Description Partial update. Price is applied for masters only and without a status it marks the order priced.
// @Tags orders
// @Accept json
// @Produce json
// @Param update body services.UpdateOrderRequest true "Order changes"
// @Success 200 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders [put]
func (h *OrderHandler) handleUpdate(ctx context.Context, req *lambda.Request, callerID int64) (*lambda.Response, error) {
	var body services.UpdateOrderRequest
	if err := decodeBody(req, &body); err != nil {
		return errorResponse(http.StatusBadRequest, msgMalformedBody)
	}

	order, err := h.orderService.UpdateOrder(ctx, callerID, &body)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	return jsonResponse(http.StatusOK, order)
}
