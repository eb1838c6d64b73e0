package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"appypay-service/internal/services"
	"appypay-service/pkg/common"
)

// PaymentHandler exposes the charge-creation and lookup endpoints.
type PaymentHandler struct {
	Payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Payments.CreatePayment(req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result, result.Message))
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	merchantID := c.Param("merchantId")

	payment, err := h.Payments.GetPayment(merchantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	if payment == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Payment not found", nil, http.StatusNotFound))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(payment, "success"))
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	if search := c.Query("search"); search != "" {
		payments, err := h.Payments.SearchPayments(search, c.Query("type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(payments, "success"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	payments, total, err := h.Payments.ListPayments(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, common.PaginateResponse(payments, total, page, limit, ""))
}

// writeError maps the service error taxonomy onto HTTP responses.
// Classified gateway failures keep the {error, code, message} shape the
// gateway integration promises its callers.
func (h *PaymentHandler) writeError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var authErr *services.AuthError
	var configErr *services.ConfigurationError
	var gatewayErr *services.GatewayError
	var retriesErr *services.MaxRetriesError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(validationErr.Error(), nil, http.StatusBadRequest))
	case errors.As(err, &authErr):
		c.JSON(http.StatusBadGateway, common.NewErrorResponse("authentication with payment gateway failed", nil, http.StatusBadGateway))
	case errors.As(err, &configErr):
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(configErr.Error(), nil, http.StatusInternalServerError))
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadRequest, common.NewGatewayErrorResponse(gatewayErr.Code, gatewayErr.Message))
	case errors.As(err, &retriesErr):
		c.JSON(http.StatusConflict, common.NewGatewayErrorResponse(retriesErr.Code, retriesErr.Error()))
	default:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
	}
}
