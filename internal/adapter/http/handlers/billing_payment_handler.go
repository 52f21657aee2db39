package handlers

import (
	"errors"
	"log"
	"net/http"

	request "autoshop_billing/internal/adapter/http/dto/request"
	response "autoshop_billing/internal/adapter/http/dto/response"
	"autoshop_billing/internal/usecase"
	"autoshop_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPaymentBody = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// BillingPaymentHandler handles HTTP requests for estimate payments.
type BillingPaymentHandler struct {
	usecase usecase.IBillingPaymentUseCase
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc}
}

// CreatePaymentByEstimateID godoc
// @Summary      Charge an approved estimate
// @Description  Body is either the raw Mercado Pago payload or {"mp_payload": {...}}. The amount is always the estimate total.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        estimate_id  path      string  true  "Estimate ID"
// @Success      200          {object}  response.BillingPaymentResponse
// @Failure      400          {object}  pkg.HTTPError
// @Failure      409          {object}  pkg.HTTPError
// @Failure      503          {object}  pkg.HTTPError
// @Router       /payments/{estimate_id} [post]
func (h *BillingPaymentHandler) CreatePaymentByEstimateID(c *gin.Context) {
	estimateID := c.Param("estimate_id")

	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[payment][handler] read body failed estimate_id=%s err=%v", estimateID, err)
		c.JSON(errInvalidPaymentBody.HTTPStatus, errInvalidPaymentBody.ToHTTPError())
		return
	}
	payload, err := request.ParseBillingPaymentBody(raw)
	if err != nil {
		log.Printf("[payment][handler] invalid body estimate_id=%s err=%v", estimateID, err)
		c.JSON(errInvalidPaymentBody.HTTPStatus, errInvalidPaymentBody.ToHTTPError())
		return
	}

	payment, err := h.usecase.CreateAndApprove(c.Request.Context(), estimateID, payload)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	log.Printf("[payment][handler] charged estimate_id=%s payment_id=%s status=%s amount=%s", estimateID, payment.ID, payment.Status, payment.Amount)
	c.JSON(http.StatusOK, response.FromBillingPayment(payment))
}

// GetPaymentByEstimateID godoc
// @Summary  Latest payment of an estimate
// @Tags     payments
// @Produce  json
// @Param    estimate_id  path      string  true  "Estimate ID"
// @Success  200          {object}  response.BillingPaymentResponse
// @Failure  404          {object}  pkg.HTTPError
// @Router   /payments/{estimate_id} [get]
func (h *BillingPaymentHandler) GetPaymentByEstimateID(c *gin.Context) {
	payment, err := h.usecase.GetLatestByEstimateID(c.Request.Context(), c.Param("estimate_id"))
	if err != nil {
		writePaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(payment))
}

func writePaymentError(c *gin.Context, err error) {
	appErr := mapBillingPaymentError(err)
	log.Printf("[payment][handler] request failed path=%s status=%d err=%v", c.FullPath(), appErr.HTTPStatus, err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapBillingPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentEstimateID), errors.Is(err, usecase.ErrInvalidPaymentPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotSet):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateNotApproved):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_APPROVED", "Estimate not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateAlreadyPaid):
		return pkg.NewDomainErrorSimple("ESTIMATE_ALREADY_PAID", "Estimate already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
