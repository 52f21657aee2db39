package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	request "autoshop_billing/internal/adapter/http/dto/request"
	response "autoshop_billing/internal/adapter/http/dto/response"
	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/usecase"
	"autoshop_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for repair-order estimates.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// PreviewEstimate godoc
// @Summary      Preview estimate totals
// @Description  Computes subtotal, tax and total with the current tax policy without saving anything.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        body  body      request.EstimateRequest  true  "Estimate content"
// @Success      200   {object}  response.TotalsResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /estimates/preview [post]
func (h *EstimateHandler) PreviewEstimate(c *gin.Context) {
	in, ok := bindEstimateInput(c)
	if !ok {
		return
	}

	totals, err := h.usecase.Preview(c.Request.Context(), in)
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTotals(totals))
}

// CreateEstimate godoc
// @Summary      Create the estimate of a repair order
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        body  body      request.EstimateRequest  true  "Estimate content"
// @Success      201   {object}  response.EstimateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	in, ok := bindEstimateInput(c)
	if !ok {
		return
	}

	estimate, err := h.usecase.CreateEstimate(c.Request.Context(), in)
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

// UpdateEstimate godoc
// @Summary      Replace the content of an estimate
// @Description  Jobs and lines are replaced wholesale. An approved estimate whose totals change moves to needs_reapproval.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Estimate ID"
// @Param        body  body      request.EstimateRequest  true  "Estimate content"
// @Success      200   {object}  response.EstimateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /estimates/{id} [put]
func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	in, ok := bindEstimateInput(c)
	if !ok {
		return
	}

	estimate, err := h.usecase.UpdateEstimate(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// GetEstimate godoc
// @Summary  Get an estimate by ID
// @Tags     estimates
// @Produce  json
// @Param    id   path      string  true  "Estimate ID"
// @Success  200  {object}  response.EstimateResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// GetEstimateByRepairOrder godoc
// @Summary  Get the estimate of a repair order
// @Tags     estimates
// @Produce  json
// @Param    repair_order_id  path      string  true  "Repair order ID"
// @Success  200              {object}  response.EstimateResponse
// @Failure  404              {object}  pkg.HTTPError
// @Router   /repair-orders/{repair_order_id}/estimate [get]
func (h *EstimateHandler) GetEstimateByRepairOrder(c *gin.Context) {
	estimate, err := h.usecase.GetByRepairOrderID(c.Request.Context(), c.Param("repair_order_id"))
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// ListEstimateAudit godoc
// @Summary  List the audit trail of an estimate
// @Tags     estimates
// @Produce  json
// @Param    id   path      string  true  "Estimate ID"
// @Success  200  {array}   response.AuditEventResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /estimates/{id}/audit [get]
func (h *EstimateHandler) ListEstimateAudit(c *gin.Context) {
	events, err := h.usecase.ListAuditEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAuditEvents(events))
}

func (h *EstimateHandler) SendEstimate(c *gin.Context) {
	h.patchEstimateStatus(c, h.usecase.Send)
}

// ApproveEstimate records the customer approval. The body is optional and may
// carry the signature id captured by the front desk.
func (h *EstimateHandler) ApproveEstimate(c *gin.Context) {
	var payload request.ApproveEstimateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
			return
		}
	}

	h.patchEstimateStatus(c, func(ctx context.Context, id string) (entities.Estimate, error) {
		return h.usecase.Approve(ctx, id, payload.SignatureID)
	})
}

func (h *EstimateHandler) DeclineEstimate(c *gin.Context) {
	h.patchEstimateStatus(c, h.usecase.Decline)
}

func (h *EstimateHandler) ExpireEstimate(c *gin.Context) {
	h.patchEstimateStatus(c, h.usecase.Expire)
}

func (h *EstimateHandler) patchEstimateStatus(
	c *gin.Context,
	updater func(ctx context.Context, id string) (entities.Estimate, error),
) {
	estimate, err := updater(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func bindEstimateInput(c *gin.Context) (usecase.EstimateInput, bool) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[estimate][handler] invalid payload path=%s err=%v", c.FullPath(), err)
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return usecase.EstimateInput{}, false
	}

	in, err := payload.ToEstimateInput()
	if err != nil {
		writeEstimateError(c, err)
		return usecase.EstimateInput{}, false
	}
	return in, true
}

func writeEstimateError(c *gin.Context, err error) {
	appErr := mapEstimateError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Printf("[estimate][handler] request failed path=%s err=%v", c.FullPath(), err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRepairOrderID), errors.Is(err, usecase.ErrInvalidEstimateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidLineItemKind):
		return pkg.NewDomainErrorSimple("INVALID_LINE_ITEM_KIND", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidMonetaryValue):
		return pkg.NewDomainErrorSimple("INVALID_MONETARY_VALUE", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingCustomer):
		return pkg.NewDomainErrorSimple("MISSING_CUSTOMER", "Customer is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTechnicianAssignment):
		return pkg.NewDomainErrorSimple("INVALID_TECHNICIAN_ASSIGNMENT", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateAlreadyExists):
		return pkg.NewDomainErrorSimple("ESTIMATE_ALREADY_EXISTS", "Estimate already exists for this repair order", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateConflict):
		return pkg.NewDomainErrorSimple("ESTIMATE_CONFLICT", "Estimate was changed by another request", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
