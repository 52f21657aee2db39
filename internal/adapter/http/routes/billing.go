package routes

import (
	"autoshop_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates    = "/estimates"
	PathRepairOrders = "/repair-orders"
	PathPayments     = "/payments"
)

func addBillingRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler, paymentHandler *handlers.BillingPaymentHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("/preview", estimateHandler.PreviewEstimate)
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PUT("/:id", estimateHandler.UpdateEstimate)
		estimates.GET("/:id/audit", estimateHandler.ListEstimateAudit)

		// Explicit status actions.
		estimates.PATCH("/:id/send", estimateHandler.SendEstimate)
		estimates.PATCH("/:id/approve", estimateHandler.ApproveEstimate)
		estimates.PATCH("/:id/decline", estimateHandler.DeclineEstimate)
		estimates.PATCH("/:id/expire", estimateHandler.ExpireEstimate)
	}

	repairOrders := rg.Group(PathRepairOrders)
	{
		repairOrders.GET("/:repair_order_id/estimate", estimateHandler.GetEstimateByRepairOrder)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:estimate_id", paymentHandler.CreatePaymentByEstimateID)
		payments.GET("/:estimate_id", paymentHandler.GetPaymentByEstimateID)
	}
}
