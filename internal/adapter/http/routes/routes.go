package routes

import (
	"log"
	"strconv"

	_ "autoshop_billing/docs" // swag generated
	"autoshop_billing/internal/adapter/http/handlers"
	"autoshop_billing/internal/adapter/persistence/repository"
	"autoshop_billing/internal/infrastructure/config"
	"autoshop_billing/internal/infrastructure/database"
	"autoshop_billing/internal/infrastructure/events"
	"autoshop_billing/internal/infrastructure/payments"
	"autoshop_billing/internal/usecase"
	"autoshop_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg := config.Load()

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	getRoutes(cfg)

	err := router.Run(":" + strconv.Itoa(cfg.Server.Port))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg *config.Config) {
	ddb := database.ConnectDynamoDB(cfg.DynamoDB)

	estimateRepo := repository.NewEstimateDynamoRepository(ddb, cfg.DynamoDB.EstimatesTable, cfg.DynamoDB.AuditTable)
	auditRepo := repository.NewAuditDynamoRepository(ddb, cfg.DynamoDB.AuditTable)
	paymentRepo := repository.NewBillingPaymentDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable)
	technicians := repository.NewTechnicianDynamoDirectory(ddb, cfg.DynamoDB.TechniciansTable)
	taxPolicies, err := repository.NewSettingsTaxPolicyProvider(ddb, cfg.DynamoDB.SettingsTable, cfg.Tax.DefaultPolicy)
	if err != nil {
		log.Fatalf("Invalid tax configuration: %v", err)
	}

	publisher := events.NewPublisher(cfg.Kafka)
	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, auditRepo, taxPolicies, technicians, publisher)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewBillingPaymentUseCase(paymentRepo, estimateRepo, paymentGateway)

	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)
	billingPaymentHandler := handlers.NewBillingPaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, estimateHandler, billingPaymentHandler)
}

func setMiddlewares() {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
