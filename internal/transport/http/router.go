package http

import (
	"distributor-service/internal/service"
	"distributor-service/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Router собирает все маршруты сервиса. Группы по ролям повторяют
// таблицу команд диспетчера, но право доступа проверяет сам диспетчер.
func Router(auth *service.AuthService, d *service.Dispatcher, tokens *token.HSProvider, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	authHandler := NewAuthHandler(auth, log)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	orderHandler := NewOrderHandler(d, log)
	salesman := NewSalesmanHandler(d, log)
	warehouse := NewWarehouseHandler(d, log)
	manufacturer := NewManufacturerHandler(d, log)

	api := r.Group("/api/v1", AuthRequired(tokens, log))

	shop := api.Group("/shopkeeper")
	{
		shop.POST("/orders", orderHandler.PlaceOrder)
		shop.GET("/orders", orderHandler.MyOrders)
		shop.GET("/orders/:id/payments", orderHandler.Payments)
		shop.GET("/orders/:id/export", orderHandler.Export)
	}

	sales := api.Group("/salesman")
	{
		sales.GET("/pending-orders", salesman.PendingOrders)
		sales.GET("/dispatched-orders", salesman.DispatchedOrders)
		sales.POST("/confirm-order", salesman.ConfirmOrder)
		sales.POST("/deliver-order", salesman.DeliverOrder)
	}

	wh := api.Group("/warehouse")
	{
		wh.GET("/confirmed-orders", warehouse.ConfirmedOrders)
		wh.GET("/stock-requests", warehouse.StockRequests)
		wh.GET("/payment-requests", warehouse.PaymentRequests)
		wh.GET("/paid-orders", warehouse.PaidOrders)
		wh.POST("/process-order", warehouse.ProcessOrder)
		wh.POST("/pay-manufacturer", warehouse.PayManufacturer)
	}

	mf := api.Group("/manufacturer")
	{
		mf.GET("/stock-requests", manufacturer.StockRequests)
		mf.GET("/payment-requests", manufacturer.PaymentRequests)
		mf.GET("/paid-orders", manufacturer.PaidOrders)
		mf.POST("/request-payment/:id", manufacturer.RequestPayment)
		mf.POST("/ship-stock/:id", manufacturer.ShipStock)
	}

	return r
}
