package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotelops-backend/controllers"
	"hotelops-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ic *controllers.ItemController,
	oc *controllers.OrderController,
	rc *controllers.ReservationController,
	vc *controllers.InvoiceController,
	roomCtl *controllers.RoomController,
	gc *controllers.GuestController,
	sc *controllers.SettingsController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		items := api.Group("/items")
		{
			items.GET("", ic.ListItems)
			items.GET("/:id", ic.GetItem)
			items.POST("", ic.CreateItem)
			items.PUT("/:id", ic.UpdateItem)
			items.DELETE("/:id", ic.DeleteItem)
			items.POST("/:id/ingredients", ic.AddIngredient)
			items.DELETE("/:id/ingredients/:childId", ic.RemoveIngredient)
			items.POST("/:id/stock", ic.AdjustStock)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", oc.ListOrders)
			orders.GET("/:id", oc.GetOrder)
			orders.POST("", oc.CreateOrder)
			orders.POST("/:id/pay", oc.MarkPaid)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", rc.ListReservations)
			reservations.GET("/:id", rc.GetReservation)
			reservations.POST("", rc.CreateReservation)
			reservations.PATCH("/:id", rc.UpdateStay)
			reservations.POST("/:id/transition", rc.Transition)
			reservations.POST("/:id/pay", rc.MarkPaid)
		}

		api.GET("/invoices/:guestId", vc.GetInvoice)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomCtl.GetRooms)
			rooms.POST("", roomCtl.CreateRoom)
			rooms.PUT("/:id", roomCtl.UpdateRoom)
			rooms.PATCH("/:id", roomCtl.UpdateRoom)
			rooms.DELETE("/:id", roomCtl.DeleteRoom)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			guests.GET("/:id", gc.GetGuestByID)
			guests.POST("", gc.CreateGuest)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeleteGuest)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/happy-hour", sc.GetHappyHour)
			settings.PUT("/happy-hour", sc.UpdateHappyHour)
		}
	}

	return r
}
