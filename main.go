package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotelops-backend/config"
	"hotelops-backend/controllers"
	"hotelops-backend/routes"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("database connection established, migrations applied")

	// Services
	catalogService := services.NewCatalogService(db)
	recipeResolver := services.NewRecipeResolver(db)
	pricingService := services.NewPricingService(db)
	orderService := services.NewOrderService(db, pricingService)
	reservationService := services.NewReservationService(db)
	invoiceService := services.NewInvoiceService(db)

	// Controllers
	itemController := controllers.NewItemController(catalogService, recipeResolver)
	orderController := controllers.NewOrderController(orderService)
	reservationController := controllers.NewReservationController(reservationService)
	invoiceController := controllers.NewInvoiceController(invoiceService)
	roomController := controllers.NewRoomController(db)
	guestController := controllers.NewGuestController(db)
	settingsController := controllers.NewSettingsController(db)

	router := routes.SetupRouter(
		itemController,
		orderController,
		reservationController,
		invoiceController,
		roomController,
		guestController,
		settingsController,
	)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt, then shut down with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
