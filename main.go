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

	"myplan-backend/config"
	"myplan-backend/controllers"
	"myplan-backend/routes"
	"myplan-backend/services"
	"myplan-backend/utils"
	"myplan-backend/validations"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	validations.Register()

	bookingService := services.NewBookingService(config.DB)
	experienceService := services.NewExperienceService(config.DB)
	reportService := services.NewReportService(config.DB)

	router := routes.SetupRouter(routes.Controllers{
		Bookings:    controllers.NewBookingController(bookingService),
		Tickets:     controllers.NewTicketController(bookingService),
		Experiences: controllers.NewExperienceController(experienceService),
		Reports:     controllers.NewReportController(reportService),
	})

	port := utils.EnvOrDefault("PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
