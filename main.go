// File: meetbridge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // the slot timezone must resolve even without a system zone database

	"meetbridge/config"
	"meetbridge/handlers"
	"meetbridge/routes"
	"meetbridge/services/auth"
	"meetbridge/services/calendar"
	"meetbridge/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// services.
	broker := auth.NewCredentialBroker(auth.ServiceCredential{
		ClientEmail: config.AppConfig.GoogleClientEmail,
		PrivateKey:  config.AppConfig.GooglePrivateKey,
		ProjectID:   config.AppConfig.GoogleProjectID,
	}, config.AppConfig.GoogleTokenURI, logger)

	schedulingService := &calendar.DefaultSchedulingService{
		Broker:     broker,
		Events:     calendar.GoogleEventsClient{},
		CalendarID: config.AppConfig.CalendarID,
		Logger:     logger,
	}
	schedulingHandler := handlers.NewSchedulingHandler(schedulingService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AvailableSlotsHandler: schedulingHandler.AvailableSlotsHandler,
		CreateMeetingHandler:  schedulingHandler.CreateMeetingHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
