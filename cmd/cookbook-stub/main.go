// Command cookbook-stub runs an in-memory stand-in for the remote recipe
// service, for local development of the cookbook CLI.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cookbook/domain/recipe"
	"cookbook/interfaces/rest"
)

func main() {
	addr := os.Getenv("COOKBOOK_STUB_ADDR")
	if addr == "" {
		addr = ":8990"
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	server := rest.NewServer(logger)
	server.Seed(recipe.Remote{
		Author:   "chefpao",
		Title:    "Pizza Carbonara",
		Category: "Main course",
		Portions: "4",
		Ingredients: []recipe.Ingredient{
			{Name: "Pizza dough", Quantity: "500", Unit: "g"},
			{Name: "Guanciale", Quantity: "150", Unit: "g"},
		},
		StepsList: []recipe.Step{
			{Description: "Stretch the dough."},
			{Description: "Top and bake at full heat."},
		},
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting stub recipe service", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down stub recipe service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	logger.Sync()
}
