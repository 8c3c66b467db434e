package main

import (
	"context"

	"tattoo-studio-api/internal/config"
	"tattoo-studio-api/pkg/lambda"
	"tattoo-studio-api/pkg/server"
)

var container *server.Container

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(context.Background(), cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	lambda.Start(container.Functions.Bookings)
}
