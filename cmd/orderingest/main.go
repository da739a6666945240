package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/ibeloyar/orderfuncs/internal/app"
	"github.com/ibeloyar/orderfuncs/internal/config"
	"github.com/ibeloyar/orderfuncs/pgk/logger"
)

func main() {
	lg, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	cfg, err := config.ReadIngest()
	if err != nil {
		lg.Fatal(err)
	}

	orders, err := app.NewIngest(context.Background(), cfg, lg)
	if err != nil {
		lg.Fatal(err)
	}

	lambda.Start(orders.Handle)
}
