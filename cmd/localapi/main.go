package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/ibeloyar/orderfuncs/internal/app"
	"github.com/ibeloyar/orderfuncs/internal/config"
	"github.com/ibeloyar/orderfuncs/pgk/logger"
	"github.com/joho/godotenv"
)

func main() {
	lg, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		lg.Fatal(err)
	}

	cfg, err := config.ReadLocal()
	if err != nil {
		lg.Fatal(err)
	}

	if err := app.RunLocal(cfg, lg); err != nil {
		lg.Fatal(err)
	}
}
