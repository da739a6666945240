package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"

	DefaultRunAddress    = ":8080"
	DefaultOrderTTL      = 24 * time.Hour
	DefaultSweepInterval = time.Minute
)

var ErrUnknownOrderStore = errors.New("unknown order store")

type AWS struct {
	Region   string `env:"AWS_REGION"`
	Endpoint string `env:"AWS_ENDPOINT_URL"`
}

// Ingest - конфигурация функции приема заказов
type Ingest struct {
	TableName   string        `env:"TABLE_NAME,required,notEmpty"`
	OrderTTL    time.Duration `env:"ORDER_TTL" envDefault:"24h"`
	OrderStore  string        `env:"ORDER_STORE" envDefault:"dynamodb"`
	DatabaseURI string        `env:"DATABASE_URI"`
	AWS         AWS
}

// Archiver - конфигурация функции архивации результатов
type Archiver struct {
	Bucket string `env:"LOG_BUCKET,required,notEmpty"`
	AWS    AWS
}

// Local - локальный HTTP-стенд, поднимающий обе функции
type Local struct {
	RunAddress    string        `env:"RUN_ADDRESS"`
	SweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"1m"`
	Ingest        Ingest
	Archiver      Archiver
}

func ReadIngest() (Ingest, error) {
	config := Ingest{}

	if err := env.Parse(&config); err != nil {
		return config, err
	}

	return config, config.validate()
}

func ReadArchiver() (Archiver, error) {
	config := Archiver{}

	if err := env.Parse(&config); err != nil {
		return config, err
	}

	return config, nil
}

// ReadLocal читает флаги и окружение; окружение имеет приоритет над флагами
func ReadLocal() (Local, error) {
	config := Local{}

	flag.StringVar(&config.RunAddress, "a", DefaultRunAddress, "Server run address")
	flag.Parse()

	if err := env.Parse(&config); err != nil {
		return config, err
	}

	return config, config.Ingest.validate()
}

func (c Ingest) validate() error {
	switch c.OrderStore {
	case StoreDynamoDB:
	case StorePostgres:
		if c.DatabaseURI == "" {
			return fmt.Errorf("DATABASE_URI is required for %s order store", StorePostgres)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOrderStore, c.OrderStore)
	}

	if c.OrderTTL <= 0 {
		return fmt.Errorf("ORDER_TTL must be positive, got %s", c.OrderTTL)
	}

	return nil
}
