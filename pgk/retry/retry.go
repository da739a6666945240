package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

type Config struct {
	MaxRetries int           // Максимум повторов (по умолчанию 3)
	BaseDelay  time.Duration // Базовая задержка (по умолчанию 100ms)
	MaxDelay   time.Duration // Максимальная задержка (по умолчанию 5s)
	MaxJitter  time.Duration // Максимальный jitter (по умолчанию 100ms)
}

type Retrier struct {
	config Config
}

func New(config Config) *Retrier {
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.BaseDelay == 0 {
		config.BaseDelay = 100 * time.Millisecond
	}
	if config.MaxDelay == 0 {
		config.MaxDelay = 5 * time.Second
	}
	if config.MaxJitter == 0 {
		config.MaxJitter = 100 * time.Millisecond
	}

	return &Retrier{config: config}
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// Retryable помечает ошибку как повторяемую
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

func IsRetryable(err error) bool {
	var r *retryableError
	return errors.As(err, &r)
}

// Do вызывает fn, пока она возвращает повторяемую ошибку и не исчерпаны попытки
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn(ctx)
		if err == nil || !IsRetryable(err) {
			return err
		}

		// Последняя попытка - возвращаем ошибку
		if attempt == r.config.MaxRetries {
			return fmt.Errorf("last attempt failed: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffDelay(attempt)):
		}
	}
}

// backoffDelay вычисляет задержку с экспоненциальным ростом и jitter
func (r *Retrier) backoffDelay(attempt int) time.Duration {
	backoff := time.Duration(1<<uint(attempt)) * r.config.BaseDelay
	if backoff > r.config.MaxDelay {
		backoff = r.config.MaxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(r.config.MaxJitter)))
	return backoff + jitter
}
