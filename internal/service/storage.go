package service

import (
	"context"

	"github.com/ibeloyar/orderfuncs/internal/model"
)

//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks

// OrderStore - табличное хранилище с пакетной записью и TTL по атрибуту ttl
type OrderStore interface {
	PutBatch(ctx context.Context, records []model.OrderRecord) error
}

// BlobStore - объектное хранилище (bucket + key)
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Bucket() string
}
