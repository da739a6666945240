package model

const (
	// TTLAttribute - атрибут, по которому хранилище удаляет просроченные записи
	TTLAttribute = "ttl"

	StatusAttribute = "status"
	StatusRejected  = "rejected"
)

// IngestRequest - событие API Gateway для POST /orders.
// Body == nil, если ключ body отсутствует или равен null.
type IngestRequest struct {
	HTTPMethod string `json:"httpMethod"`
	Path       string `json:"path"`
	Body       *Value `json:"body,omitempty"`
}

// OrderRecord - одна запись заказа (JSON-объект)
type OrderRecord = Value

// ErrorBody - тело ответа 400
type ErrorBody struct {
	ErrorMessage string `json:"errorMessage"`
}
