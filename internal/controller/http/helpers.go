package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/ibeloyar/orderfuncs/internal/model"
	"go.uber.org/zap"
)

// readRawBody - читает тело как строку, как его передает API Gateway.
// Пустое тело - nil.
func readRawBody(r *http.Request) (*model.Value, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	defer r.Body.Close()

	if len(bodyBytes) == 0 {
		return nil, nil
	}

	body := model.String(string(bodyBytes))
	return &body, nil
}

// readJSON - читает и разбирает JSON-тело запроса
func readJSON(r *http.Request) (model.Value, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return model.Value{}, fmt.Errorf("failed to read request body: %w", err)
	}
	defer r.Body.Close()

	body, err := model.ParseJSON(bodyBytes)
	if err != nil {
		return model.Value{}, fmt.Errorf("failed to read request body application/json: %w", err)
	}

	return body, nil
}

// writeJSON - записывает ответ в формате JSON и добавляет заголовок Content-Type: application/json
func writeJSON(w http.ResponseWriter, lg *zap.SugaredLogger, data interface{}, statusCode int) {
	response, err := json.Marshal(data)
	if err != nil {
		lg.Errorf("failed to encode response body: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}

func writeError(w http.ResponseWriter, lg *zap.SugaredLogger, message string, statusCode int) {
	writeJSON(w, lg, model.ErrorBody{ErrorMessage: message}, statusCode)
}

// writeProxyResponse - переносит ответ в формате API Gateway в HTTP-ответ
func writeProxyResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	for key, values := range resp.MultiValueHeaders {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	w.WriteHeader(resp.StatusCode)

	if resp.Body != "" {
		io.WriteString(w, resp.Body)
	}
}
