package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/ibeloyar/orderfuncs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	service "github.com/ibeloyar/orderfuncs/internal/controller/handler/mocks"
)

func newTestController(t *testing.T) (*Controller, *service.MockIngester, *service.MockResultArchiver) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	orders := service.NewMockIngester(ctrl)
	results := service.NewMockResultArchiver(ctrl)

	return New(orders, results, nil), orders, results
}

func TestController_CreateOrders_Success(t *testing.T) {
	controller, orders, _ := newTestController(t)

	var got model.IngestRequest
	orders.EXPECT().
		Handle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req model.IngestRequest) (events.APIGatewayProxyResponse, error) {
			got = req
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusCreated,
				Headers:    map[string]string{"Content-Type": "application/json"},
			}, nil
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`[{"id":1,"price":9.99}]`))
	w := httptest.NewRecorder()

	controller.CreateOrders(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Body.String())

	assert.Equal(t, http.MethodPost, got.HTTPMethod)
	assert.Equal(t, "/orders", got.Path)
	require.NotNil(t, got.Body)
	text, _ := got.Body.AsString()
	assert.Equal(t, `[{"id":1,"price":9.99}]`, text)
}

func TestController_CreateOrders_EmptyBody(t *testing.T) {
	controller, orders, _ := newTestController(t)

	orders.EXPECT().
		Handle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req model.IngestRequest) (events.APIGatewayProxyResponse, error) {
			assert.Nil(t, req.Body)
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"errorMessage":"Request body is empty"}`,
			}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	w := httptest.NewRecorder()

	controller.CreateOrders(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errorMessage":"Request body is empty"}`, w.Body.String())
}

func TestController_CreateOrders_ServiceError(t *testing.T) {
	controller, orders, _ := newTestController(t)

	orders.EXPECT().
		Handle(gomock.Any(), gomock.Any()).
		Return(events.APIGatewayProxyResponse{}, errors.New("ResourceNotFoundException"))

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`[]`))
	w := httptest.NewRecorder()

	controller.CreateOrders(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"errorMessage":"ResourceNotFoundException"}`, w.Body.String())
}

func TestController_SaveResult(t *testing.T) {
	tests := []struct {
		name       string
		archiveErr error
		wantCode   int
	}{
		{name: "archived", archiveErr: nil, wantCode: http.StatusNoContent},
		{name: "rejected", archiveErr: model.ErrRejectedOrder, wantCode: http.StatusUnprocessableEntity},
		{name: "missing status", archiveErr: model.ErrMissingStatus, wantCode: http.StatusInternalServerError},
		{name: "storage error", archiveErr: errors.New("AccessDenied"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _, results := newTestController(t)

			results.EXPECT().
				Archive(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, event model.Value) error {
					status, ok := event.Get("status")
					assert.True(t, ok)
					assert.True(t, status.Equal(model.String("fulfilled")))
					return tt.archiveErr
				}).
				Times(1)

			req := httptest.NewRequest(http.MethodPost, "/results", strings.NewReader(`{"status":"fulfilled","id":1}`))
			w := httptest.NewRecorder()

			controller.SaveResult(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.archiveErr != nil {
				assert.JSONEq(t, `{"errorMessage":"`+tt.archiveErr.Error()+`"}`, w.Body.String())
			}
		})
	}
}

func TestController_SaveResult_InvalidJSON(t *testing.T) {
	controller, _, results := newTestController(t)

	results.EXPECT().Archive(gomock.Any(), gomock.Any()).Times(0)

	req := httptest.NewRequest(http.MethodPost, "/results", strings.NewReader(`{"status":`))
	w := httptest.NewRecorder()

	controller.SaveResult(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestInitRoutes(t *testing.T) {
	controller, orders, results := newTestController(t)

	orders.EXPECT().
		Handle(gomock.Any(), gomock.Any()).
		Return(events.APIGatewayProxyResponse{StatusCode: http.StatusCreated}, nil)
	results.EXPECT().
		Archive(gomock.Any(), gomock.Any()).
		Return(nil)

	router := InitRoutes(chi.NewRouter(), controller)

	tests := []struct {
		method   string
		path     string
		body     string
		wantCode int
	}{
		{method: http.MethodGet, path: "/ping", wantCode: http.StatusOK},
		{method: http.MethodPost, path: "/orders", body: `[]`, wantCode: http.StatusCreated},
		{method: http.MethodPost, path: "/results", body: `{"status":"ok"}`, wantCode: http.StatusNoContent},
		{method: http.MethodGet, path: "/orders", wantCode: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/unknown", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
