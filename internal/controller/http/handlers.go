package http

import (
	"errors"
	"net/http"

	"github.com/ibeloyar/orderfuncs/internal/controller/handler"
	"github.com/ibeloyar/orderfuncs/internal/model"
	"go.uber.org/zap"
)

type Controller struct {
	orders  handler.Ingester
	results handler.ResultArchiver
	lg      *zap.SugaredLogger
}

func New(orders handler.Ingester, results handler.ResultArchiver, lg *zap.SugaredLogger) *Controller {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	return &Controller{
		orders:  orders,
		results: results,
		lg:      lg,
	}
}

func (c *Controller) CreateOrders(w http.ResponseWriter, r *http.Request) {
	body, err := readRawBody(r)
	if err != nil {
		c.lg.Errorf("failed to parse request body: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp, err := c.orders.Handle(r.Context(), model.IngestRequest{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
		Body:       body,
	})
	if err != nil {
		writeError(w, c.lg, err.Error(), http.StatusInternalServerError)
		return
	}

	writeProxyResponse(w, resp)
}

func (c *Controller) SaveResult(w http.ResponseWriter, r *http.Request) {
	event, err := readJSON(r)
	if err != nil {
		writeError(w, c.lg, err.Error(), http.StatusBadRequest)
		return
	}

	err = c.results.Archive(r.Context(), event)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, model.ErrRejectedOrder):
		writeError(w, c.lg, err.Error(), http.StatusUnprocessableEntity)
	default:
		writeError(w, c.lg, err.Error(), http.StatusInternalServerError)
	}
}

func (c *Controller) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
