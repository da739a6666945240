package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handlers interface {
	CreateOrders(w http.ResponseWriter, r *http.Request)
	SaveResult(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

func InitRoutes(r *chi.Mux, handlers Handlers) *chi.Mux {
	r.Post("/orders", handlers.CreateOrders)
	r.Post("/results", handlers.SaveResult)

	r.Get("/ping", handlers.Ping)

	return r
}
