package handlers

import "github.com/go-chi/chi/v5"

func RegisterDatastoreRoutes(r chi.Router) {
	r.Get("/datastores", ListDatastoresHandler)
}
