package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterHostRoutes(r chi.Router) {
	r.Get("/hosts-clusters", HostsClustersHandler)
	r.Get("/inventory", InventoryHandler)

	r.Get("/host-hardware/{hostName}", func(w http.ResponseWriter, req *http.Request) {
		hostName := chi.URLParam(req, "hostName")
		if hostName == "" {
			writeError(w, http.StatusBadRequest, "Missing host name")
			return
		}
		GetHostHardwareHandler(w, req, hostName)
	})
}
