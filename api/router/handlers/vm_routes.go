package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterVMRoutes(r chi.Router) {
	r.Get("/vms", ListVMsHandler)

	r.Get("/vm/{vmName}", func(w http.ResponseWriter, req *http.Request) {
		vmName := chi.URLParam(req, "vmName")
		if vmName == "" {
			writeError(w, http.StatusBadRequest, "Missing VM name")
			return
		}
		GetVMDetailHandler(w, req, vmName)
	})
}
