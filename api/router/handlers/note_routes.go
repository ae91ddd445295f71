package handlers

import "github.com/go-chi/chi/v5"

func RegisterNoteRoutes(r chi.Router) {
	r.Get("/notes", GetNoteHandler)
	r.Post("/notes", SaveNoteHandler)
}
