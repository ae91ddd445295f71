package handlers

import (
	"net/http"

	"rvsalt/core"
	"rvsalt/models"
)

// ListDatastoresHandler handles GET requests for the datastore list joined
// with the physical storage identity from the multipath sheet.
func ListDatastoresHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.DatastoreFilters{
		Source:           q.Get("source"),
		FilterSearchText: q.Get("search"),
		SortBy:           q.Get("sort_by"),
		SortOrder:        q.Get("sort_order"),
	}

	rows := core.BuildDatastoreList(
		loadSheet("vDatastore", filters.Source),
		loadSheet("vMultiPath", filters.Source),
		filters,
	)
	writeJSON(w, http.StatusOK, rows)
}
