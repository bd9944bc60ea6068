package handler

import (
	"net/http"

	"github.com/osse101/Farmstead_Go/internal/catalog"
)

// HandleGetCatalog returns every crop, animal, product, upgrade and good definition
// GET /api/v1/catalog
func HandleGetCatalog(cat *catalog.Catalog) http.HandlerFunc {
	listing := cat.Listing()
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, listing)
	}
}
