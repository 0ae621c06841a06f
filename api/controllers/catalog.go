package controllers

import (
	"net/http"

	"github.com/raisul516/ironi-backend/api/responses"
	"github.com/raisul516/ironi-backend/internal/pricing"
)

// Catalog serves the fixed service and garment price lists.
func Catalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, items := pricing.Catalog()
		responses.WriteSuccess(w, map[string]any{
			"services": services,
			"items":    items,
		})
	}
}
