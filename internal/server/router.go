// Package server wires routes and middleware into the root http.Handler.
package server

import (
	"net/http"

	"github.com/diewo77/invoice-api/httpx"
	"github.com/diewo77/invoice-api/internal/handlers"
	"github.com/diewo77/invoice-api/internal/services"
	"github.com/diewo77/invoice-api/internal/store"
	"gorm.io/gorm"
)

// New constructs the root handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check; detailed errors stay out of the body.
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	// Invoice endpoints. The trailing {$} pins each pattern to the exact
	// slash-terminated path; the mux answers 405 with an Allow header for
	// known paths hit with other methods.
	ih := handlers.NewInvoiceHandler(services.NewInvoiceService(store.New(db)))
	mux.HandleFunc("GET /invoices/{$}", ih.List)
	mux.HandleFunc("POST /invoices/{$}", ih.Create)
	mux.HandleFunc("GET /invoices/{id}/{$}", ih.Get)
	mux.HandleFunc("PUT /invoices/{id}/{$}", ih.Update)
	mux.HandleFunc("PATCH /invoices/{id}/{$}", ih.Update)
	mux.HandleFunc("DELETE /invoices/{id}/{$}", ih.Delete)

	return withRequestID(withRecover(withLogging(mux)))
}
