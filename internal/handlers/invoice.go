// Package handlers exposes the invoice API over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/invoice-api/httpx"
	"github.com/diewo77/invoice-api/internal/services"
	"github.com/diewo77/invoice-api/internal/store"
	"github.com/diewo77/invoice-api/validation"
)

type InvoiceHandler struct {
	svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// List: GET /invoices/
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	reprs := make([]invoiceRepr, 0, len(invs))
	for i := range invs {
		reprs = append(reprs, newInvoiceRepr(&invs[i], nil))
	}
	httpx.JSON(w, http.StatusOK, reprs)
}

// Create: POST /invoices/
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	inv, entryErrs, err := h.svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, newInvoiceRepr(inv, entryErrs))
}

// Get: GET /invoices/{id}/
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	inv, err := h.svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newInvoiceRepr(inv, nil))
}

// Update handles both PUT and PATCH on /invoices/{id}/. Header fields are
// applied only when supplied, so the two methods converge on the same
// behavior.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	inv, entryErrs, err := h.svc.Update(id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newInvoiceRepr(inv, entryErrs))
}

// Delete: DELETE /invoices/{id}/
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err := h.svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.NoContent(w)
}

// idFromPath parses the {id} path segment. Non-numeric ids are treated the
// same as unknown ones.
func idFromPath(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func decodeInput(w http.ResponseWriter, r *http.Request) (services.InvoiceInput, bool) {
	var in services.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSON(w, http.StatusBadRequest, validation.FieldErrors{
			"non_field_errors": {"Invalid request body: " + err.Error()},
		})
		return in, false
	}
	return in, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		httpx.JSON(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, store.ErrInvoiceNotFound), errors.Is(err, store.ErrDetailNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
