package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/services"
)

// FAQHandler serves the public help entries.
type FAQHandler struct {
	faqService services.FAQService
}

// NewFAQHandler, constructor.
func NewFAQHandler(faqService services.FAQService) *FAQHandler {
	return &FAQHandler{faqService: faqService}
}

// List godoc
// GET /api/faqs
// Public. Returns a bare array ordered by display order.
func (h *FAQHandler) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.faqService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, faqs)
}

// Create godoc
// POST /api/faqs  (admin)
func (h *FAQHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	faq, err := h.faqService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, faq)
}

// Delete godoc
// DELETE /api/faqs/{id}  (admin)
func (h *FAQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "faq id is required")
		return
	}

	if err := h.faqService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
