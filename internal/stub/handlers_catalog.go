package stub

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// CatalogHandler serves the public phone, accessory and brand routes.
type CatalogHandler struct {
	store *Store
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(store *Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

func parsePrice(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// HandleListPhones handles GET /phones/
func (h *CatalogHandler) HandleListPhones(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	brand, _ := strconv.Atoi(q.Get("brand"))
	phones := h.store.listPhones(q.Get("search"), brand, parsePrice(q.Get("min_price")), parsePrice(q.Get("max_price")))
	writeJSON(w, http.StatusOK, phones)
}

// HandlePhoneDetail handles GET /phones/{id}/
func (h *CatalogHandler) HandlePhoneDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	phone, ok := h.store.phoneByID(id)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, phone)
}

// HandleListAccessories handles GET /accessories/
func (h *CatalogHandler) HandleListAccessories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accessories := h.store.listAccessories(q.Get("search"), q.Get("category"), parsePrice(q.Get("min_price")), parsePrice(q.Get("max_price")))
	writeJSON(w, http.StatusOK, accessories)
}

// HandleAccessoryDetail handles GET /accessories/{id}/
func (h *CatalogHandler) HandleAccessoryDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	accessory, ok := h.store.accessoryByID(id)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, accessory)
}

// HandleListBrands handles GET /phones/brands/
func (h *CatalogHandler) HandleListBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.listBrands())
}
