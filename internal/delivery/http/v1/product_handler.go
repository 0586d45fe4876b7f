package v1

import (
	"net/http"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/utils"
)

type ProductHandler struct {
	productUC domain.ProductUsecase
}

func NewProductHandler(uc domain.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUC: uc}
}

// Register mounts the product routes on mux.
func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /products", h.CreateProduct)
	mux.HandleFunc("GET /products", h.ListProducts)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	mux.HandleFunc("PUT /products/{id}", h.UpdateProduct)
	mux.HandleFunc("DELETE /products/{id}", h.DeleteProduct)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	input, err := decodeProductInput(r.Body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	product, err := h.productUC.CreateProduct(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: product})
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := domain.SearchQuery{
		Page:    utils.ParseInt(q.Get("page"), domain.DefaultPage),
		PerPage: utils.ParseInt(q.Get("per_page"), domain.DefaultPerPage),
		Sort:    q.Get("sort"),
		SortDir: domain.ParseSortDir(q.Get("sort_dir")),
		Filter:  q.Get("filter"),
	}

	out, err := h.productUC.ListProducts(r.Context(), query)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    out.Items,
		Meta:    out.Pagination,
	})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.productUC.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: product})
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	input, err := decodeProductInput(r.Body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	product, err := h.productUC.UpdateProduct(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: product})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.productUC.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
