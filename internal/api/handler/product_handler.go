package handler

import (
	"lending-api/internal/api/handler/dto"
	"lending-api/internal/domain/product"
	"log/slog"
	"net/http"
)

type ProductHandler struct {
	service product.Service
	logger  *slog.Logger
}

func NewProductHandler(s product.Service, l *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: s,
		logger:  l.With("component", "ProductHandler"),
	}
}

// ListProducts handles GET /products
// @Summary List catalog products
// @Tags Products
// @Produce json
// @Success 200 {array} dto.ProductResponse "Catalog"
// @Failure 503 {object} dto.ErrorResponse "Persistence unavailable"
// @Router /products [get]
// @Security BearerAuth
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list products", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		resp[i] = dto.NewProductResponse(p)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /products/{productID}
// @Summary Retrieve a catalog product
// @Tags Products
// @Produce json
// @Param productID path int true "Product ID" Minimum(1)
// @Success 200 {object} dto.ProductResponse "Product"
// @Failure 400 {object} dto.ErrorResponse "Invalid product ID"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Router /products/{productID} [get]
// @Security BearerAuth
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := getIDFromURL(r, "productID")
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get product", slog.Int64("productID", productID), slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductResponse(p))
}
