package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Bjornanger/webshop/internal/domain/product"
)

// productRequest is the create/update payload.
type productRequest struct {
	Name  string  `json:"name" binding:"required,min=3"`
	Price float64 `json:"price" binding:"gte=0"`
	Stock int     `json:"stock" binding:"gte=0"`
}

// productResponse is the read view. Price carries the effective (discounted)
// price; ListPrice is the persisted price, which discounting never touches.
type productResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ListPrice float64 `json:"list_price"`
	Stock     int     `json:"stock"`
	Promotion string  `json:"promotion,omitempty"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	p := product.Product{
		Name:  req.Name,
		Price: decimal.NewFromFloat(req.Price),
		Stock: req.Stock,
	}
	if err := h.catalog.Create(c.Request.Context(), &p); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		ListPrice: p.Price.InexactFloat64(),
		Stock:     p.Stock,
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.catalog.Update(c.Request.Context(), id, req.Name, decimal.NewFromFloat(req.Price), req.Stock)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		ListPrice: p.Price.InexactFloat64(),
		Stock:     p.Stock,
	})
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toProductResponse(p product.PricedProduct) productResponse {
	promotion := p.Promotion
	if promotion == "none" {
		promotion = ""
	}
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.EffectivePrice.InexactFloat64(),
		ListPrice: p.Price.InexactFloat64(),
		Stock:     p.Stock,
		Promotion: promotion,
	}
}
