// Package handler exposes the HTTP controllers for products, customers, and
// orders. Handlers stay thin: they bind and validate payloads, delegate to
// the domain services, and map domain errors to status codes in one place.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/Bjornanger/webshop/internal/domain/customer"
	"github.com/Bjornanger/webshop/internal/domain/order"
	"github.com/Bjornanger/webshop/internal/domain/product"
)

// Handler carries the domain services behind the HTTP surface.
type Handler struct {
	catalog   *product.CatalogService
	customers *customer.Service
	orders    *order.AssemblyService
}

// New constructs a Handler with the required domain services.
func New(
	catalog *product.CatalogService,
	customers *customer.Service,
	orders *order.AssemblyService,
) *Handler {
	return &Handler{
		catalog:   catalog,
		customers: customers,
		orders:    orders,
	}
}

// Register mounts all API routes on the given router.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")

	api.POST("/product", h.createProduct)
	api.GET("/product", h.listProducts)
	api.GET("/product/:id", h.getProduct)
	api.PUT("/product/:id", h.updateProduct)
	api.DELETE("/product/:id", h.deleteProduct)

	api.POST("/order", h.createOrder)
	api.GET("/order", h.listOrders)
	api.GET("/order/:id", h.getOrder)
	api.PUT("/order/:id", h.updateOrder)
	api.DELETE("/order/:id", h.deleteOrder)

	api.POST("/customer", h.createCustomer)
	api.GET("/customer", h.listCustomers)
	api.GET("/customer/:id", h.getCustomer)
	api.PUT("/customer/:id", h.updateCustomer)
	api.DELETE("/customer/:id", h.deleteCustomer)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Code: status, Message: message})
}

// respondDomainError maps domain errors to status codes. Business-rule
// failures become client responses; anything else is logged and reported as
// a generic server error, never leaking the cause.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, order.ErrEmptyLines):
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var cnfErr *order.CustomerNotFoundError
	if errors.As(err, &cnfErr) {
		respondError(c, http.StatusNotFound, cnfErr.Error())
		return
	}
	var pnfErr *order.ProductNotFoundError
	if errors.As(err, &pnfErr) {
		respondError(c, http.StatusNotFound, pnfErr.Error())
		return
	}
	var iqErr *order.InvalidQuantityError
	if errors.As(err, &iqErr) {
		respondError(c, http.StatusBadRequest, iqErr.Error())
		return
	}

	zctx.From(c.Request.Context()).Error("Request failed", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "internal server error")
}

// parseID reads the :id path parameter. On failure it writes a 400 response
// and reports ok=false.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
