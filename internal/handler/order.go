package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bjornanger/webshop/internal/domain/order"
)

// orderRequest is the create/update payload: a customer reference and the
// requested lines. Embedded customer or product state beyond the ids is
// never accepted; the service resolves everything from the store.
type orderRequest struct {
	CustomerID int64              `json:"customer_id" binding:"required,gt=0"`
	Lines      []orderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type orderLineRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type orderResponse struct {
	ID         int64               `json:"id"`
	CustomerID int64               `json:"customer_id"`
	Lines      []orderLineResponse `json:"lines"`
	Quantity   int                 `json:"quantity"`
	Total      float64             `json:"total"`
	CreatedAt  time.Time           `json:"created_at"`
}

type orderLineResponse struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (h *Handler) createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.Place(c.Request.Context(), toPlaceRequest(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*o))
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*o))
}

func (h *Handler) updateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.Replace(c.Request.Context(), id, toPlaceRequest(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*o))
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toPlaceRequest(req orderRequest) order.PlaceRequest {
	lines := make([]order.LineRequest, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = order.LineRequest{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return order.PlaceRequest{CustomerID: req.CustomerID, Lines: lines}
}

func toOrderResponse(o order.Order) orderResponse {
	lines := make([]orderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = orderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.InexactFloat64(),
		}
	}
	return orderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Lines:      lines,
		Quantity:   o.Quantity,
		Total:      o.Total.InexactFloat64(),
		CreatedAt:  o.CreatedAt,
	}
}
