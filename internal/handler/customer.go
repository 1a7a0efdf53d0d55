package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bjornanger/webshop/internal/domain/customer"
)

// customerRequest is the create/update payload. Password is stored as given;
// there is no credential handling in front of it.
type customerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
}

// customerResponse never echoes the password back.
type customerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	cust := customer.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if err := h.customers.Create(c.Request.Context(), &cust); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(cust))
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.customers.ListAll(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	out := make([]customerResponse, len(customers))
	for i, cust := range customers {
		out[i] = toCustomerResponse(cust)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cust, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*cust))
}

func (h *Handler) updateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	cust, err := h.customers.Update(c.Request.Context(), id, customer.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*cust))
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toCustomerResponse(c customer.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
	}
}
