package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"veeloway/internal/service"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CustomerRequest is the HTTP request body for creating or updating a customer.
type CustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
	Address  string `json:"address"`
	Status   string `json:"status,omitempty"`
}

// Register handles POST /v1/customers
func (h *CustomerHandler) Register(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	customer, err := h.customerService.Register(c.Request.Context(), service.CustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
		Status:   req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, customer)
}

// Get handles GET /v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, customer)
}

// GetAll handles GET /v1/customers. Supports ?q= name/email search and
// ?status= filtering.
func (h *CustomerHandler) GetAll(c *gin.Context) {
	customers, err := h.customerService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	q := strings.ToLower(c.Query("q"))
	status := c.Query("status")

	filtered := customers[:0]
	for _, customer := range customers {
		if status != "" && string(customer.Status) != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(customer.Name), q) &&
			!strings.Contains(strings.ToLower(customer.Email), q) {
			continue
		}
		filtered = append(filtered, customer)
	}

	c.JSON(http.StatusOK, filtered)
}

// Update handles PUT /v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), c.Param("id"), service.CustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
		Status:   req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, customer)
}

// Delete handles DELETE /v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
