package api

import (
	"net/http" // HTTP status codes

	"billing_system/internal/billing" // Customer service
	"billing_system/internal/domain"  // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateCustomerRequest represents a new customer record
type CreateCustomerRequest struct {
	Name      string   `json:"name" binding:"required"`      // Customer name
	Status    bool     `json:"status"`                       // Paid flag
	BillPrice *float64 `json:"billPrice" binding:"required"` // Bill price, must be present
}

// UpdateCustomerRequest fully replaces a customer record
type UpdateCustomerRequest struct {
	ID        uint     `json:"id" binding:"required"`        // Customer ID
	Name      string   `json:"name" binding:"required"`      // Customer name
	Status    bool     `json:"status"`                       // Paid flag
	BillPrice *float64 `json:"billPrice" binding:"required"` // Bill price, must be present
}

// DeleteCustomerRequest identifies the record to delete
type DeleteCustomerRequest struct {
	ID uint `json:"id" binding:"required"` // Customer ID
}

// ListCustomersHandler returns all customers, raw or in display shape with ?view=display
func ListCustomersHandler(svc *billing.Service, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := svc.List(c.Request.Context()) // Cached read-through list
		if err != nil {
			respondError(c, "message", err)
			return
		}
		// Display shape used by the dashboard table
		if c.Query("view") == "display" {
			views := make([]domain.CustomerView, 0, len(customers))
			for _, cust := range customers {
				views = append(views, cust.View(currency))
			}
			c.JSON(http.StatusOK, views)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

// CreateCustomerHandler adds a customer record
func CreateCustomerHandler(svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCustomerRequest // Bind JSON request to struct
		if err := bindJSONObject(c, &req); err != nil {
			respondError(c, "message", err)
			return
		}
		// Validate and persist
		cust, err := svc.Create(c.Request.Context(), req.Name, req.Status, req.BillPrice)
		if err != nil {
			respondError(c, "message", err)
			return
		}
		c.JSON(http.StatusCreated, cust)
	}
}

// UpdateCustomerHandler replaces name, status and price of an existing record
func UpdateCustomerHandler(svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCustomerRequest // Bind JSON request to struct
		if err := bindJSONObject(c, &req); err != nil {
			respondError(c, "message", err)
			return
		}
		// Missing ids surface as 404
		cust, err := svc.Update(c.Request.Context(), req.ID, req.Name, req.Status, req.BillPrice)
		if err != nil {
			respondError(c, "message", err)
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

// DeleteCustomerHandler removes a customer record
func DeleteCustomerHandler(svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteCustomerRequest // Bind JSON request to struct
		if err := bindJSONObject(c, &req); err != nil {
			respondError(c, "message", err)
			return
		}
		if err := svc.Delete(c.Request.Context(), req.ID); err != nil {
			respondError(c, "message", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
	}
}
