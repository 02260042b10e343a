package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ord "github.com/mvillares/tienda-ms/internal/order"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, ord.ErrNotFound),
		errors.Is(err, ord.ErrClientNotFound),
		errors.Is(err, ord.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, ord.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, ord.ErrRemoteUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusBadGateway {
		// do not leak gateway internals to the caller
		msg = "remote service unavailable"
	}
	c.JSON(code, gin.H{"error": msg})
}

// listOrdersHandler godoc
// @Summary List orders enriched with client and product data
// @Produce json
// @Success 200 {array} order.Order
// @Router /orders [get]
func listOrdersHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			abortWith(c, err)
			return
		}
		if orders == nil {
			orders = []ord.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// getOrderHandler godoc
// @Summary Get one order by id
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} order.Order
// @Failure 404 {object} catalog.HTTPError
// @Router /orders/{id} [get]
func getOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// createOrderHandler godoc
// @Summary Create an order, reserving stock at the catalog
// @Accept json
// @Produce json
// @Param order body order.CreateOrderRequest true "order"
// @Success 201 {object} order.Order
// @Failure 404 {object} catalog.HTTPError
// @Failure 409 {object} catalog.HTTPError
// @Router /orders [post]
func createOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.ClientID == "" || len(req.Details) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id and order_details are required"})
			return
		}
		for _, d := range req.Details {
			if d.ProductID == "" || d.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "every detail needs product_id and a positive quantity"})
				return
			}
		}
		o, err := svc.Create(c.Request.Context(), req.ToOrder())
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// updateOrderHandler godoc
// @Summary Update an order, replacing its details
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param order body order.UpdateOrderRequest true "order"
// @Success 200 {object} order.Order
// @Failure 404 {object} catalog.HTTPError
// @Failure 409 {object} catalog.HTTPError
// @Router /orders/{id} [put]
func updateOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.ClientID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
			return
		}
		for _, d := range req.Details {
			if d.ProductID == "" || d.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "every detail needs product_id and a positive quantity"})
				return
			}
		}
		o, err := svc.Update(c.Request.Context(), req.ToOrder(c.Param("id")))
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// deleteOrderHandler godoc
// @Summary Delete an order, restoring reserved stock first
// @Produce json
// @Param id path string true "order id"
// @Success 204
// @Failure 404 {object} catalog.HTTPError
// @Router /orders/{id} [delete]
func deleteOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			abortWith(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
