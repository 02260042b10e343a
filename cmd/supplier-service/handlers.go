package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sup "github.com/mvillares/tienda-ms/internal/supplier"
)

// listSuppliersHandler godoc
// @Summary List suppliers
// @Produce json
// @Success 200 {array} supplier.Supplier
// @Router /suppliers [get]
func listSuppliersHandler(repo sup.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list error"})
			return
		}
		if items == nil {
			items = []sup.Supplier{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// getSupplierHandler godoc
// @Summary Get a supplier by id
// @Produce json
// @Param id path string true "supplier id"
// @Success 200 {object} supplier.Supplier
// @Router /suppliers/{id} [get]
func getSupplierHandler(repo sup.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// createSupplierHandler godoc
// @Summary Create a supplier
// @Accept json
// @Produce json
// @Param supplier body supplier.CreateSupplierRequest true "supplier"
// @Success 201 {object} supplier.Supplier
// @Router /suppliers [post]
func createSupplierHandler(repo sup.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sup.CreateSupplierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.Name == "" || req.RUC == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and ruc are required"})
			return
		}
		s := &sup.Supplier{
			ID:      uuid.NewString(),
			Name:    req.Name,
			RUC:     req.RUC,
			Address: req.Address,
			Phone:   req.Phone,
			Email:   req.Email,
		}
		if err := repo.Create(c.Request.Context(), s); err != nil {
			if err == sup.ErrAlreadyExist {
				c.JSON(http.StatusConflict, gin.H{"error": "supplier exists (ruc)"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create error"})
			return
		}
		c.JSON(http.StatusCreated, s)
	}
}

// updateSupplierHandler godoc
// @Summary Update a supplier
// @Accept json
// @Produce json
// @Param id path string true "supplier id"
// @Param supplier body supplier.UpdateSupplierRequest true "supplier"
// @Success 200 {object} supplier.Supplier
// @Router /suppliers/{id} [put]
func updateSupplierHandler(repo sup.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req sup.UpdateSupplierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		s := &sup.Supplier{
			ID:      id,
			Name:    req.Name,
			RUC:     req.RUC,
			Address: req.Address,
			Phone:   req.Phone,
			Email:   req.Email,
		}
		if err := repo.Update(c.Request.Context(), s); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update error"})
			return
		}
		out, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// deleteSupplierHandler godoc
// @Summary Delete a supplier
// @Produce json
// @Param id path string true "supplier id"
// @Success 204
// @Router /suppliers/{id} [delete]
func deleteSupplierHandler(repo sup.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete error"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
