package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	prod "github.com/mvillares/tienda-ms/internal/catalog"
)

// listProductsHandler godoc
// @Summary List products
// @Produce json
// @Param q query string false "search in name, description, code"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} catalog.ListResponse
// @Router /products [get]
func listProductsHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		q := prod.Query{Q: c.Query("q"), Limit: limit, Offset: offset}

		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, prod.HTTPError{Error: "list error"})
			return
		}
		if items == nil {
			items = []prod.Product{}
		}
		c.JSON(http.StatusOK, prod.ListResponse{Q: q.Q, Limit: limit, Offset: offset, Items: items})
	}
}

// getProductHandler godoc
// @Summary Get a product by id
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} catalog.Product
// @Failure 404 {object} catalog.HTTPError
// @Router /products/{id} [get]
func getProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, prod.HTTPError{Error: "not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary Create a product
// @Accept json
// @Produce json
// @Param product body catalog.CreateProductRequest true "product"
// @Success 201 {object} catalog.Product
// @Failure 400 {object} catalog.HTTPError
// @Router /products [post]
func createProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req prod.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, prod.HTTPError{Error: "invalid json"})
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil || req.Name == "" || req.Stock < 0 {
			c.JSON(http.StatusBadRequest, prod.HTTPError{Error: "name, numeric price and non-negative stock are required"})
			return
		}
		p := &prod.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Code:        req.Code,
			Price:       price,
			Stock:       req.Stock,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, prod.HTTPError{Error: "create error"})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// updateProductHandler godoc
// @Summary Update a product
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param product body catalog.UpdateProductRequest true "product"
// @Success 200 {object} catalog.Product
// @Failure 404 {object} catalog.HTTPError
// @Router /products/{id} [put]
func updateProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := repo.GetByID(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusNotFound, prod.HTTPError{Error: "not found"})
			return
		}
		var req prod.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, prod.HTTPError{Error: "invalid json"})
			return
		}
		p := &prod.Product{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			Code:        req.Code,
			Stock:       req.Stock,
		}
		updatePrice := false
		if req.Price != "" {
			price, err := decimal.NewFromString(req.Price)
			if err != nil {
				c.JSON(http.StatusBadRequest, prod.HTTPError{Error: "invalid price"})
				return
			}
			p.Price = price
			updatePrice = true
		}
		if err := repo.Update(c.Request.Context(), p, updatePrice); err != nil {
			c.JSON(http.StatusInternalServerError, prod.HTTPError{Error: "update error"})
			return
		}
		out, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, prod.HTTPError{Error: "refetch error"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// deleteProductHandler godoc
// @Summary Delete a product
// @Produce json
// @Param id path string true "product id"
// @Success 204
// @Failure 404 {object} catalog.HTTPError
// @Router /products/{id} [delete]
func deleteProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, prod.HTTPError{Error: "delete error"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, prod.HTTPError{Error: "not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func stockQty(c *gin.Context) (int, bool) {
	qty, err := strconv.Atoi(c.Query("stock"))
	if err != nil || qty <= 0 {
		c.JSON(http.StatusBadRequest, prod.HTTPError{Error: "stock must be a positive integer"})
		return 0, false
	}
	return qty, true
}

// reduceStockHandler godoc
// @Summary Reduce stock, refusing to go negative
// @Produce json
// @Param id path string true "product id"
// @Param stock query int true "quantity to subtract"
// @Success 200 {object} catalog.Product
// @Failure 404 {object} catalog.HTTPError
// @Failure 409 {object} catalog.HTTPError
// @Router /products/{id}/reduce-stock [post]
func reduceStockHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		qty, ok := stockQty(c)
		if !ok {
			return
		}
		p, err := repo.ReduceStock(c.Request.Context(), c.Param("id"), qty)
		if err != nil {
			switch {
			case errors.Is(err, prod.ErrNotFound):
				c.JSON(http.StatusNotFound, prod.HTTPError{Error: "not found"})
			case errors.Is(err, prod.ErrInsufficientStock):
				c.JSON(http.StatusConflict, prod.HTTPError{Error: "insufficient stock"})
			default:
				c.JSON(http.StatusInternalServerError, prod.HTTPError{Error: "stock error"})
			}
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// increaseStockHandler godoc
// @Summary Increase stock
// @Produce json
// @Param id path string true "product id"
// @Param stock query int true "quantity to add"
// @Success 200 {object} catalog.Product
// @Failure 404 {object} catalog.HTTPError
// @Router /products/{id}/increase-stock [post]
func increaseStockHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		qty, ok := stockQty(c)
		if !ok {
			return
		}
		p, err := repo.IncreaseStock(c.Request.Context(), c.Param("id"), qty)
		if err != nil {
			if errors.Is(err, prod.ErrNotFound) {
				c.JSON(http.StatusNotFound, prod.HTTPError{Error: "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, prod.HTTPError{Error: "stock error"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
