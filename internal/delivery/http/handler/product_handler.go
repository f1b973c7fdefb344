package handler

import (
	"net/http"

	"github.com/MohdOwais22/subaku-backend/internal/middleware"
	productUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/product"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service *productUsecase.Service
}

func NewProductHandler(service *productUsecase.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.ListProducts)
	router.GET("/product/:id", h.GetProduct)
	router.GET("/reviews", h.ListReviews)
}

func (h *ProductHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	router.PUT("/review", h.UpsertReview)
	router.DELETE("/reviews", h.DeleteReview)
}

func (h *ProductHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.ListAdminProducts)
	router.POST("/product/new", h.CreateProduct)
	router.PUT("/product/:id", h.UpdateProduct)
	router.DELETE("/product/:id", h.DeleteProduct)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query productUsecase.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, appErrors.Validation("Invalid query parameters", err))
		return
	}

	result, err := h.service.ListPublic(c.Request.Context(), &query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"products":              result.Products,
		"productsCount":         result.ProductsCount,
		"resultPerPage":         result.ResultPerPage,
		"filteredProductsCount": result.FilteredProductsCount,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"product": productUsecase.ToProductResponse(product)})
}

func (h *ProductHandler) ListAdminProducts(c *gin.Context) {
	products, err := h.service.ListAdmin(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"products": productUsecase.ToProductResponses(products)})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productUsecase.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	product, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, gin.H{"product": productUsecase.ToProductResponse(product)})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req productUsecase.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	product, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"product": productUsecase.ToProductResponse(product)})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) UpsertReview(c *gin.Context) {
	var req productUsecase.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	reviewer := productUsecase.Reviewer{
		UserID: middleware.GetUserID(c),
		Name:   middleware.GetUserName(c),
	}
	if err := h.service.UpsertReview(c.Request.Context(), reviewer, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, nil)
}

func (h *ProductHandler) ListReviews(c *gin.Context) {
	reviews, err := h.service.ListReviews(c.Request.Context(), c.Query("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"reviews": reviews})
}

func (h *ProductHandler) DeleteReview(c *gin.Context) {
	err := h.service.DeleteReview(c.Request.Context(), c.Query("productId"), c.Query("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, nil)
}
