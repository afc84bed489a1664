package delivery

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"marketplace_service/internal/domain"
	"marketplace_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const productImageField = "productImage"

type createProductForm struct {
	Name        string `form:"productName"`
	Description string `form:"productDescription"`
	Price       string `form:"productPrice"`
}

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	fileHeader, err := c.FormFile(productImageField)
	if err != nil {
		h.log.Warnf("Create product rejected, no '%s' file: %v", productImageField, err)
		ErrorResponse(c, http.StatusBadRequest, "No image file uploaded")
		return
	}

	var form createProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Errorf("Failed to bind form for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	price, err := parsePrice(form.Price)
	if err != nil {
		h.log.Warnf("Invalid product price '%s' for product '%s'", form.Price, form.Name)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product price")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Errorf("Failed to open uploaded file '%s': %v", fileHeader.Filename, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to create product")
		return
	}
	defer file.Close()

	product := domain.Product{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
	}
	createdProduct, err := h.useCase.CreateProduct(c.Request.Context(), &product, &usecase.ImageUpload{
		FieldName: productImageField,
		Filename:  fileHeader.Filename,
		Content:   file,
	})
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		if errors.Is(err, domain.ErrImageRequired) {
			ErrorResponse(c, statusCode, "No image file uploaded")
			return
		}
		ErrorResponse(c, statusCode, "Failed to create product")
		return
	}

	h.log.Infof("Product created successfully: ID %s, Name %s", createdProduct.ID, createdProduct.Name)
	c.JSON(http.StatusCreated, createdProduct)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	err := h.useCase.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to delete product ID %s: %v", id, err)
		if statusCode == http.StatusNotFound {
			ErrorResponse(c, statusCode, "Product not found")
			return
		}
		ErrorResponse(c, statusCode, "Failed to delete product")
		return
	}

	h.log.Infof("Product deleted successfully: ID %s", id)
	MessageResponse(c, http.StatusOK, "Product deleted successfully")
}

// parsePrice coerces the submitted price; NaN and infinities cannot be encoded as JSON.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, domain.ErrInvalidPrice
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, domain.ErrInvalidPrice
	}
	return price, nil
}
