package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// imageFormField is the multipart field carrying the uploaded file
const imageFormField = "image"

// ImageListQuery represents query parameters for image lists
type ImageListQuery struct {
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ImageHandler handles product image HTTP requests
type ImageHandler struct {
	BaseHandler
	imageService *catalog.ImageService
}

// NewImageHandler creates a new image handler
func NewImageHandler(imageService *catalog.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// List godoc
// @Summary      List product images
// @Tags         images
// @Produce      json
// @Param        product_id query string false "Product ID"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalog.ImageResponse]
// @Router       /images [get]
func (h *ImageHandler) List(c *gin.Context) {
	var query ImageListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	result, err := h.imageService.List(c.Request.Context(), query.ProductID, query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get product image
// @Tags         images
// @Produce      json
// @Param        id path string true "Image ID"
// @Success      200 {object} APIResponse[catalog.ImageResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /images/{id} [get]
func (h *ImageHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	image, err := h.imageService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, image)
}

// Create godoc
// @Summary      Add product image
// @Description  Accepts a multipart upload (fields "product" and "image") or a JSON body naming an already stored image
// @Tags         images
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        product formData string false "Product ID"
// @Param        image formData file false "Image file"
// @Param        request body catalog.RegisterImageRequest false "Stored image reference"
// @Success      201 {object} APIResponse[catalog.ImageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /images [post]
func (h *ImageHandler) Create(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.upload(c, sellerID)
		return
	}

	var req catalog.RegisterImageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	image, err := h.imageService.Register(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, image)
}

func (h *ImageHandler) upload(c *gin.Context, sellerID uuid.UUID) {
	productID, err := uuid.Parse(c.PostForm("product"))
	if err != nil {
		h.validationError(c, "product", "required", "Valid product id is required")
		return
	}

	header, err := c.FormFile(imageFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Request body too large")
			return
		}
		h.validationError(c, imageFormField, "required", "Image file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}

	image, err := h.imageService.Upload(c.Request.Context(), sellerID, catalog.UploadImageInput{
		ProductID: productID,
		Filename:  header.Filename,
		Data:      data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, image)
}

// Delete godoc
// @Summary      Delete product image
// @Tags         images
// @Param        id path string true "Image ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /images/{id} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), sellerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
