package handler

import (
	"log/slog"
	"net/http"
	"time"

	"recycle/internal/delivery/http/middleware"
	"recycle/internal/delivery/http/response"
	"recycle/internal/domain/entity"
	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for the catalog handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

type createPartRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type createProductRequest struct {
	Name        string              `json:"name" validate:"required,max=255"`
	EAN         string              `json:"ean" validate:"max=64"`
	Description string              `json:"description"`
	PicturePath string              `json:"picturePath"`
	Parts       []createPartRequest `json:"parts" validate:"dive"`
}

type partResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type productResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	EAN         string         `json:"ean,omitempty"`
	Description string         `json:"description,omitempty"`
	IsVerified  bool           `json:"isVerified"`
	PicturePath string         `json:"picturePath,omitempty"`
	Parts       []partResponse `json:"parts"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// CreateProduct handles catalog product creation for authenticated accounts.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed product payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := &usecase.CreateProductInput{
		Name:        req.Name,
		EAN:         req.EAN,
		Description: req.Description,
		PicturePath: req.PicturePath,
	}
	for _, part := range req.Parts {
		input.Parts = append(input.Parts, usecase.PartInput{Name: part.Name})
	}

	output, err := h.uc.CreateProduct(c.Request().Context(), principal, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(output.Product), "Product created")
}

// GetProduct returns a single product by ID.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithFields(map[string]string{
			"id": "must be a valid UUID",
		})
	}

	output, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(output.Product), "")
}

// ListProducts returns the product catalog.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	output, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	products := make([]productResponse, 0, len(output.Products))
	for _, product := range output.Products {
		products = append(products, toProductResponse(product))
	}

	return response.Success(c, http.StatusOK, products, "")
}

// DeleteProduct logically deletes a product.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithFields(map[string]string{
			"id": "must be a valid UUID",
		})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), principal, id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func toProductResponse(product *entity.Product) productResponse {
	parts := make([]partResponse, 0, len(product.Parts))
	for _, part := range product.Parts {
		parts = append(parts, partResponse{ID: part.ID, Name: part.Name})
	}

	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		EAN:         product.EAN,
		Description: product.Description,
		IsVerified:  product.IsVerified,
		PicturePath: product.PicturePath,
		Parts:       parts,
		CreatedAt:   product.CreatedAt,
	}
}
