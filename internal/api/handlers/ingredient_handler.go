package handlers

import (
	"Cucina-Backend/domain"
	"Cucina-Backend/internal/api/presenters"
	"Cucina-Backend/pkg/ingredient"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		AddIngredient(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		GetIngredientDetails(c *fiber.Ctx) error
		GetPriceHistory(c *fiber.Ctx) error

		PreviewImport(c *fiber.Ctx) error
		GetImportPreview(c *fiber.Ctx) error
		ResolveImportItem(c *fiber.Ctx) error
		CommitImport(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		importService     ingredient.ImportService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(
	ingredientService ingredient.IngredientService,
	importService ingredient.ImportService,
	validator *validator.Validate,
) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		importService:     importService,
		validator:         validator,
	}
}

func (h *ingredientHandler) AddIngredient(c *fiber.Ctx) error {
	req := new(domain.AddIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddIngredient, err)
	}

	res, err := h.ingredientService.AddIngredient(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIngredientName) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedAddIngredient, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddIngredient)
}

func (h *ingredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	ingredientID := c.Params("id")
	req := new(domain.UpdateIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	if err := h.ingredientService.UpdateIngredient(c.Context(), ingredientID, *req); err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateIngredient, err)
		}
		if errors.Is(err, domain.ErrDuplicateIngredientName) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedUpdateIngredient, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *ingredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	ingredientID := c.Params("id")

	if err := h.ingredientService.DeleteIngredient(c.Context(), ingredientID); err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteIngredient, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteIngredient)
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	items, count, err := h.ingredientService.GetIngredients(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) GetIngredientDetails(c *fiber.Ctx) error {
	ingredientID := c.Params("id")

	item, err := h.ingredientService.GetIngredientByID(c.Context(), ingredientID)
	if err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetIngredients, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) GetPriceHistory(c *fiber.Ctx) error {
	ingredientID := c.Params("id")

	prices, err := h.ingredientService.GetPriceHistory(c.Context(), ingredientID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPriceHistory, err)
	}

	return presenters.SuccessResponse(c, prices, fiber.StatusOK, domain.MessageSuccessGetPriceHistory)
}

func (h *ingredientHandler) PreviewImport(c *fiber.Ctx) error {
	res, err := h.importService.PreviewImport(c.Context(), c.Body())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPreviewImport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessPreviewImport)
}

func (h *ingredientHandler) GetImportPreview(c *fiber.Ctx) error {
	batchID := c.Params("batchId")

	res, err := h.importService.GetImportPreview(batchID)
	if err != nil {
		if errors.Is(err, domain.ErrImportBatchNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedPreviewImport, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPreviewImport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessPreviewImport)
}

func (h *ingredientHandler) ResolveImportItem(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	req := new(domain.ResolveImportItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResolveImportItem, err)
	}

	item, err := h.importService.ResolveImportItem(batchID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrImportBatchNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedResolveImportItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResolveImportItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessResolveImportItem)
}

func (h *ingredientHandler) CommitImport(c *fiber.Ctx) error {
	batchID := c.Params("batchId")

	res, err := h.importService.CommitImport(c.Context(), batchID)
	if err != nil {
		if errors.Is(err, domain.ErrImportBatchNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCommitImport, err)
		}
		if errors.Is(err, domain.ErrUnresolvedImportItems) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCommitImport, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCommitImport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCommitImport)
}
