package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tidystash/inventory-system/internal/core/ports"
)

// CategoryHandler handles HTTP requests for the per-account taxonomy.
type CategoryHandler struct {
	service ports.CategoryService
	confirm Confirmer
}

func NewCategoryHandler(service ports.CategoryService, confirm Confirmer) *CategoryHandler {
	return &CategoryHandler{service: service, confirm: confirm}
}

type addCategoryRequest struct {
	ParentLabel string `json:"parent_label" validate:"required"`
	ChildLabel  string `json:"child_label"  validate:"required"`
}

// List handles GET /v1/categories. First access seeds the default taxonomy.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        parent  query  string  false  "Filter by parent label (physical or digital)"
// @Success      200  {object}  listCategoriesResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	categories, err := h.service.List(c.Request().Context(), actor.Username, c.QueryParam("parent"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListCategoriesResponse(categories))
}

// Add handles POST /v1/categories.
//
// @Summary      Add a child category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCategoryRequest  true  "Category to add"
// @Success      201   {object}  categoryResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/categories [post]
func (h *CategoryHandler) Add(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.Add(c.Request().Context(), actor.Username, req.ParentLabel, req.ChildLabel)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// Remove handles DELETE /v1/categories/:child. The child label is removed
// under every parent it appears in; items keep their labels. Two-step: the
// first call arms, the repeat confirms.
//
// @Summary      Remove a child category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        child  path  string  true  "Child label to remove"
// @Success      200  {object}  categoriesRemovedResponse
// @Success      202  {object}  confirmPendingResponse
// @Router       /v1/categories/{child} [delete]
func (h *CategoryHandler) Remove(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	child := c.Param("child")

	proceed, err := confirmOrArm(c, h.confirm, actor.Username, "category", child)
	if err != nil || !proceed {
		return err
	}

	removed, err := h.service.Remove(c.Request().Context(), actor.Username, child)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesRemovedResponse{Removed: removed})
}
