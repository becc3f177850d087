package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tidystash/inventory-system/internal/api/metrics"
	"github.com/tidystash/inventory-system/internal/core/ports"
)

const itemDateLayout = "2006-01-02"

// ItemHandler handles HTTP requests for item operations. Writes accept
// multipart/form-data so an optional photo can ride along with the fields.
type ItemHandler struct {
	service ports.ItemService
	confirm Confirmer
}

func NewItemHandler(service ports.ItemService, confirm Confirmer) *ItemHandler {
	return &ItemHandler{service: service, confirm: confirm}
}

// Create handles POST /v1/items.
//
// @Summary      Record a new item
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        parent_label  formData  string  true   "physical or digital"
// @Param        child_label   formData  string  false  "Child category label"
// @Param        name          formData  string  true   "Item name"
// @Param        note          formData  string  false  "Free-text note"
// @Param        suggestion    formData  string  false  "Storage suggestion"
// @Param        naming_rule   formData  string  false  "Recommended file naming (digital assets)"
// @Param        created_date  formData  string  false  "Start date (YYYY-MM-DD), defaults to today"
// @Param        image         formData  file    false  "Photo (JPEG/PNG/GIF)"
// @Success      201  {object}  itemResponse
// @Failure      400  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input := ports.CreateItemInput{
		ParentLabel: c.FormValue("parent_label"),
		ChildLabel:  c.FormValue("child_label"),
		Name:        c.FormValue("name"),
		Note:        c.FormValue("note"),
		Suggestion:  c.FormValue("suggestion"),
		NamingRule:  c.FormValue("naming_rule"),
	}
	if v := c.FormValue("created_date"); v != "" {
		t, err := time.Parse(itemDateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "created_date must be YYYY-MM-DD")
		}
		input.CreatedDate = &t
	}

	raw, err := readImagePart(c)
	if err != nil {
		return err
	}
	input.RawImage = raw

	detail, err := h.service.Create(c.Request().Context(), actor.Username, input)
	if err != nil {
		return err
	}

	metrics.ItemsCreatedTotal.WithLabelValues(detail.ParentLabel).Inc()
	return c.JSON(http.StatusCreated, toItemResponse(detail))
}

// List handles GET /v1/items.
//
// @Summary      List or search items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        q       query  string  false  "Case-insensitive substring matched against all text fields"
// @Param        parent  query  string  false  "Filter by parent label"
// @Param        child   query  string  false  "Filter by child label"
// @Param        page    query  int     false  "1-based page"
// @Param        limit   query  int     false  "Rows per page (max 100)"
// @Success      200  {object}  listItemsResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/items [get]
func (h *ItemHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), actor.Username, ports.ListItemsInput{
		Query:       c.QueryParam("q"),
		ParentLabel: c.QueryParam("parent"),
		ChildLabel:  c.QueryParam("child"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListItemsResponse(result))
}

// Get handles GET /v1/items/:id.
//
// @Summary      Get one item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      200  {object}  itemResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), actor.Username, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(detail))
}

// Image handles GET /v1/items/:id/image — the normalized JPEG.
//
// @Summary      Get an item's photo
// @Tags         items
// @Produce      jpeg
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      200  {file}    file
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id}/image [get]
func (h *ItemHandler) Image(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	image, err := h.service.GetImage(c.Request().Context(), actor.Username, c.Param("id"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", image)
}

// Update handles PUT /v1/items/:id. Only supplied form fields change; when no
// new image file is attached the stored photo is kept.
//
// @Summary      Edit an item
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      200  {object}  itemResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	input := ports.UpdateItemInput{
		ParentLabel: formPtr(params, "parent_label"),
		ChildLabel:  formPtr(params, "child_label"),
		Name:        formPtr(params, "name"),
		Note:        formPtr(params, "note"),
		Suggestion:  formPtr(params, "suggestion"),
		NamingRule:  formPtr(params, "naming_rule"),
	}
	if v := formPtr(params, "created_date"); v != nil {
		t, err := time.Parse(itemDateLayout, *v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "created_date must be YYYY-MM-DD")
		}
		input.CreatedDate = &t
	}

	raw, err := readImagePart(c)
	if err != nil {
		return err
	}
	input.RawImage = raw

	detail, err := h.service.Update(c.Request().Context(), actor.Username, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(detail))
}

// Delete handles DELETE /v1/items/:id. The first call arms the deletion and
// answers 202; repeating it inside the window performs the delete.
//
// @Summary      Permanently delete an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      202  {object}  confirmPendingResponse
// @Success      204  "item deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id := c.Param("id")

	// Surface NotFound before arming so a bogus id never enters the flow.
	if _, err := h.service.Get(c.Request().Context(), actor.Username, id); err != nil {
		return err
	}

	proceed, err := confirmOrArm(c, h.confirm, actor.Username, "item", id)
	if err != nil || !proceed {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor.Username, id); err != nil {
		return err
	}
	metrics.ItemsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Export handles GET /v1/items/export — the CSV backup download.
//
// @Summary      Export all items as CSV
// @Tags         items
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {file}  file
// @Router       /v1/items/export [get]
func (h *ItemHandler) Export(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.Request().Context(), actor.Username, &buf); err != nil {
		return err
	}

	metrics.ExportsTotal.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="inventory_backup.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// readImagePart reads the optional "image" file part. A request without one
// (or without a multipart body at all) yields nil, nil.
func readImagePart(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "failed to read image upload")
	}
	return raw, nil
}

// formPtr returns the field value when it was present in the form, nil when
// it was omitted, so edits can distinguish "clear" from "leave unchanged".
func formPtr(params url.Values, key string) *string {
	if vals, ok := params[key]; ok && len(vals) > 0 {
		v := vals[0]
		return &v
	}
	return nil
}
