package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tidystash/inventory-system/internal/core/ports"
)

// AccountHandler handles the administrator-only account endpoints.
type AccountHandler struct {
	service ports.AccountService
	confirm Confirmer
}

func NewAccountHandler(service ports.AccountService, confirm Confirmer) *AccountHandler {
	return &AccountHandler{service: service, confirm: confirm}
}

// List handles GET /v1/admin/accounts.
//
// @Summary      List all accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAccountsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	accounts, err := h.service.ListAccounts(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListAccountsResponse(accounts))
}

// Delete handles DELETE /v1/admin/accounts/:username. Removing an account
// also purges its items and categories. Two-step: first call arms, the
// repeat confirms.
//
// @Summary      Delete an account and its data
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Account to delete"
// @Success      202  {object}  confirmPendingResponse
// @Success      204  "account deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/accounts/{username} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	username := c.Param("username")

	proceed, err := confirmOrArm(c, h.confirm, actor.Username, "account", username)
	if err != nil || !proceed {
		return err
	}

	if err := h.service.DeleteAccount(c.Request().Context(), actor, username); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
