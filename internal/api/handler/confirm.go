package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tidystash/inventory-system/internal/api/metrics"
)

// Confirmer is the two-step arming store destructive endpoints consult.
type Confirmer interface {
	Arm(ctx context.Context, owner, kind, target string) (time.Duration, error)
	Confirm(ctx context.Context, owner, kind, target string) (bool, error)
}

type confirmPendingResponse struct {
	Message       string `json:"message"`
	ConfirmWithin string `json:"confirm_within"`
}

// confirmOrArm implements the click-to-arm, click-again-to-confirm contract
// for destructive operations. The first call arms the operation and writes a
// 202 response; a repeat of the identical request inside the window returns
// true, telling the caller to proceed.
func confirmOrArm(c echo.Context, store Confirmer, owner, kind, target string) (bool, error) {
	ctx := c.Request().Context()

	ok, err := store.Confirm(ctx, owner, kind, target)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	ttl, err := store.Arm(ctx, owner, kind, target)
	if err != nil {
		return false, err
	}
	metrics.ConfirmArmedTotal.WithLabelValues(kind).Inc()

	return false, c.JSON(http.StatusAccepted, confirmPendingResponse{
		Message:       "destructive operation armed, repeat the request to confirm",
		ConfirmWithin: ttl.String(),
	})
}
