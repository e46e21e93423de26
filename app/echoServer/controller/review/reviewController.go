package review

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"borrowbox/app/echoServer/jwtx"
	"borrowbox/model"
	reviewsvc "borrowbox/service/review"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/reviews
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	rv, err := h.Svc.Create(c.Request().Context(), jwtx.Session(c), req)
	if err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrBorrowNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrow not found"})
		case errors.Is(err, reviewsvc.ErrNotBorrower):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case errors.Is(err, reviewsvc.ErrNotReturned):
			return c.JSON(http.StatusConflict, echo.Map{"message": "tool not returned yet"})
		case errors.Is(err, reviewsvc.ErrToolGone):
			return c.JSON(http.StatusConflict, echo.Map{"message": "tool no longer listed"})
		case errors.Is(err, reviewsvc.ErrAlreadyReviewed):
			return c.JSON(http.StatusConflict, echo.Map{"message": "already reviewed"})
		default:
			h.Log.Error("review create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, rv)
}

// GET /v1/tools/:id/reviews
func (h *Controller) ListByTool(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	rows, err := h.Svc.ListByTool(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("review list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
