package borrow

import (
	"log/slog"
	"net/http"
	"strconv"

	"borrowbox/app/echoServer/jwtx"
	"borrowbox/model"
	bs "borrowbox/service/borrow"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/tools/:id/borrow
func (h *Controller) Initiate(c echo.Context) error {
	toolID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || toolID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req model.BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Initiate(c.Request().Context(), jwtx.Session(c), toolID, req.Days, req.AgreeTerms)
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrInvalidDays:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "days must be at least 1"})
		case bs.ErrConsentRequired:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "terms must be accepted"})
		case bs.ErrToolNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "tool not found"})
		case bs.ErrOwnTool:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "cannot borrow your own tool"})
		case bs.ErrNotAvailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "tool not available"})
		default:
			h.Log.Error("borrow initiate", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"borrow_id":  out.BorrowID,
		"status":     "PENDING_PAYMENT",
		"order_id":   out.OrderID,
		"amount":     out.AmountMinor,
		"currency":   out.Currency,
		"total_cost": out.TotalCost,
	})
}

// POST /v1/borrows/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Cancel(c.Request().Context(), jwtx.Session(c), id); err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrow not found"})
		case bs.ErrNotBorrower:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case bs.ErrNotPending:
			return c.JSON(http.StatusConflict, echo.Map{"message": "borrow not pending"})
		default:
			h.Log.Error("borrow cancel", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "canceled"})
}

// POST /v1/borrows/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req model.ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.Return(c.Request().Context(), jwtx.Session(c), id, req.ReturnToken); err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrow not found"})
		case bs.ErrNotBorrower:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case bs.ErrNotActive:
			return c.JSON(http.StatusConflict, echo.Map{"message": "borrow not active"})
		case bs.ErrBadReturnToken:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid return token"})
		default:
			h.Log.Error("borrow return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "returned"})
}

// GET /v1/borrows/:id/qr
func (h *Controller) ReturnQR(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	png, err := h.Svc.ReturnQR(c.Request().Context(), jwtx.Session(c), id)
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrow not found"})
		case bs.ErrNotBorrower:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case bs.ErrNotActive:
			return c.JSON(http.StatusConflict, echo.Map{"message": "borrow not active"})
		default:
			h.Log.Error("borrow qr", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// GET /v1/borrows/my
func (h *Controller) MyHistory(c echo.Context) error {
	rows, err := h.Svc.MyHistory(c.Request().Context(), jwtx.Session(c))
	if err != nil {
		h.Log.Error("borrow history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
