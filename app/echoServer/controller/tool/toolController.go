package tool

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"borrowbox/app/echoServer/jwtx"
	"borrowbox/model"
	toolsvc "borrowbox/service/tool"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc toolsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/tools
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateToolReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	t, err := h.Svc.Create(c.Request().Context(), jwtx.Session(c), req)
	if err != nil {
		h.Log.Error("tool create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, t)
}

// GET /v1/tools?search=&category=
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), c.QueryParam("search"), c.QueryParam("category"))
	if err != nil {
		h.Log.Error("tool list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/tools/:id?lat=&lon=
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	lat := parseCoord(c.QueryParam("lat"))
	lon := parseCoord(c.QueryParam("lon"))

	t, err := h.Svc.Detail(c.Request().Context(), id, lat, lon)
	if err != nil {
		if errors.Is(err, toolsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "tool not found"})
		}
		h.Log.Error("tool detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, t)
}

// GET /v1/tools/mine
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.Mine(c.Request().Context(), jwtx.Session(c))
	if err != nil {
		h.Log.Error("tool mine", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/tools/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), jwtx.Session(c), id); err != nil {
		switch {
		case errors.Is(err, toolsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "tool not found"})
		case errors.Is(err, toolsvc.ErrNotOwner):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case errors.Is(err, toolsvc.ErrBorrowed):
			return c.JSON(http.StatusConflict, echo.Map{"message": "tool currently borrowed"})
		default:
			h.Log.Error("tool delete", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
