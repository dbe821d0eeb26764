package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"logipack-console/internal/models"
	"logipack-console/internal/store"
)

type officeHandlers struct {
	store store.OfficeStore
}

func (h *officeHandlers) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.List())
}

func (h *officeHandlers) get(c echo.Context) error {
	o, err := h.store.Get(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *officeHandlers) create(c echo.Context) error {
	var in models.OfficeInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	o, err := h.store.Create(in)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *officeHandlers) update(c echo.Context) error {
	var in models.OfficeInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	o, err := h.store.Update(c.Param("id"), in)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *officeHandlers) delete(c echo.Context) error {
	if err := h.store.Delete(c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
