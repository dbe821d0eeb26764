package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"logipack-console/internal/models"
	"logipack-console/internal/store"
)

type employeeHandlers struct {
	store store.EmployeeStore
}

func (h *employeeHandlers) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.List())
}

func (h *employeeHandlers) get(c echo.Context) error {
	e, err := h.store.Get(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *employeeHandlers) create(c echo.Context) error {
	var in models.CreateEmployeeInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	e, err := h.store.Create(in)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *employeeHandlers) delete(c echo.Context) error {
	if err := h.store.Delete(c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *employeeHandlers) assignOffice(c echo.Context) error {
	e, err := h.store.AssignOffice(c.Param("id"), c.Param("officeId"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *employeeHandlers) removeOffice(c echo.Context) error {
	e, err := h.store.RemoveOffice(c.Param("id"), c.Param("officeId"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}
