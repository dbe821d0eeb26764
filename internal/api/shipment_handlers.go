package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"logipack-console/internal/models"
	"logipack-console/internal/store"
)

type shipmentHandlers struct {
	store store.ShipmentStore
}

func (h *shipmentHandlers) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.List())
}

func (h *shipmentHandlers) get(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *shipmentHandlers) create(c echo.Context) error {
	var in models.CreateShipmentInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	s, err := h.store.Create(in)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *shipmentHandlers) changeStatus(c echo.Context) error {
	var in models.ChangeStatusInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	s, err := h.store.ChangeStatus(c.Param("id"), in)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *shipmentHandlers) timeline(c echo.Context) error {
	events, err := h.store.Timeline(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

// feed streams shipment events over a websocket until the client leaves.
func (h *shipmentHandlers) feed(c echo.Context) error {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	ws, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
	if err != nil {
		log.Printf("api: websocket upgrade failed: %v", err)
		return err
	}
	defer ws.Close()

	events, cancel := h.store.Subscribe()
	defer cancel()

	// Drain client messages to notice the disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := ws.WriteJSON(ev); err != nil {
				return nil
			}
		case <-done:
			return nil
		}
	}
}
