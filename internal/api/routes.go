package api

import (
	"github.com/labstack/echo/v4"

	"logipack-console/internal/auth"
	"logipack-console/internal/store"
)

// RegisterRoutes wires the console pages, the auth flow, and the JSON API.
func RegisterRoutes(e *echo.Echo, st *store.Stores, flow *auth.Flow) {
	if flow != nil {
		// Auth-flow routes live outside the locale scope; the session
		// middleware exempts them from the locale redirect.
		e.GET("/callback", flow.Callback)
		e.GET("/logout", flow.Logout)
		e.GET("/:lang/login", flow.Login)
	}

	// Locale-scoped pages.
	e.GET("/:lang", landingPage)
	e.GET("/:lang/app", appShell, RequirePageSession())
	e.GET("/:lang/app/no-access", noAccessPage, RequirePageSession())

	api := e.Group("/api")
	api.GET("/health", healthCheck)
	api.GET("/me", getCurrentUser, RequireSession())

	sh := &shipmentHandlers{store: st.Shipments}
	shipments := api.Group("/shipments", RequireSession(), RequireRole("admin", "employee"))
	shipments.GET("", sh.list)
	shipments.POST("", sh.create)
	shipments.GET("/feed", sh.feed)
	shipments.GET("/:id", sh.get)
	shipments.POST("/:id/status", sh.changeStatus)
	shipments.GET("/:id/timeline", sh.timeline)

	oh := &officeHandlers{store: st.Offices}
	offices := api.Group("/offices", RequireSession(), RequireRole("admin", "employee"))
	offices.GET("", oh.list)
	offices.GET("/:id", oh.get)

	officesAdmin := api.Group("/offices", RequireSession(), RequireRole("admin"))
	officesAdmin.POST("", oh.create)
	officesAdmin.PUT("/:id", oh.update)
	officesAdmin.DELETE("/:id", oh.delete)

	eh := &employeeHandlers{store: st.Employees}
	employees := api.Group("/employees", RequireSession(), RequireRole("admin"))
	employees.GET("", eh.list)
	employees.POST("", eh.create)
	employees.GET("/:id", eh.get)
	employees.DELETE("/:id", eh.delete)
	employees.POST("/:id/offices/:officeId", eh.assignOffice)
	employees.DELETE("/:id/offices/:officeId", eh.removeOffice)

	admin := api.Group("/admin", RequireSession(), RequireRole("admin"))
	admin.POST("/reset", resetStores(st))
}
