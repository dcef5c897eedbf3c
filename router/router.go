package router

import (
	"github.com/labstack/echo/v4"

	apptCtrl "agrocrm/pkg/appointment/controller"
	authCtrl "agrocrm/pkg/auth/controller"
	leadCtrl "agrocrm/pkg/lead/controller"
	"agrocrm/pkg/metrics"
	sprayCtrl "agrocrm/pkg/spray/controller"
)

type Handlers struct {
	Identity echo.MiddlewareFunc

	Health       interface{ Health(echo.Context) error }
	Auth         authCtrl.AuthController
	Realtime     interface{ Stream(echo.Context) error }
	Weather      interface{ Get(echo.Context) error }
	Dashboard    interface{ Get(echo.Context) error }
	Spray        sprayCtrl.SprayController
	Leads        leadCtrl.LeadController
	Appointments apptCtrl.AppointmentController
	Drone        interface{ Register(*echo.Group) }

	FilesDir  string
	FilesPath string
}

func New(e *echo.Echo, h Handlers) *echo.Echo {
	e.GET("/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/devlogin", h.Auth.DevLogin)
	if h.FilesDir != "" {
		e.Static(h.FilesPath, h.FilesDir)
	}

	api := e.Group("", h.Identity)
	api.GET("/whoami", h.Auth.WhoAmI)
	api.GET("/realtime", h.Realtime.Stream)
	api.GET("/weather", h.Weather.Get)
	api.GET("/dashboard", h.Dashboard.Get)

	api.POST("/spray/calculate", h.Spray.Calculate)
	api.GET("/spray/calculations", h.Spray.List)
	api.POST("/spray/calculations", h.Spray.Create)
	api.GET("/spray/calculations/:id", h.Spray.Get)
	api.GET("/spray/calculations/:id/export", h.Spray.Export)
	api.DELETE("/spray/calculations/:id", h.Spray.Delete)

	api.GET("/leads", h.Leads.List)
	api.POST("/leads", h.Leads.Create)
	api.GET("/leads/stats", h.Leads.Stats)
	api.PUT("/leads/:id", h.Leads.Update)
	api.DELETE("/leads/:id", h.Leads.Delete)

	api.GET("/appointments", h.Appointments.List)
	api.POST("/appointments", h.Appointments.Create)
	api.GET("/appointments/today", h.Appointments.Today)
	api.GET("/appointments/upcoming", h.Appointments.Upcoming)
	api.PUT("/appointments/:id", h.Appointments.Update)
	api.PATCH("/appointments/:id", h.Appointments.Patch)
	api.DELETE("/appointments/:id", h.Appointments.Delete)

	h.Drone.Register(api)
	return e
}
