package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
)

// Routes groups every handler mounted under the API prefix.
type Routes struct {
	Auth         *AuthHandler
	Schedules    *ScheduleHandler
	Catalog      *CatalogHandler
	Slots        *SlotHandler
	Appointments *AppointmentHandler
	Public       *PublicHandler
	Export       *ExportHandler
	Metrics      *MetricsHandler

	Tokens middleware.TokenValidator
}

// Register mounts the API. Export is skipped when nil.
func (r Routes) Register(api *gin.RouterGroup) {
	owner := middleware.RBAC(string(models.RoleAdmin), middleware.Self)
	booker := middleware.RBAC(string(models.RoleAdmin), string(models.RoleClient), middleware.Self)

	api.POST("/auth/login", r.Auth.Login)

	public := api.Group("/public/barbers/:slug", middleware.OptionalJWT(r.Tokens))
	public.GET("", r.Public.Profile)
	public.GET("/slots", r.Public.Slots)
	public.POST("/appointments", r.Public.Book)

	authed := api.Group("", middleware.JWT(r.Tokens))
	authed.GET("/auth/me", r.Auth.Me)
	authed.GET("/me/appointments", middleware.RequireRoles(models.RoleClient), r.Appointments.Mine)
	authed.GET("/appointments/:id", r.Appointments.Get)
	authed.PATCH("/appointments/:id/status", r.Appointments.UpdateStatus)
	authed.GET("/system/metrics", middleware.RequireRoles(models.RoleAdmin), r.Metrics.Summary)

	barber := authed.Group("/barbers/:" + middleware.BarberParam)
	barber.GET("/schedule", r.Schedules.Get)
	barber.PUT("/schedule", owner, r.Schedules.Replace)

	barber.GET("/services", r.Catalog.List)
	barber.POST("/services", owner, r.Catalog.Create)
	barber.PUT("/services/:id", owner, r.Catalog.Update)
	barber.DELETE("/services/:id", owner, r.Catalog.Deactivate)

	barber.GET("/slots", r.Slots.List)
	barber.POST("/appointments", booker, r.Appointments.Book)
	barber.GET("/appointments", owner, r.Appointments.List)

	if r.Export != nil {
		barber.GET("/agenda/export", owner, r.Export.Agenda)
	}
}
