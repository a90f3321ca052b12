package routes

import (
	"clinicbook/handlers"
	"clinicbook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints of the booking engine.
func RegisterRoutes(
	r *gin.Engine,
	availability *handlers.AvailabilityHandler,
	reservations *handlers.ReservationHandler,
	confirmations *handlers.ConfirmationHandler,
	schedules *handlers.ScheduleHandler,
) {
	api := r.Group("/api")

	// Professional-facing endpoints require a staff JWT.
	staff := api.Group("", middleware.JWTAuthMiddleware())
	{
		staff.GET("/availability/:professionalId", availability.GetAvailableSlots)

		staff.POST("/reservations", reservations.CreateReservation)
		staff.PATCH("/reservations/:id", reservations.UpdateReservation)
		staff.POST("/reservations/:id/sessions", reservations.AddSession)
		staff.POST("/reservations/release", reservations.ReleaseDate)
		staff.POST("/reservations/:id/confirmation-link", reservations.GenerateConfirmationLink)
		staff.POST("/reservations/:id/confirmation-link/resend", reservations.ResendConfirmationLink)

		staff.POST("/schedule-blocks", schedules.CreateBlock)
		staff.GET("/schedule-blocks/:professionalId", schedules.ListBlocks)
		staff.DELETE("/schedule-blocks/:professionalId/:blockId", schedules.DeleteBlock)
		staff.POST("/blocked-days", schedules.CreateBlockedDay)
		staff.GET("/blocked-days/:professionalId", schedules.ListBlockedDays)
		staff.DELETE("/blocked-days/:professionalId/:id", schedules.DeleteBlockedDay)
	}

	// Public token endpoints: unauthenticated, rate-limited per IP. The
	// opaque token in the URL is the only credential.
	public := api.Group("/confirm", middleware.RateLimitMiddleware())
	{
		public.GET("/:token", confirmations.ResolveToken)
		public.POST("/:token", confirmations.Confirm)
		public.POST("/:token/cancel", confirmations.Cancel)
		public.POST("/:token/reschedule", confirmations.RequestReschedule)
	}
}
