package router

import (
	"github.com/gin-gonic/gin"

	"diary-service/internal/app"
	"diary-service/internal/cache"
	"diary-service/internal/config"
	"diary-service/internal/handlers"
	"diary-service/internal/repository/postgres"
	"diary-service/internal/service"
)

func Build(appInstance *app.App, cfg *config.Config, slotCache *cache.SlotCache) *gin.Engine {
	r := gin.Default()
	r.Use(app.RequestID())

	// OAuth2 callback (must be before auth middleware)
	r.GET("/oauth2callback", appInstance.GoogleOAuth2CallbackHandler)

	repos := service.Repos{
		Services: postgres.NewServiceRepo(),
		Schedule: postgres.NewScheduleRepo(),
		Events:   postgres.NewEventRepo(),
		Bookings: postgres.NewBookingRepo(),
		Blocked:  postgres.NewBlockedDateRepo(),
		Settings: postgres.NewSettingsRepo(),
		Clients:  postgres.NewClientRepo(),
	}
	availService := service.NewAvailabilityService(appInstance.DB, repos, slotCache, appInstance.Log)
	bookingService := service.NewBookingService(appInstance.DB, repos, availService, slotCache, appInstance.Log)
	diaryService := service.NewDiaryService(appInstance.DB, repos, slotCache, appInstance.Log)
	appInstance.Diary = diaryService

	public := &handlers.PublicHandlers{Avail: availService, Book: bookingService, Diary: diaryService, Log: appInstance.Log}
	admin := &handlers.AdminHandlers{Diary: diaryService, Book: bookingService, Log: appInstance.Log}

	api := r.Group("/api")
	{
		api.GET("/slots", public.GetSlots)
		api.GET("/booking-data", public.GetBookingData)
		api.POST("/bookings", public.CreateBooking)

		adm := api.Group("/admin")
		adm.Use(app.AuthMiddleware(cfg))
		{
			calendarGroup := adm.Group("/calendar")
			{
				calendarGroup.GET("/auth", appInstance.GoogleAuthHandler)
				calendarGroup.POST("/refresh-token", appInstance.RefreshGoogleToken)
				calendarGroup.POST("/import", appInstance.ImportGoogleEvents)
			}

			owners := adm.Group("/owners/:owner_id")
			{
				owners.GET("/services", admin.ListServices)
				owners.POST("/services", admin.CreateService)
				owners.PUT("/services/:id", admin.UpdateService)
				owners.DELETE("/services/:id", admin.DeleteService)

				owners.GET("/schedule", admin.ListSchedule)
				owners.POST("/schedule", admin.CreateScheduleRow)
				owners.DELETE("/schedule/:id", admin.DeleteScheduleRow)

				owners.GET("/events", admin.ListEvents)
				owners.POST("/events", admin.CreateEvent)
				owners.DELETE("/events/:id", admin.DeleteEvent)

				owners.GET("/blocked-dates", admin.ListBlockedDates)
				owners.POST("/blocked-dates", admin.BlockDate)
				owners.DELETE("/blocked-dates/:id", admin.UnblockDate)

				owners.GET("/settings", admin.GetSettings)
				owners.PUT("/settings", admin.UpdateSettings)

				owners.GET("/clients", admin.ListClients)

				owners.GET("/bookings", admin.ListBookings)
				owners.PATCH("/bookings/:id/status", admin.UpdateBookingStatus)
				owners.DELETE("/bookings/:id", admin.CancelBooking)
			}
		}
	}

	return r
}
