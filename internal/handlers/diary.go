package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diary-service/internal/models"
	"diary-service/internal/service"
)

// AdminHandlers is the authenticated CRUD surface over the diary resources.
type AdminHandlers struct {
	Diary *service.DiaryService
	Book  *service.BookingService
	Log   *zap.Logger
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func (h *AdminHandlers) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.Log.Error("admin request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// GET /api/admin/owners/:owner_id/services
func (h *AdminHandlers) ListServices(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	services, err := h.Diary.ListServices(c.Request.Context(), ownerID, false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// POST /api/admin/owners/:owner_id/services
func (h *AdminHandlers) CreateService(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var svc models.Service
	if err := c.BindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc.OwnerID = ownerID
	if err := h.Diary.CreateService(c.Request.Context(), &svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// PUT /api/admin/owners/:owner_id/services/:id
func (h *AdminHandlers) UpdateService(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	serviceID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var svc models.Service
	if err := c.BindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc.ID = serviceID
	svc.OwnerID = ownerID
	if err := h.Diary.UpdateService(c.Request.Context(), &svc); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DELETE /api/admin/owners/:owner_id/services/:id
func (h *AdminHandlers) DeleteService(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	serviceID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Diary.DeleteService(c.Request.Context(), ownerID, serviceID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/admin/owners/:owner_id/schedule
func (h *AdminHandlers) ListSchedule(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := h.Diary.ListSchedule(c.Request.Context(), ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// POST /api/admin/owners/:owner_id/schedule
func (h *AdminHandlers) CreateScheduleRow(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var row models.ScheduleRow
	if err := c.BindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row.OwnerID = ownerID
	if err := h.Diary.CreateScheduleRow(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// DELETE /api/admin/owners/:owner_id/schedule/:id
func (h *AdminHandlers) DeleteScheduleRow(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rowID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Diary.DeleteScheduleRow(c.Request.Context(), ownerID, rowID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/admin/owners/:owner_id/events?date=YYYY-MM-DD
func (h *AdminHandlers) ListEvents(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	events, err := h.Diary.ListEvents(c.Request.Context(), ownerID, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

// POST /api/admin/owners/:owner_id/events
func (h *AdminHandlers) CreateEvent(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var event models.CalendarEvent
	if err := c.BindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event.OwnerID = ownerID
	if err := h.Diary.CreateEvent(c.Request.Context(), &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, event)
}

// DELETE /api/admin/owners/:owner_id/events/:id
func (h *AdminHandlers) DeleteEvent(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Diary.DeleteEvent(c.Request.Context(), ownerID, eventID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/admin/owners/:owner_id/blocked-dates
func (h *AdminHandlers) ListBlockedDates(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dates, err := h.Diary.ListBlockedDates(c.Request.Context(), ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

// POST /api/admin/owners/:owner_id/blocked-dates
func (h *AdminHandlers) BlockDate(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var d models.BlockedDate
	if err := c.BindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d.OwnerID = ownerID
	if err := h.Diary.BlockDate(c.Request.Context(), &d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, d)
}

// DELETE /api/admin/owners/:owner_id/blocked-dates/:id
func (h *AdminHandlers) UnblockDate(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Diary.UnblockDate(c.Request.Context(), ownerID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/admin/owners/:owner_id/settings
func (h *AdminHandlers) GetSettings(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings, err := h.Diary.GetSettings(c.Request.Context(), ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PUT /api/admin/owners/:owner_id/settings
func (h *AdminHandlers) UpdateSettings(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var values map[string]string
	if err := c.BindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Diary.UpdateSettings(c.Request.Context(), ownerID, values); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/admin/owners/:owner_id/clients
func (h *AdminHandlers) ListClients(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clients, err := h.Diary.ListClients(c.Request.Context(), ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GET /api/admin/owners/:owner_id/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AdminHandlers) ListBookings(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from := c.DefaultQuery("from", "0001-01-01")
	to := c.DefaultQuery("to", "9999-12-31")
	bookings, err := h.Book.ListBookings(c.Request.Context(), ownerID, from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// PATCH /api/admin/owners/:owner_id/bookings/:id/status
func (h *AdminHandlers) UpdateBookingStatus(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Book.UpdateStatus(c.Request.Context(), ownerID, bookingID, req.Status); err != nil {
		if errors.Is(err, service.ErrBadStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/admin/owners/:owner_id/bookings/:id
func (h *AdminHandlers) CancelBooking(c *gin.Context) {
	ownerID, err := pathID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Book.CancelBooking(c.Request.Context(), ownerID, bookingID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
