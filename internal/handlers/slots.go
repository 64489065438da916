package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diary-service/internal/availability"
	"diary-service/internal/service"
)

// PublicHandlers serves the unauthenticated booking surface.
type PublicHandlers struct {
	Avail *service.AvailabilityService
	Book  *service.BookingService
	Diary *service.DiaryService
	Log   *zap.Logger
}

// GET /api/slots?owner_id&service_id&date&current_time
func (h *PublicHandlers) GetSlots(c *gin.Context) {
	ownerID, err := queryID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	serviceID, err := queryID(c, "service_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := availability.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	// current_time overrides the clock, never the calendar: it is anchored
	// to the server's current date so the lead filter still only applies
	// when the requested date is today.
	now := time.Now().UTC()
	if ct := c.Query("current_time"); ct != "" {
		mins, err := availability.ParseHHMM(ct)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid current_time, want HH:MM"})
			return
		}
		now = time.Date(now.Year(), now.Month(), now.Day(), mins/60, mins%60, 0, 0, time.UTC)
	}

	res, err := h.Avail.AvailableSlots(c.Request.Context(), ownerID, serviceID, date, &now)
	if errors.Is(err, service.ErrServiceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	if err != nil {
		h.Log.Error("slot computation failed",
			zap.Int64("owner_id", ownerID), zap.Int64("service_id", serviceID),
			zap.String("date", c.Query("date")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/booking-data?owner_id
func (h *PublicHandlers) GetBookingData(c *gin.Context) {
	ownerID, err := queryID(c, "owner_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	services, err := h.Diary.ListServices(c.Request.Context(), ownerID, true)
	if err != nil {
		h.Log.Error("booking data failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	settings, err := h.Diary.GetSettings(c.Request.Context(), ownerID)
	if err != nil {
		h.Log.Error("booking data failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services, "settings": settings.Public()})
}

type createBookingReq struct {
	OwnerID     int64  `json:"owner_id" binding:"required"`
	ServiceID   int64  `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	Comment     string `json:"comment"`
}

// POST /api/bookings
func (h *PublicHandlers) CreateBooking(c *gin.Context) {
	var req createBookingReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	booking, err := h.Book.CreateBooking(c.Request.Context(), service.CreateBookingParams{
		OwnerID:     req.OwnerID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Comment:     req.Comment,
	})
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
	case errors.Is(err, service.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.Log.Error("booking create failed",
			zap.Int64("owner_id", req.OwnerID), zap.Int64("service_id", req.ServiceID),
			zap.String("date", req.Date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusCreated, booking)
	}
}

func queryID(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, errors.New(name + " required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}
