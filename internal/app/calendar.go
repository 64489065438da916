package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"diary-service/internal/models"
)

func (a *App) googleOAuthConfig() *oauth2.Config {
	if a.Cfg.GoogleClientID == "" || a.Cfg.GoogleSecret == "" || a.Cfg.GoogleRedirect == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     a.Cfg.GoogleClientID,
		ClientSecret: a.Cfg.GoogleSecret,
		RedirectURL:  a.Cfg.GoogleRedirect,
		Scopes:       []string{calendar.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

// GET /api/admin/calendar/auth
func (a *App) GoogleAuthHandler(c *gin.Context) {
	cfg := a.googleOAuthConfig()
	if cfg == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}
	state := fmt.Sprintf("owner_%s_%d", c.Query("owner_id"), time.Now().Unix())
	c.JSON(http.StatusOK, gin.H{
		"auth_url": cfg.AuthCodeURL(state, oauth2.AccessTypeOffline),
		"state":    state,
	})
}

// GET /oauth2callback
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	cfg := a.googleOAuthConfig()
	if cfg == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}
	token, err := cfg.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code for token"})
		return
	}
	tokenJSON, _ := json.Marshal(token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Authorization successful",
		"state":   c.Query("state"),
		"token":   string(tokenJSON),
	})
}

// POST /api/admin/calendar/refresh-token
func (a *App) RefreshGoogleToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token required"})
		return
	}
	cfg := a.googleOAuthConfig()
	if cfg == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}
	src := cfg.TokenSource(c.Request.Context(), &oauth2.Token{RefreshToken: req.RefreshToken})
	newToken, err := src.Token()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to refresh token"})
		return
	}
	tokenJSON, _ := json.Marshal(newToken)
	c.JSON(http.StatusOK, gin.H{"token": string(tokenJSON)})
}

type importEventsReq struct {
	OwnerID int64  `json:"owner_id" binding:"required"`
	From    string `json:"from" binding:"required"` // YYYY-MM-DD
	To      string `json:"to" binding:"required"`
}

// POST /api/admin/calendar/import
//
// Pulls busy events from the owner's Google Calendar for a date range and
// stores them as one-off calendar events, so imported busy time carves slots
// the same way manually entered events do. All-day and cancelled events are
// skipped; multi-day events only block the day they start on.
func (a *App) ImportGoogleEvents(c *gin.Context) {
	tokenStr := c.GetHeader("X-Google-Token")
	if tokenStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google token required in X-Google-Token header"})
		return
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenStr), &token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token format"})
		return
	}

	var req importEventsReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from, want YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil || to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to, want YYYY-MM-DD on or after from"})
		return
	}

	cfg := a.googleOAuthConfig()
	if cfg == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}
	ctx := c.Request.Context()
	client := cfg.Client(ctx, &token)
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create calendar service"})
		return
	}

	calendarID := c.DefaultQuery("calendar_id", "primary")
	events, err := srv.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.AddDate(0, 0, 1).Format(time.RFC3339)).
		MaxResults(250).
		Do()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to retrieve events: %v", err)})
		return
	}

	imported := 0
	skipped := 0
	for _, item := range events.Items {
		if item.Status == "cancelled" || item.Start == nil || item.End == nil ||
			item.Start.DateTime == "" || item.End.DateTime == "" {
			skipped++
			continue
		}
		start, err1 := time.Parse(time.RFC3339, item.Start.DateTime)
		end, err2 := time.Parse(time.RFC3339, item.End.DateTime)
		if err1 != nil || err2 != nil || !end.After(start) {
			skipped++
			continue
		}
		event := models.CalendarEvent{
			OwnerID:    req.OwnerID,
			Date:       start.Format("2006-01-02"),
			StartTime:  start.Format("15:04"),
			EndTime:    end.Format("15:04"),
			Title:      item.Summary,
			Source:     "google",
			ExternalID: item.Id,
		}
		if end.Format("2006-01-02") != event.Date {
			event.EndTime = "23:59"
		}
		if err := a.Diary.CreateEvent(ctx, &event); err != nil {
			a.Log.Warn("calendar event import failed",
				zap.Int64("owner_id", req.OwnerID), zap.String("external_id", item.Id), zap.Error(err))
			skipped++
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}
