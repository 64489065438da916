package models

import "time"

// Service is a bookable offering. Duration is in minutes; inactive services
// are hidden from the public booking surface but still resolvable by admins.
type Service struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Name         string    `json:"name"`
	DurationMins int       `json:"duration_minutes"`
	Price        int       `json:"price,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// ScheduleRow is one entry of the two-week alternating recurring schedule.
// Times are wall-clock "HH:MM" strings; CycleStartDate is "YYYY-MM-DD".
type ScheduleRow struct {
	ID             int64  `json:"id"`
	OwnerID        int64  `json:"owner_id"`
	CycleStartDate string `json:"cycle_start_date"`
	WeekNumber     int    `json:"week_number"` // 1 or 2
	DayOfWeek      int    `json:"day_of_week"` // ISO: 1=Monday .. 7=Sunday
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

// CalendarEvent is a one-off busy block on a single date.
type CalendarEvent struct {
	ID         int64  `json:"id"`
	OwnerID    int64  `json:"owner_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Title      string `json:"title,omitempty"`
	Source     string `json:"source,omitempty"` // "manual" or "google"
	ExternalID string `json:"external_id,omitempty"`
}

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

type Booking struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	ServiceID   int64     `json:"service_id"`
	ClientID    int64     `json:"client_id,omitempty"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone,omitempty"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type BlockedDate struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Date    string `json:"date"`
	Reason  string `json:"reason,omitempty"`
}

type Client struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// SettingRow is one key-value settings entry as stored; the typed view lives
// in service.Settings.
type SettingRow struct {
	OwnerID int64  `json:"owner_id"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}
