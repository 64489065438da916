package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"diary-service/internal/availability"
	"diary-service/internal/cache"
	"diary-service/internal/models"
	"diary-service/internal/repository"
)

var ErrServiceNotFound = errors.New("service not found")

// SlotCache is the cache surface the services use; *cache.SlotCache
// satisfies it and is safe to use as a typed nil when Redis is absent.
type SlotCache interface {
	Get(ctx context.Context, ownerID, serviceID int64, date string) (*availability.Result, bool)
	Set(ctx context.Context, ownerID, serviceID int64, date string, res availability.Result)
	InvalidateDay(ctx context.Context, ownerID int64, date string)
	InvalidateOwner(ctx context.Context, ownerID int64)
}

type AvailabilityService struct {
	DB       repository.Querier
	Services repository.ServiceRepository
	Schedule repository.ScheduleRepository
	Events   repository.EventRepository
	Bookings repository.BookingRepository
	Blocked  repository.BlockedDateRepository
	Settings repository.SettingsRepository
	Cache    SlotCache
	Log      *zap.Logger
}

func NewAvailabilityService(db repository.Querier, repos Repos, c SlotCache, log *zap.Logger) *AvailabilityService {
	if c == nil {
		c = (*cache.SlotCache)(nil)
	}
	return &AvailabilityService{
		DB:       db,
		Services: repos.Services,
		Schedule: repos.Schedule,
		Events:   repos.Events,
		Bookings: repos.Bookings,
		Blocked:  repos.Blocked,
		Settings: repos.Settings,
		Cache:    c,
		Log:      log,
	}
}

// Repos bundles the repositories the services share.
type Repos struct {
	Services repository.ServiceRepository
	Schedule repository.ScheduleRepository
	Events   repository.EventRepository
	Bookings repository.BookingRepository
	Blocked  repository.BlockedDateRepository
	Settings repository.SettingsRepository
	Clients  repository.ClientRepository
}

// AvailableSlots computes the bookable start times for (owner, service, date).
// now is optional; when it falls on the same date, the lead-time filter drops
// slots too close to it. The filter runs after caching so a cached day stays
// valid as the clock moves.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, ownerID, serviceID int64, date time.Time, now *time.Time) (availability.Result, error) {
	dateStr := date.Format("2006-01-02")

	res, ok := s.Cache.Get(ctx, ownerID, serviceID, dateStr)
	if !ok {
		computed, err := s.computeSlots(ctx, s.DB, ownerID, serviceID, date)
		if err != nil {
			return availability.Result{}, err
		}
		s.Cache.Set(ctx, ownerID, serviceID, dateStr, computed)
		res = &computed
	}

	out := *res
	if out.Message == "" && now != nil && sameDay(*now, date) {
		settings, err := s.ownerSettings(ctx, s.DB, ownerID)
		if err != nil {
			return availability.Result{}, err
		}
		out.Slots = availability.FilterPastSlots(out.Slots, now.Hour()*60+now.Minute(), settings.LeadMins)
	}
	return out, nil
}

// computeSlots runs the engine against q, which is the pool on the read path
// and an open transaction during booking re-validation.
func (s *AvailabilityService) computeSlots(ctx context.Context, q repository.Querier, ownerID, serviceID int64, date time.Time) (availability.Result, error) {
	dateStr := date.Format("2006-01-02")

	svc, err := s.Services.GetService(ctx, q, ownerID, serviceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return availability.Result{}, ErrServiceNotFound
	}
	if err != nil {
		return availability.Result{}, err
	}

	blocked, err := s.Blocked.IsDateBlocked(ctx, q, ownerID, dateStr)
	if err != nil {
		return availability.Result{}, err
	}
	if blocked {
		return availability.Result{Slots: []string{}, Message: "Date is blocked"}, nil
	}

	settings, err := s.ownerSettings(ctx, q, ownerID)
	if err != nil {
		return availability.Result{}, err
	}

	scheduleRows, err := s.Schedule.ListScheduleRows(ctx, q, ownerID)
	if err != nil {
		return availability.Result{}, err
	}
	cycleRows := s.toCycleRows(scheduleRows, ownerID)

	eventRows, err := s.Events.ListEventsOnDate(ctx, q, ownerID, dateStr)
	if err != nil {
		return availability.Result{}, err
	}
	events := s.toIntervals(ownerID, dateStr, eventRows, nil)

	bookingRows, err := s.Bookings.ListBookingsOnDate(ctx, q, ownerID, dateStr,
		[]string{models.BookingPending, models.BookingConfirmed})
	if err != nil {
		return availability.Result{}, err
	}
	bookings := s.toIntervals(ownerID, dateStr, nil, bookingRows)

	res, cycle := availability.Compute(availability.Input{
		Date:         date,
		DurationMins: svc.DurationMins,
		Schedule:     cycleRows,
		Events:       events,
		Bookings:     bookings,
		Policy:       settings.Policy(),
	})
	if cycle.Matches > 1 {
		s.Log.Warn("ambiguous schedule rows for date, last row used",
			zap.Int64("owner_id", ownerID),
			zap.Int64("service_id", serviceID),
			zap.String("date", dateStr),
			zap.Int("matches", cycle.Matches))
	}
	return res, nil
}

func (s *AvailabilityService) ownerSettings(ctx context.Context, q repository.Querier, ownerID int64) (Settings, error) {
	rows, err := s.Settings.ListSettings(ctx, q, ownerID)
	if err != nil {
		return Settings{}, err
	}
	return ParseSettings(rows), nil
}

func (s *AvailabilityService) toCycleRows(rows []models.ScheduleRow, ownerID int64) []availability.CycleRow {
	out := make([]availability.CycleRow, 0, len(rows))
	for _, r := range rows {
		cs, err := availability.ParseDate(r.CycleStartDate)
		if err != nil {
			s.Log.Warn("schedule row with bad cycle_start_date skipped",
				zap.Int64("owner_id", ownerID), zap.Int64("row_id", r.ID), zap.Error(err))
			continue
		}
		start, err := availability.ParseHHMM(r.StartTime)
		if err != nil {
			s.Log.Warn("schedule row with bad start_time skipped",
				zap.Int64("owner_id", ownerID), zap.Int64("row_id", r.ID), zap.Error(err))
			continue
		}
		end, err := availability.ParseHHMM(r.EndTime)
		if err != nil {
			s.Log.Warn("schedule row with bad end_time skipped",
				zap.Int64("owner_id", ownerID), zap.Int64("row_id", r.ID), zap.Error(err))
			continue
		}
		out = append(out, availability.CycleRow{
			CycleStart: cs,
			WeekNumber: r.WeekNumber,
			DayOfWeek:  r.DayOfWeek,
			Start:      start,
			End:        end,
		})
	}
	return out
}

// toIntervals converts either event or booking rows for one date; malformed
// rows are logged and skipped rather than failing the whole day.
func (s *AvailabilityService) toIntervals(ownerID int64, date string, events []models.CalendarEvent, bookings []models.Booking) []availability.Interval {
	var out []availability.Interval
	add := func(id int64, kind, startStr, endStr string) {
		start, err1 := availability.ParseHHMM(startStr)
		end, err2 := availability.ParseHHMM(endStr)
		if err1 != nil || err2 != nil || end <= start {
			s.Log.Warn("row with bad time range skipped",
				zap.Int64("owner_id", ownerID), zap.String("kind", kind),
				zap.Int64("row_id", id), zap.String("date", date))
			return
		}
		out = append(out, availability.Interval{Start: start, End: end})
	}
	for _, e := range events {
		add(e.ID, "event", e.StartTime, e.EndTime)
	}
	for _, b := range bookings {
		add(b.ID, "booking", b.StartTime, b.EndTime)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
