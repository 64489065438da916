package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"diary-service/internal/availability"
	"diary-service/internal/cache"
	"diary-service/internal/models"
	"diary-service/internal/repository"
)

var ErrNotFound = errors.New("not found")

// DiaryService is the admin CRUD surface over the diary resources. One
// parameterized service instead of one handler per resource revision; every
// mutation invalidates the affected slot cache.
type DiaryService struct {
	DB    repository.Querier
	Repos Repos
	Cache SlotCache
	Log   *zap.Logger
}

func NewDiaryService(db repository.Querier, repos Repos, c SlotCache, log *zap.Logger) *DiaryService {
	if c == nil {
		c = (*cache.SlotCache)(nil)
	}
	return &DiaryService{DB: db, Repos: repos, Cache: c, Log: log}
}

func (s *DiaryService) ListServices(ctx context.Context, ownerID int64, activeOnly bool) ([]models.Service, error) {
	return s.Repos.Services.ListServices(ctx, s.DB, ownerID, activeOnly)
}

func (s *DiaryService) CreateService(ctx context.Context, svc *models.Service) error {
	if svc.Name == "" || svc.DurationMins <= 0 {
		return errors.New("name and positive duration_minutes required")
	}
	return s.Repos.Services.InsertService(ctx, s.DB, svc)
}

func (s *DiaryService) UpdateService(ctx context.Context, svc *models.Service) error {
	if svc.Name == "" || svc.DurationMins <= 0 {
		return errors.New("name and positive duration_minutes required")
	}
	_, err := s.Repos.Services.UpdateService(ctx, s.DB, svc)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	// A duration change rewrites every computed day for this service.
	s.Cache.InvalidateOwner(ctx, svc.OwnerID)
	return nil
}

func (s *DiaryService) DeleteService(ctx context.Context, ownerID, serviceID int64) error {
	rows, err := s.Repos.Services.DeleteService(ctx, s.DB, ownerID, serviceID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.Cache.InvalidateOwner(ctx, ownerID)
	return nil
}

func (s *DiaryService) ListSchedule(ctx context.Context, ownerID int64) ([]models.ScheduleRow, error) {
	return s.Repos.Schedule.ListScheduleRows(ctx, s.DB, ownerID)
}

func (s *DiaryService) CreateScheduleRow(ctx context.Context, r *models.ScheduleRow) error {
	if err := validateScheduleRow(r); err != nil {
		return err
	}
	if err := s.Repos.Schedule.InsertScheduleRow(ctx, s.DB, r); err != nil {
		return err
	}
	s.Cache.InvalidateOwner(ctx, r.OwnerID)
	return nil
}

func (s *DiaryService) DeleteScheduleRow(ctx context.Context, ownerID, rowID int64) error {
	rows, err := s.Repos.Schedule.DeleteScheduleRow(ctx, s.DB, ownerID, rowID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.Cache.InvalidateOwner(ctx, ownerID)
	return nil
}

func (s *DiaryService) CreateEvent(ctx context.Context, e *models.CalendarEvent) error {
	if err := validateTimeRange(e.StartTime, e.EndTime); err != nil {
		return err
	}
	if _, err := availability.ParseDate(e.Date); err != nil {
		return err
	}
	if e.Source == "" {
		e.Source = "manual"
	}
	if err := s.Repos.Events.InsertEvent(ctx, s.DB, e); err != nil {
		return err
	}
	s.Cache.InvalidateDay(ctx, e.OwnerID, e.Date)
	return nil
}

func (s *DiaryService) ListEvents(ctx context.Context, ownerID int64, date string) ([]models.CalendarEvent, error) {
	if _, err := availability.ParseDate(date); err != nil {
		return nil, err
	}
	return s.Repos.Events.ListEventsOnDate(ctx, s.DB, ownerID, date)
}

func (s *DiaryService) DeleteEvent(ctx context.Context, ownerID, eventID int64) error {
	rows, err := s.Repos.Events.DeleteEvent(ctx, s.DB, ownerID, eventID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.Cache.InvalidateOwner(ctx, ownerID)
	return nil
}

func (s *DiaryService) ListBlockedDates(ctx context.Context, ownerID int64) ([]models.BlockedDate, error) {
	return s.Repos.Blocked.ListBlockedDates(ctx, s.DB, ownerID)
}

func (s *DiaryService) BlockDate(ctx context.Context, d *models.BlockedDate) error {
	if _, err := availability.ParseDate(d.Date); err != nil {
		return err
	}
	if err := s.Repos.Blocked.InsertBlockedDate(ctx, s.DB, d); err != nil {
		return err
	}
	s.Cache.InvalidateDay(ctx, d.OwnerID, d.Date)
	return nil
}

func (s *DiaryService) UnblockDate(ctx context.Context, ownerID, id int64) error {
	rows, err := s.Repos.Blocked.DeleteBlockedDate(ctx, s.DB, ownerID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.Cache.InvalidateOwner(ctx, ownerID)
	return nil
}

func (s *DiaryService) GetSettings(ctx context.Context, ownerID int64) (Settings, error) {
	rows, err := s.Repos.Settings.ListSettings(ctx, s.DB, ownerID)
	if err != nil {
		return Settings{}, err
	}
	return ParseSettings(rows), nil
}

func (s *DiaryService) UpdateSettings(ctx context.Context, ownerID int64, values map[string]string) error {
	for key, value := range values {
		if err := s.Repos.Settings.UpsertSetting(ctx, s.DB, ownerID, key, value); err != nil {
			return err
		}
	}
	s.Cache.InvalidateOwner(ctx, ownerID)
	return nil
}

func (s *DiaryService) ListClients(ctx context.Context, ownerID int64) ([]models.Client, error) {
	return s.Repos.Clients.ListClients(ctx, s.DB, ownerID)
}

func validateScheduleRow(r *models.ScheduleRow) error {
	if _, err := availability.ParseDate(r.CycleStartDate); err != nil {
		return err
	}
	if r.WeekNumber != 1 && r.WeekNumber != 2 {
		return errors.New("week_number must be 1 or 2")
	}
	if r.DayOfWeek < 1 || r.DayOfWeek > 7 {
		return errors.New("day_of_week must be 1..7")
	}
	return validateTimeRange(r.StartTime, r.EndTime)
}

func validateTimeRange(startStr, endStr string) error {
	start, err := availability.ParseHHMM(startStr)
	if err != nil {
		return err
	}
	end, err := availability.ParseHHMM(endStr)
	if err != nil {
		return err
	}
	if end <= start {
		return errors.New("end_time must be after start_time")
	}
	return nil
}
