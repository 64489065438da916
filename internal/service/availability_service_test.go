package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"diary-service/internal/availability"
	"diary-service/internal/models"
	"diary-service/internal/repository"
)

// stubStore backs every repository interface with in-memory data so the
// services can be exercised without a database.
type stubStore struct {
	services map[int64]models.Service
	schedule []models.ScheduleRow
	events   []models.CalendarEvent
	bookings []models.Booking
	blocked  map[string]bool
	settings []models.SettingRow
}

func newStubStore() *stubStore {
	return &stubStore{
		services: map[int64]models.Service{},
		blocked:  map[string]bool{},
	}
}

func (s *stubStore) GetService(ctx context.Context, q repository.Querier, ownerID, serviceID int64) (*models.Service, error) {
	svc, ok := s.services[serviceID]
	if !ok || svc.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	return &svc, nil
}

func (s *stubStore) ListServices(ctx context.Context, q repository.Querier, ownerID int64, activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range s.services {
		if svc.OwnerID == ownerID && (!activeOnly || svc.Active) {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *stubStore) InsertService(ctx context.Context, q repository.Querier, svc *models.Service) error {
	svc.ID = int64(len(s.services) + 1)
	s.services[svc.ID] = *svc
	return nil
}

func (s *stubStore) UpdateService(ctx context.Context, q repository.Querier, svc *models.Service) (int64, error) {
	if _, ok := s.services[svc.ID]; !ok {
		return 0, pgx.ErrNoRows
	}
	s.services[svc.ID] = *svc
	return svc.ID, nil
}

func (s *stubStore) DeleteService(ctx context.Context, q repository.Querier, ownerID, serviceID int64) (int64, error) {
	if _, ok := s.services[serviceID]; !ok {
		return 0, nil
	}
	delete(s.services, serviceID)
	return 1, nil
}

func (s *stubStore) ListScheduleRows(ctx context.Context, q repository.Querier, ownerID int64) ([]models.ScheduleRow, error) {
	var out []models.ScheduleRow
	for _, r := range s.schedule {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) InsertScheduleRow(ctx context.Context, q repository.Querier, r *models.ScheduleRow) error {
	r.ID = int64(len(s.schedule) + 1)
	s.schedule = append(s.schedule, *r)
	return nil
}

func (s *stubStore) DeleteScheduleRow(ctx context.Context, q repository.Querier, ownerID, rowID int64) (int64, error) {
	return 0, nil
}

func (s *stubStore) ListEventsOnDate(ctx context.Context, q repository.Querier, ownerID int64, date string) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	for _, e := range s.events {
		if e.OwnerID == ownerID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubStore) InsertEvent(ctx context.Context, q repository.Querier, e *models.CalendarEvent) error {
	e.ID = int64(len(s.events) + 1)
	s.events = append(s.events, *e)
	return nil
}

func (s *stubStore) DeleteEvent(ctx context.Context, q repository.Querier, ownerID, eventID int64) (int64, error) {
	return 0, nil
}

func (s *stubStore) ListBookingsOnDate(ctx context.Context, q repository.Querier, ownerID int64, date string, statuses []string) ([]models.Booking, error) {
	allowed := map[string]bool{}
	for _, st := range statuses {
		allowed[st] = true
	}
	var out []models.Booking
	for _, b := range s.bookings {
		if b.OwnerID == ownerID && b.Date == date && allowed[b.Status] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubStore) ListBookings(ctx context.Context, q repository.Querier, ownerID int64, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.bookings {
		if b.OwnerID == ownerID && b.Date >= from && b.Date <= to {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubStore) InsertBooking(ctx context.Context, q repository.Querier, b *models.Booking) error {
	b.ID = int64(len(s.bookings) + 1)
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *stubStore) GetBooking(ctx context.Context, q repository.Querier, ownerID, bookingID int64) (*models.Booking, error) {
	for _, b := range s.bookings {
		if b.ID == bookingID && b.OwnerID == ownerID {
			return &b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubStore) UpdateBookingStatus(ctx context.Context, q repository.Querier, ownerID, bookingID int64, status string) (int64, error) {
	for i, b := range s.bookings {
		if b.ID == bookingID && b.OwnerID == ownerID {
			s.bookings[i].Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubStore) IsDateBlocked(ctx context.Context, q repository.Querier, ownerID int64, date string) (bool, error) {
	return s.blocked[date], nil
}

func (s *stubStore) ListBlockedDates(ctx context.Context, q repository.Querier, ownerID int64) ([]models.BlockedDate, error) {
	return nil, nil
}

func (s *stubStore) InsertBlockedDate(ctx context.Context, q repository.Querier, d *models.BlockedDate) error {
	s.blocked[d.Date] = true
	return nil
}

func (s *stubStore) DeleteBlockedDate(ctx context.Context, q repository.Querier, ownerID, id int64) (int64, error) {
	return 0, nil
}

func (s *stubStore) ListSettings(ctx context.Context, q repository.Querier, ownerID int64) ([]models.SettingRow, error) {
	return s.settings, nil
}

func (s *stubStore) UpsertSetting(ctx context.Context, q repository.Querier, ownerID int64, key, value string) error {
	s.settings = append(s.settings, models.SettingRow{OwnerID: ownerID, Key: key, Value: value})
	return nil
}

func (s *stubStore) GetClientByPhone(ctx context.Context, q repository.Querier, ownerID int64, phone string) (*models.Client, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubStore) InsertClient(ctx context.Context, q repository.Querier, c *models.Client) error {
	c.ID = 1
	return nil
}

func (s *stubStore) ListClients(ctx context.Context, q repository.Querier, ownerID int64) ([]models.Client, error) {
	return nil, nil
}

func newTestAvailability(store *stubStore) *AvailabilityService {
	repos := Repos{
		Services: store,
		Schedule: store,
		Events:   store,
		Bookings: store,
		Blocked:  store,
		Settings: store,
	}
	return NewAvailabilityService(nil, repos, nil, zap.NewNop())
}

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := availability.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestAvailableSlotsUnknownService(t *testing.T) {
	svc := newTestAvailability(newStubStore())
	_, err := svc.AvailableSlots(context.Background(), 1, 42, testDate(t, "2025-01-08"), nil)
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("err = %v, want ErrServiceNotFound", err)
	}
}

func TestAvailableSlotsOpenDay(t *testing.T) {
	store := newStubStore()
	store.services[1] = models.Service{ID: 1, OwnerID: 1, Name: "Consultation", DurationMins: 60, Active: true}
	svc := newTestAvailability(store)

	res, err := svc.AvailableSlots(context.Background(), 1, 1, testDate(t, "2025-01-08"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Slots) != 17 || res.Slots[0] != "09:00" || res.Slots[16] != "17:00" {
		t.Errorf("slots = %v, want 17 slots 09:00..17:00", res.Slots)
	}
}

func TestAvailableSlotsBlockedDate(t *testing.T) {
	store := newStubStore()
	store.services[1] = models.Service{ID: 1, OwnerID: 1, DurationMins: 60, Active: true}
	store.blocked["2025-01-08"] = true
	svc := newTestAvailability(store)

	res, err := svc.AvailableSlots(context.Background(), 1, 1, testDate(t, "2025-01-08"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Slots) != 0 || res.Message != "Date is blocked" {
		t.Errorf("got %+v, want empty slots with blocked message", res)
	}
}

func TestAvailableSlotsCancelledBookingsIgnored(t *testing.T) {
	store := newStubStore()
	store.services[1] = models.Service{ID: 1, OwnerID: 1, DurationMins: 60, Active: true}
	store.bookings = []models.Booking{
		{ID: 1, OwnerID: 1, Date: "2025-01-08", StartTime: "10:00", EndTime: "11:00", Status: models.BookingCancelled},
		{ID: 2, OwnerID: 1, Date: "2025-01-08", StartTime: "15:00", EndTime: "16:00", Status: models.BookingPending},
	}
	svc := newTestAvailability(store)

	res, err := svc.AvailableSlots(context.Background(), 1, 1, testDate(t, "2025-01-08"), nil)
	if err != nil {
		t.Fatal(err)
	}
	has := func(slot string) bool {
		for _, s := range res.Slots {
			if s == slot {
				return true
			}
		}
		return false
	}
	if !has("10:00") {
		t.Error("cancelled booking must not block 10:00")
	}
	if has("15:00") || has("14:30") || has("15:30") {
		t.Errorf("pending booking must block its window, slots = %v", res.Slots)
	}
}

func TestAvailableSlotsUsesOwnerSettings(t *testing.T) {
	store := newStubStore()
	store.services[1] = models.Service{ID: 1, OwnerID: 1, DurationMins: 30, Active: true}
	store.settings = []models.SettingRow{
		{OwnerID: 1, Key: "work_hours_start", Value: "10:00"},
		{OwnerID: 1, Key: "work_hours_end", Value: "12:00"},
	}
	svc := newTestAvailability(store)

	res, err := svc.AvailableSlots(context.Background(), 1, 1, testDate(t, "2025-01-08"), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"10:00", "10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(res.Slots, want) {
		t.Errorf("slots = %v, want %v", res.Slots, want)
	}
}

func TestAvailableSlotsRecurringBlock(t *testing.T) {
	store := newStubStore()
	store.services[1] = models.Service{ID: 1, OwnerID: 1, DurationMins: 60, Active: true}
	store.schedule = []models.ScheduleRow{
		{ID: 1, OwnerID: 1, CycleStartDate: "2025-01-06", WeekNumber: 1, DayOfWeek: 3, StartTime: "12:00", EndTime: "14:00"},
	}
	svc := newTestAvailability(store)

	res, err := svc.AvailableSlots(context.Background(), 1, 1, testDate(t, "2025-01-08"), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range res.Slots {
		if s >= "11:30" && s < "14:00" {
			t.Errorf("slot %s falls inside the recurring block", s)
		}
	}
	if len(res.Slots) != 12 {
		t.Errorf("got %d slots (%v), want 12", len(res.Slots), res.Slots)
	}
}

func TestAvailableSlotsSameDayLeadFilter(t *testing.T) {
	store := newStubStore()
	store.services[1] = models.Service{ID: 1, OwnerID: 1, DurationMins: 60, Active: true}
	svc := newTestAvailability(store)

	now := time.Date(2025, 1, 8, 16, 50, 0, 0, time.UTC)
	res, err := svc.AvailableSlots(context.Background(), 1, 1, testDate(t, "2025-01-08"), &now)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Slots) != 0 {
		t.Errorf("slots = %v, want empty with now=16:50", res.Slots)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	store := newStubStore()
	store.bookings = []models.Booking{
		{ID: 1, OwnerID: 1, Date: "2025-01-08", StartTime: "10:00", EndTime: "11:00", Status: models.BookingPending},
	}
	avail := newTestAvailability(store)
	repos := Repos{Bookings: store, Clients: store}
	book := NewBookingService(nil, repos, avail, nil, zap.NewNop())

	if err := book.UpdateStatus(context.Background(), 1, 1, "postponed"); !errors.Is(err, ErrBadStatus) {
		t.Errorf("err = %v, want ErrBadStatus", err)
	}
	if err := book.UpdateStatus(context.Background(), 1, 99, models.BookingConfirmed); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("err = %v, want ErrBookingNotFound", err)
	}
	if err := book.UpdateStatus(context.Background(), 1, 1, models.BookingConfirmed); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if store.bookings[0].Status != models.BookingConfirmed {
		t.Errorf("status = %s, want confirmed", store.bookings[0].Status)
	}
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	avail := newTestAvailability(newStubStore())
	book := NewBookingService(nil, Repos{}, avail, nil, zap.NewNop())

	_, err := book.CreateBooking(context.Background(), CreateBookingParams{
		OwnerID: 1, ServiceID: 1, Date: "tomorrow", StartTime: "10:00", ClientName: "A",
	})
	if !errors.Is(err, ErrBadInput) {
		t.Errorf("bad date: err = %v, want ErrBadInput", err)
	}
	_, err = book.CreateBooking(context.Background(), CreateBookingParams{
		OwnerID: 1, ServiceID: 1, Date: "2025-01-08", StartTime: "ten", ClientName: "A",
	})
	if !errors.Is(err, ErrBadInput) {
		t.Errorf("bad time: err = %v, want ErrBadInput", err)
	}
}
