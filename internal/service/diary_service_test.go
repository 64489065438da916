package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"diary-service/internal/availability"
	"diary-service/internal/models"
)

// recordCache counts invalidations so mutations can be checked against the
// cached-slot lifecycle.
type recordCache struct {
	days   []string
	owners []int64
}

func (r *recordCache) Get(ctx context.Context, ownerID, serviceID int64, date string) (*availability.Result, bool) {
	return nil, false
}

func (r *recordCache) Set(ctx context.Context, ownerID, serviceID int64, date string, res availability.Result) {
}

func (r *recordCache) InvalidateDay(ctx context.Context, ownerID int64, date string) {
	r.days = append(r.days, date)
}

func (r *recordCache) InvalidateOwner(ctx context.Context, ownerID int64) {
	r.owners = append(r.owners, ownerID)
}

func newTestDiary(store *stubStore, rc *recordCache) *DiaryService {
	repos := Repos{
		Services: store,
		Schedule: store,
		Events:   store,
		Bookings: store,
		Blocked:  store,
		Settings: store,
		Clients:  store,
	}
	return NewDiaryService(nil, repos, rc, zap.NewNop())
}

func TestUpdateServiceInvalidatesCache(t *testing.T) {
	store := newStubStore()
	store.services[1] = models.Service{ID: 1, OwnerID: 1, Name: "Consultation", DurationMins: 60, Active: true}
	rc := &recordCache{}
	diary := newTestDiary(store, rc)

	err := diary.UpdateService(context.Background(), &models.Service{
		ID: 1, OwnerID: 1, Name: "Consultation", DurationMins: 90, Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rc.owners) != 1 || rc.owners[0] != 1 {
		t.Errorf("owner invalidations = %v, want [1]", rc.owners)
	}
}

func TestUpdateServiceNotFoundNoInvalidation(t *testing.T) {
	rc := &recordCache{}
	diary := newTestDiary(newStubStore(), rc)

	err := diary.UpdateService(context.Background(), &models.Service{
		ID: 99, OwnerID: 1, Name: "Ghost", DurationMins: 30,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(rc.owners) != 0 {
		t.Errorf("owner invalidations = %v, want none", rc.owners)
	}
}

func TestDeleteServiceInvalidatesCache(t *testing.T) {
	store := newStubStore()
	store.services[1] = models.Service{ID: 1, OwnerID: 1, Name: "Consultation", DurationMins: 60, Active: true}
	rc := &recordCache{}
	diary := newTestDiary(store, rc)

	if err := diary.DeleteService(context.Background(), 1, 1); err != nil {
		t.Fatal(err)
	}
	if len(rc.owners) != 1 || rc.owners[0] != 1 {
		t.Errorf("owner invalidations = %v, want [1]", rc.owners)
	}

	if err := diary.DeleteService(context.Background(), 1, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	if len(rc.owners) != 1 {
		t.Errorf("missing service must not invalidate, got %v", rc.owners)
	}
}

func TestCreateScheduleRowInvalidatesCache(t *testing.T) {
	rc := &recordCache{}
	diary := newTestDiary(newStubStore(), rc)

	err := diary.CreateScheduleRow(context.Background(), &models.ScheduleRow{
		OwnerID: 1, CycleStartDate: "2025-01-06", WeekNumber: 1, DayOfWeek: 3,
		StartTime: "12:00", EndTime: "14:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rc.owners) != 1 {
		t.Errorf("owner invalidations = %v, want one", rc.owners)
	}
}

func TestBlockDateInvalidatesDay(t *testing.T) {
	rc := &recordCache{}
	diary := newTestDiary(newStubStore(), rc)

	err := diary.BlockDate(context.Background(), &models.BlockedDate{OwnerID: 1, Date: "2025-01-08"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rc.days) != 1 || rc.days[0] != "2025-01-08" {
		t.Errorf("day invalidations = %v, want [2025-01-08]", rc.days)
	}
}
