package service

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"contingent-booking-api-server/internal/models"
	"contingent-booking-api-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores mirroring the mongo repositories.

type fakeBookings struct {
	mu        sync.Mutex
	rows      []models.Booking
	inserts   int
	insertErr error
	updateErr error
}

func (f *fakeBookings) CountByCodePrefix(_ context.Context, prefix string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	re := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `\d+$`)
	var n int64
	for _, b := range f.rows {
		if re.MatchString(b.BookingCode) {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookings) Insert(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, existing := range f.rows {
		if existing.BookingCode == b.BookingCode {
			return repository.ErrDuplicateKey
		}
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	f.rows = append(f.rows, *b)
	f.inserts++
	return nil
}

func (f *fakeBookings) index(id primitive.ObjectID) int {
	for i, b := range f.rows {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeBookings) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	b := f.rows[i]
	return &b, nil
}

// List returns the newest rows first; limit 0 means all.
func (f *fakeBookings) List(_ context.Context, skip, limit int64) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for i := len(f.rows) - 1; i >= 0; i-- {
		out = append(out, f.rows[i])
	}
	if skip >= int64(len(out)) {
		return []models.Booking{}, nil
	}
	out = out[skip:]
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookings) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	i := f.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	b := &f.rows[i]
	for k, v := range fields {
		switch k {
		case "booker":
			b.Booker = v.(models.Person)
		case "contingentName":
			b.ContingentName = v.(string)
		case "contingentAddress":
			b.ContingentAddress = v.(models.Address)
		case "contingentLeader":
			b.ContingentLeader = v.(models.Person)
		case "contingentVehicle":
			b.ContingentVehicle = v.(models.VehicleType)
		case "personCount":
			b.PersonCount = v.(int)
		case "regionCoordinatorId":
			b.RegionCoordinatorID = v.(primitive.ObjectID)
		case "status":
			b.Status = v.(models.BookingStatus)
		case "bookingCode":
			b.BookingCode = v.(string)
		}
	}
	out := *b
	return &out, nil
}

func (f *fakeBookings) Delete(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	b := f.rows[i]
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return &b, nil
}

func (f *fakeBookings) FilterContingentName(_ context.Context, name string) ([]models.ContingentNameOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.ContingentNameOption{}
	for _, b := range f.rows {
		if strings.Contains(strings.ToLower(b.ContingentName), strings.ToLower(name)) {
			out = append(out, models.ContingentNameOption{ID: b.ID, ContingentName: b.ContingentName})
		}
	}
	return out, nil
}

type fakeCoordinators struct {
	mu   sync.Mutex
	rows []models.RegionCoordinator
}

func (f *fakeCoordinators) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeCoordinators) All(context.Context) ([]models.RegionCoordinator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RegionCoordinator{}, f.rows...), nil
}

func (f *fakeCoordinators) search(match func(models.RegionCoordinator) bool) []models.RegionCoordinator {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.RegionCoordinator{}
	for _, c := range f.rows {
		if match(c) && len(out) < repository.CoordinatorSearchLimit {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeCoordinators) SearchByName(_ context.Context, q string) ([]models.RegionCoordinator, error) {
	return f.search(func(c models.RegionCoordinator) bool { return strings.Contains(c.Name, q) }), nil
}

func (f *fakeCoordinators) SearchByPhone(_ context.Context, q string) ([]models.RegionCoordinator, error) {
	return f.search(func(c models.RegionCoordinator) bool { return strings.Contains(c.Phone, q) }), nil
}

func (f *fakeCoordinators) FindByID(_ context.Context, id primitive.ObjectID) (*models.RegionCoordinator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCoordinators) Insert(_ context.Context, c *models.RegionCoordinator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	for _, existing := range f.rows {
		if existing.ID == c.ID {
			return repository.ErrDuplicateKey
		}
	}
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeCoordinators) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.rows {
		if c.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeRegions struct {
	provinces []models.Province
	calls     int
}

func (f *fakeRegions) AllProvinces(context.Context) ([]models.Province, error) {
	f.calls++
	return f.provinces, nil
}

func (f *fakeRegions) ProvinceByID(_ context.Context, id string) (*models.Province, error) {
	for _, p := range f.provinces {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newFakeRegions() *fakeRegions {
	return &fakeRegions{provinces: []models.Province{
		{
			ID:   "35",
			Name: "JAWA TIMUR",
			Regencies: []models.Regency{
				{ID: "3525", Name: "KABUPATEN GRESIK"},
				{ID: "3578", Name: "KOTA SURABAYA"},
			},
		},
		{
			ID:        "33",
			Name:      "JAWA TENGAH",
			Regencies: []models.Regency{{ID: "3374", Name: "KOTA SEMARANG"}},
		},
	}}
}

type recordedEvent struct {
	event string
	id    primitive.ObjectID
}

type fakeNotifier struct {
	events []recordedEvent
}

func (f *fakeNotifier) Notify(event string, id primitive.ObjectID) {
	f.events = append(f.events, recordedEvent{event: event, id: id})
}
