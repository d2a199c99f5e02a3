// internal/service/booking_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contingent-booking-api-server/internal/models"
	"contingent-booking-api-server/internal/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// Booking change events pushed to connected admin clients.
const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
)

type BookingStore interface {
	CountByCodePrefix(ctx context.Context, prefix string) (int64, error)
	Insert(ctx context.Context, b *models.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	List(ctx context.Context, skip, limit int64) ([]models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	FilterContingentName(ctx context.Context, name string) ([]models.ContingentNameOption, error)
}

type CoordinatorStore interface {
	All(ctx context.Context) ([]models.RegionCoordinator, error)
	SearchByName(ctx context.Context, q string) ([]models.RegionCoordinator, error)
	SearchByPhone(ctx context.Context, q string) ([]models.RegionCoordinator, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RegionCoordinator, error)
	Insert(ctx context.Context, c *models.RegionCoordinator) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type RegionStore interface {
	AllProvinces(ctx context.Context) ([]models.Province, error)
	ProvinceByID(ctx context.Context, id string) (*models.Province, error)
}

// Notifier receives booking change events. The WebSocket hub implements it.
type Notifier interface {
	Notify(event string, bookingID primitive.ObjectID)
}

type BookingService struct {
	bookings     BookingStore
	coordinators CoordinatorStore
	regions      RegionStore
	notifier     Notifier
	codeRetries  int
	now          func() time.Time
}

// NewBookingService wires the booking service. notifier may be nil.
func NewBookingService(bookings BookingStore, coordinators CoordinatorStore, regions RegionStore, notifier Notifier, codeRetries int) *BookingService {
	if codeRetries < 1 {
		codeRetries = 1
	}
	return &BookingService{
		bookings:     bookings,
		coordinators: coordinators,
		regions:      regions,
		notifier:     notifier,
		codeRetries:  codeRetries,
		now:          time.Now,
	}
}

func (s *BookingService) notify(event string, id primitive.ObjectID) {
	if s.notifier != nil {
		s.notifier.Notify(event, id)
	}
}

// parseBookingID treats a malformed id like a missing booking.
func parseBookingID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrBookingNotFound
	}
	return oid, nil
}

// resolveAddress checks that city is a regency of province and returns the
// reference names for both.
func (s *BookingService) resolveAddress(ctx context.Context, province, city RegionRefInput) (models.Address, error) {
	p, err := s.regions.ProvinceByID(ctx, province.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Address{}, ValidationError{Field: "province.id", Msg: fmt.Sprintf("unknown province %q", province.ID)}
		}
		return models.Address{}, fmt.Errorf("resolve province: %w", err)
	}

	r, ok := p.FindRegency(city.ID)
	if !ok {
		return models.Address{}, ValidationError{
			Field: "city.id",
			Msg:   fmt.Sprintf("city %q does not belong to province %q", city.ID, p.ID),
		}
	}

	return models.Address{
		City:     models.NamedRef{ID: r.ID, Name: r.Name},
		Province: models.NamedRef{ID: p.ID, Name: p.Name},
	}, nil
}

// connectOrCreateCoordinator links the coordinator with in.ID when it exists,
// otherwise creates it (with in.ID when given). created reports whether this
// call inserted the coordinator.
func (s *BookingService) connectOrCreateCoordinator(ctx context.Context, in CoordinatorInput) (coordinator *models.RegionCoordinator, created bool, err error) {
	coordinator = &models.RegionCoordinator{
		Name:      in.Name,
		Phone:     in.Phone,
		CreatedAt: s.now(),
	}

	if in.ID != "" {
		oid, err := primitive.ObjectIDFromHex(in.ID)
		if err != nil {
			return nil, false, ValidationError{Field: "regionCoordinator.id", Msg: "must be a 24 character hex id"}
		}

		existing, err := s.coordinators.FindByID(ctx, oid)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, fmt.Errorf("find region coordinator: %w", err)
		}
		coordinator.ID = oid
	}

	if err := s.coordinators.Insert(ctx, coordinator); err != nil {
		// Someone created the same id in between.
		if errors.Is(err, repository.ErrDuplicateKey) && !coordinator.ID.IsZero() {
			existing, err := s.coordinators.FindByID(ctx, coordinator.ID)
			return existing, false, err
		}
		return nil, false, fmt.Errorf("create region coordinator: %w", err)
	}

	log.Debug().Str("coordinator_id", coordinator.ID.Hex()).Msg("region coordinator created")
	return coordinator, true, nil
}

// discardCoordinator removes a coordinator created for a booking write that
// then failed. Failures are only logged.
func (s *BookingService) discardCoordinator(ctx context.Context, coordinator *models.RegionCoordinator, created bool) {
	if !created {
		return
	}
	if err := s.coordinators.Delete(ctx, coordinator.ID); err != nil {
		log.Warn().Err(err).Str("coordinator_id", coordinator.ID.Hex()).Msg("failed to remove unused region coordinator")
	}
}

// Create stores a new booking and derives its booking code from the
// contingent name, the city name and the count of bookings sharing that prefix.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*models.Booking, error) {
	entry, err := in.validate()
	if err != nil {
		return nil, err
	}

	address, err := s.resolveAddress(ctx, in.Province, in.City)
	if err != nil {
		return nil, err
	}

	prefix := BookingCodePrefix(entry.Name, address.City.Name)
	count, err := s.bookings.CountByCodePrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	coordinator, created, err := s.connectOrCreateCoordinator(ctx, in.RegionCoordinator)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &models.Booking{
		Booker:              models.Person{Name: in.Booker.Name, Phone: in.Booker.Phone},
		ContingentName:      entry.Name,
		ContingentAddress:   address,
		ContingentLeader:    models.Person{Name: entry.Coordinator.Name, Phone: entry.Coordinator.Phone},
		ContingentVehicle:   entry.VehicleType,
		PersonCount:         entry.PersonCount,
		RegionCoordinatorID: coordinator.ID,
		Status:              models.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// The unique index on bookingCode rejects a sequence taken by a concurrent
	// create (or left behind by a deleted booking); move to the next one.
	for attempt := 0; attempt < s.codeRetries; attempt++ {
		booking.ID = primitive.NilObjectID
		booking.BookingCode = FormatBookingCode(prefix, count+1+int64(attempt))

		err = s.bookings.Insert(ctx, booking)
		if err == nil {
			booking.RegionCoordinator = coordinator
			log.Info().
				Str("booking_id", booking.ID.Hex()).
				Str("booking_code", booking.BookingCode).
				Msg("booking created")
			s.notify(EventBookingCreated, booking.ID)
			return booking, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			s.discardCoordinator(ctx, coordinator, created)
			return nil, fmt.Errorf("insert booking: %w", err)
		}
		log.Warn().Str("booking_code", booking.BookingCode).Int("attempt", attempt+1).Msg("booking code taken, retrying")
	}

	s.discardCoordinator(ctx, coordinator, created)
	return nil, ErrBookingCodeExhausted
}

// Update replaces the editable fields of an existing booking. The booking
// code is never regenerated.
func (s *BookingService) Update(ctx context.Context, id string, in BookingInput) (*models.Booking, error) {
	oid, err := parseBookingID(id)
	if err != nil {
		return nil, err
	}

	entry, err := in.validate()
	if err != nil {
		return nil, err
	}

	if _, err := s.bookings.FindByID(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	address, err := s.resolveAddress(ctx, in.Province, in.City)
	if err != nil {
		return nil, err
	}

	coordinator, created, err := s.connectOrCreateCoordinator(ctx, in.RegionCoordinator)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Update(ctx, oid, bson.M{
		"booker":              models.Person{Name: in.Booker.Name, Phone: in.Booker.Phone},
		"contingentName":      entry.Name,
		"contingentAddress":   address,
		"contingentLeader":    models.Person{Name: entry.Coordinator.Name, Phone: entry.Coordinator.Phone},
		"contingentVehicle":   entry.VehicleType,
		"personCount":         entry.PersonCount,
		"regionCoordinatorId": coordinator.ID,
		"updatedAt":           s.now(),
	})
	if err != nil {
		s.discardCoordinator(ctx, coordinator, created)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	booking.RegionCoordinator = coordinator
	s.notify(EventBookingUpdated, booking.ID)
	return booking, nil
}

// SetStatus moves a booking to another status.
func (s *BookingService) SetStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	oid, err := parseBookingID(id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", status)}
	}

	booking, err := s.bookings.Update(ctx, oid, bson.M{"status": status, "updatedAt": s.now()})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	if coordinator, err := s.coordinators.FindByID(ctx, booking.RegionCoordinatorID); err == nil {
		booking.RegionCoordinator = coordinator
	}
	s.notify(EventBookingUpdated, booking.ID)
	return booking, nil
}

// Delete removes a booking and returns it.
func (s *BookingService) Delete(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := parseBookingID(id)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Delete(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	log.Info().Str("booking_id", booking.ID.Hex()).Str("booking_code", booking.BookingCode).Msg("booking deleted")
	s.notify(EventBookingDeleted, booking.ID)
	return booking, nil
}

// GetAll returns one page of bookings. A zero limit means DefaultPageLimit.
// It reads limit+1 rows to know whether another page exists.
func (s *BookingService) GetAll(ctx context.Context, limit, skip int64) (*models.BookingPage, error) {
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit {
		return nil, ValidationError{Field: "limit", Msg: fmt.Sprintf("must be between 1 and %d", MaxPageLimit)}
	}
	if skip < 0 {
		return nil, ValidationError{Field: "skip", Msg: "must not be negative"}
	}

	rows, err := s.bookings.List(ctx, skip, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	page := &models.BookingPage{Items: rows}
	if int64(len(rows)) > limit {
		page.Items = rows[:limit]
		next := skip + limit
		page.NextSkip = &next
	}
	return page, nil
}

// ByID returns one booking with its region coordinator.
func (s *BookingService) ByID(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := parseBookingID(id)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}

// FilterContingentName backs the contingent name autocomplete.
func (s *BookingService) FilterContingentName(ctx context.Context, name string) ([]models.ContingentNameOption, error) {
	return s.bookings.FilterContingentName(ctx, name)
}
