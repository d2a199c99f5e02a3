package service

import (
	"fmt"
	"strings"

	"contingent-booking-api-server/internal/models"
)

type PersonInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CoordinatorInput links an existing region coordinator by ID or creates one.
type CoordinatorInput struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type RegionRefInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ContingentInput struct {
	Name        string             `json:"name"`
	PersonCount int                `json:"personCount"`
	VehicleType models.VehicleType `json:"vehicleType"`
	Coordinator PersonInput        `json:"coordinator"`
}

// BookingInput is the payload of booking create and update. It carries no
// binding tags: every field is checked by validate, after the contingent
// count, so the multiple contingent rejection wins over any field error.
type BookingInput struct {
	Booker            PersonInput       `json:"booker"`
	RegionCoordinator CoordinatorInput  `json:"regionCoordinator"`
	Province          RegionRefInput    `json:"province"`
	City              RegionRefInput    `json:"city"`
	Contingent        []ContingentInput `json:"contingent"`
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return ValidationError{Field: field, Msg: "is required"}
	}
	return nil
}

// validate checks the input and returns the single contingent entry.
func (in BookingInput) validate() (ContingentInput, error) {
	switch {
	case len(in.Contingent) == 0:
		return ContingentInput{}, ValidationError{Field: "contingent", Msg: "at least one contingent is required"}
	case len(in.Contingent) > 1:
		return ContingentInput{}, ErrMultipleContingents
	}

	entry := in.Contingent[0]
	checks := []struct{ field, value string }{
		{"booker.name", in.Booker.Name},
		{"booker.phone", in.Booker.Phone},
		{"regionCoordinator.name", in.RegionCoordinator.Name},
		{"regionCoordinator.phone", in.RegionCoordinator.Phone},
		{"province.id", in.Province.ID},
		{"city.id", in.City.ID},
		{"contingent[0].name", entry.Name},
		{"contingent[0].coordinator.name", entry.Coordinator.Name},
		{"contingent[0].coordinator.phone", entry.Coordinator.Phone},
	}
	for _, c := range checks {
		if err := requireText(c.field, c.value); err != nil {
			return ContingentInput{}, err
		}
	}

	if entry.PersonCount <= 0 {
		return ContingentInput{}, ValidationError{Field: "contingent[0].personCount", Msg: "must be positive"}
	}
	if !entry.VehicleType.Valid() {
		return ContingentInput{}, ValidationError{
			Field: "contingent[0].vehicleType",
			Msg:   fmt.Sprintf("unknown vehicle type %q", entry.VehicleType),
		}
	}

	entry.Name = strings.TrimSpace(entry.Name)
	return entry, nil
}

// BookingCodePrefix is the part of the booking code shared by every booking
// of the same contingent and city.
func BookingCodePrefix(contingentName, cityName string) string {
	return fmt.Sprintf("%s_%s_", contingentName, cityName)
}

// FormatBookingCode appends the zero-padded sequence to prefix.
func FormatBookingCode(prefix string, seq int64) string {
	return fmt.Sprintf("%s%02d", prefix, seq)
}
