// internal/models/booking.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleType string

const (
	VehicleBus     VehicleType = "BUS"
	VehicleMiniBus VehicleType = "MINI_BUS"
	VehicleElf     VehicleType = "ELF"
	VehicleCar     VehicleType = "CAR"
	VehicleTruck   VehicleType = "TRUCK"
)

// Valid reports whether v is one of the known vehicle types.
func (v VehicleType) Valid() bool {
	switch v {
	case VehicleBus, VehicleMiniBus, VehicleElf, VehicleCar, VehicleTruck:
		return true
	}
	return false
}

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusApproved  BookingStatus = "APPROVED"
	StatusOnProcess BookingStatus = "ON_PROCESS"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusOnProcess:
		return true
	}
	return false
}

type Booking struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Booker              Person             `bson:"booker" json:"booker"`
	ContingentName      string             `bson:"contingentName" json:"contingentName"`
	ContingentAddress   Address            `bson:"contingentAddress" json:"contingentAddress"`
	ContingentLeader    Person             `bson:"contingentLeader" json:"contingentLeader"`
	ContingentVehicle   VehicleType        `bson:"contingentVehicle" json:"contingentVehicle"`
	PersonCount         int                `bson:"personCount" json:"personCount"`
	RegionCoordinatorID primitive.ObjectID `bson:"regionCoordinatorId" json:"regionCoordinatorId"`
	BookingCode         string             `bson:"bookingCode" json:"bookingCode"`
	Status              BookingStatus      `bson:"status" json:"status"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Resolved by $lookup on reads, never stored.
	RegionCoordinator *RegionCoordinator `bson:"regionCoordinator,omitempty" json:"regionCoordinator,omitempty"`
}

// ContingentNameOption is the projection returned by the contingent name autocomplete.
type ContingentNameOption struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	ContingentName string             `bson:"contingentName" json:"contingentName"`
}

// BookingPage is one page of the booking list. NextSkip is nil on the last page.
type BookingPage struct {
	Items    []Booking `json:"items"`
	NextSkip *int64    `json:"nextSkip"`
}
