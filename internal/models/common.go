// internal/models/common.go
package models

// Person is a name/phone pair used for the booker and the contingent leader.
type Person struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}

// NamedRef is an id/name pair pointing into the master region reference data.
type NamedRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Address is the resolved city/province pair of a contingent.
type Address struct {
	City     NamedRef `bson:"city" json:"city"`
	Province NamedRef `bson:"province" json:"province"`
}
