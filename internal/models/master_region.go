// internal/models/master_region.go
package models

// Regency is a city or kabupaten. It belongs to exactly one province.
type Regency struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Province is a document of the master_region reference collection.
type Province struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Regencies []Regency `bson:"regencies" json:"regencies"`
}

// FindRegency returns the regency with the given id, if it belongs to p.
func (p Province) FindRegency(id string) (Regency, bool) {
	for _, r := range p.Regencies {
		if r.ID == id {
			return r, true
		}
	}
	return Regency{}, false
}
