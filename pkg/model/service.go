package model

// Service is an immutable catalog entry describing a treatment on offer.
// Slots is the fixed daily template of bookable time labels; bookings never
// mutate the stored document.
type Service struct {
	ID    string   `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Slots []string `json:"slots" bson:"slots" validate:"required,min=1,dive,min=1,max=60"`
	Price int64    `json:"price" bson:"price" validate:"required,min=1"`
}

// ServiceAvailability is the projection returned by the availability engine:
// the catalog entry with Slots reduced to the ones still open on a given date.
type ServiceAvailability struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
	Price int64    `json:"price"`
}
