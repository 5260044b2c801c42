package model

import "time"

type Doctor struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Specialty string    `json:"specialty" bson:"specialty" validate:"required,min=2,max=100"`
	ImageURL  string    `json:"img,omitempty" bson:"img,omitempty" validate:"omitempty,url"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
