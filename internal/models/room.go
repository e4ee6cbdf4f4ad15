package models

import "time"

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"nom" validate:"required,min=1,max=100"`
	Capacity  int       `gorm:"not null" json:"capacite" validate:"required,min=1"`
	Equipment string    `json:"equipements"` // comma-joined tag list
	Location  string    `json:"localisation"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Room) TableName() string {
	return "salles"
}
