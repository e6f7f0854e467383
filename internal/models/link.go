package models

import "time"

// Link represents the links table: a ward document link shown on the
// dashboard (protocols, consent forms, referral documents).
type Link struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	URL         string    `gorm:"column:url;not null;size:2048" json:"url"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Link model
func (Link) TableName() string {
	return "links"
}
