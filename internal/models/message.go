package models

import "time"

// Message is an inbound inquiry about an ad. Append-only: never updated
// or deleted. RecipientID is a denormalized copy of the ad's owner at
// send time and is not re-resolved if ownership later changes.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AdID        uint      `gorm:"index;not null" json:"ad_id"`
	SenderName  string    `gorm:"not null" json:"sender_name"`
	SenderPhone string    `gorm:"not null" json:"sender_phone"`
	SenderEmail string    `json:"sender_email,omitempty"`
	Body        string    `gorm:"type:text;not null" json:"message"`
	RecipientID *uint     `gorm:"index" json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
