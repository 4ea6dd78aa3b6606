package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AdStatus is the lifecycle flag on an ad.
type AdStatus string

const (
	// AdStatusActive is the initial state of every ad.
	AdStatusActive AdStatus = "active"
	// AdStatusSold marks an ad whose item was sold.
	AdStatusSold AdStatus = "sold"
	// AdStatusClosed marks an ad withdrawn by its owner.
	AdStatusClosed AdStatus = "closed"
)

// ValidAdStatus reports whether s is one of the known lifecycle states.
func ValidAdStatus(s string) bool {
	switch AdStatus(s) {
	case AdStatusActive, AdStatusSold, AdStatusClosed:
		return true
	}
	return false
}

// AdConditions lists the accepted item conditions.
var AdConditions = []string{"new", "like-new", "excellent", "good", "fair", "poor"}

// ValidAdCondition reports whether s is a known item condition.
func ValidAdCondition(s string) bool {
	for _, c := range AdConditions {
		if c == s {
			return true
		}
	}
	return false
}

// ImageList is an ordered list of image URLs stored as a JSON text column.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src any) error {
	if src == nil {
		*l = ImageList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported image list source type %T", src)
}

// ContactPrefs holds the seller's contact preference flags for an ad,
// stored as a JSON text column.
type ContactPrefs struct {
	ShowPhone     bool `json:"show_phone"`
	AllowMessages bool `json:"allow_messages"`
	AcceptBargain bool `json:"accept_bargain"`
}

// Value implements driver.Valuer.
func (p ContactPrefs) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *ContactPrefs) Scan(src any) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return fmt.Errorf("unsupported contact prefs source type %T", src)
}

// Ad represents a single marketplace listing.
//
// CategoryID and UserID are indexed but not enforced by the database;
// the read model resolves dangling references to null sub-objects.
type Ad struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Title        string        `gorm:"not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description"`
	Price        float64       `gorm:"default:0" json:"price"`
	CategoryID   uint          `gorm:"index" json:"category_id"`
	UserID       uint          `gorm:"index" json:"user_id"`
	Location     string        `json:"location"`
	Condition    string        `json:"condition"`
	Status       AdStatus      `gorm:"index;default:'active'" json:"status"`
	Views        int           `gorm:"default:0" json:"views"`
	Images       ImageList     `gorm:"type:text" json:"images"`
	ContactPrefs *ContactPrefs `gorm:"column:contact_info;type:text" json:"contact_info,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// MessagesCount is not persisted; computed for the detail view only
	MessagesCount int `gorm:"->" json:"-"`

	// Read-model sub-objects, attached by the assembler. Null when the
	// underlying reference dangles.
	User     *PublicUser `gorm:"-" json:"user"`
	Category *AdCategory `gorm:"-" json:"category"`
}

// AdDetail is the single-ad read model: same row plus the message count
// and a richer seller projection.
type AdDetail struct {
	Ad
	Messages int               `gorm:"-" json:"messages"`
	User     *PublicUserDetail `gorm:"-" json:"user"`
}

// AdPatch is an explicit partial-update shape for ads. Nil fields are
// left untouched; each set field is validated independently.
type AdPatch struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Price        *float64      `json:"price"`
	CategoryID   *uint         `json:"category_id"`
	Location     *string       `json:"location"`
	Condition    *string       `json:"condition"`
	Status       *string       `json:"status"`
	Images       *ImageList    `json:"images"`
	ContactPrefs *ContactPrefs `json:"contact_info"`
}

// Empty reports whether the patch sets no fields at all.
func (p *AdPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.CategoryID == nil && p.Location == nil && p.Condition == nil &&
		p.Status == nil && p.Images == nil && p.ContactPrefs == nil
}
