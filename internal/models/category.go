package models

// Category is static reference data: seeded once, read-only afterwards.
// ParentID allows a one-level hierarchy; nothing deeper is used.
type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Slug     string    `gorm:"uniqueIndex;not null" json:"slug"`
	Icon     string    `json:"icon"`
	ParentID *uint     `gorm:"index" json:"parent_id"`
	Parent   *Category `gorm:"foreignKey:ParentID" json:"-"`
	// AdsCount is not persisted; computed by the with-counts aggregate
	AdsCount int `gorm:"->" json:"ads_count"`
}

// AdCategory is the category projection attached to ad read models.
type AdCategory struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ForAd returns the projection attached to ad read models.
func (c *Category) ForAd() *AdCategory {
	return &AdCategory{ID: c.ID, Name: c.Name, Icon: c.Icon}
}
