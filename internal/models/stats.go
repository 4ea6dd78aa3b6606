package models

// Stats is the global marketplace snapshot served by the stats endpoint.
type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalAds        int64 `json:"totalAds"`
	TotalCategories int64 `json:"totalCategories"`
	ActiveAds       int64 `json:"activeAds"`
}
