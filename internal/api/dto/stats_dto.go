package dto

// DashboardStats holds the aggregate counters for the admin dashboard.
// Everything is computed live at request time.
type DashboardStats struct {
	TotalStories     int64 `json:"totalStories"`
	PublishedStories int64 `json:"publishedStories"`
	DraftStories     int64 `json:"draftStories"`
	TotalUsers       int64 `json:"totalUsers"`
	TotalCategories  int64 `json:"totalCategories"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}

type StatsResponse struct {
	Success        bool                   `json:"success"`
	Stats          DashboardStats         `json:"stats"`
	RecentStories  []StorySummaryResponse `json:"recentStories"`
	PopularStories []StorySummaryResponse `json:"popularStories"`
}
