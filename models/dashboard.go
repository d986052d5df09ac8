package models

// StatusCount is one slice of the pipeline breakdown.
type StatusCount struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

// MarketerActivityCount is one marketer's activity total.
type MarketerActivityCount struct {
	MarketerID   string `json:"marketerId"`
	MarketerName string `json:"marketerName"`
	Count        int64  `json:"count"`
}

// DashboardStats is the aggregate view for the dashboard.
type DashboardStats struct {
	TotalProspects   int64                   `json:"totalProspects"`
	TotalActivities  int64                   `json:"totalActivities"`
	TotalFollowups   int64                   `json:"totalFollowups"`
	ActivityByStatus []StatusCount           `json:"activityByStatus"`
	ProspectByStatus []StatusCount           `json:"prospectByStatus"`
	DueThisWeek      int64                   `json:"dueThisWeek"`
	ByMarketer       []MarketerActivityCount `json:"byMarketer"`
}
