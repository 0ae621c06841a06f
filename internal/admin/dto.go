package admin

// StatsDTO is the dashboard snapshot served to operators.
type StatsDTO struct {
	TotalUsers    int64   `json:"total_users"`
	ActiveOrders  int64   `json:"active_orders"`
	PendingClaims int64   `json:"pending_claims"`
	AverageRating float64 `json:"average_rating"`
	RatingsCount  int64   `json:"ratings_count"`
}
