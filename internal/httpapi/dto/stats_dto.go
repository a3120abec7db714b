package dto

// StatsOverview is the admin dashboard headline, recomputed from the
// interaction log rather than the cached blog counters.
type StatsOverview struct {
	Users         int64 `json:"users"`
	Blogs         int64 `json:"blogs"`
	Views         int64 `json:"views"`
	Clicks        int64 `json:"clicks"`
	Reads         int64 `json:"reads"`
	Likes         int64 `json:"likes"`
	Comments      int64 `json:"comments"`
	TotalReadTime int64 `json:"total_read_time"`
}
