package model

// Recommendation is a suggested set of print settings for a document.
// Fields left nil carry no recommendation.
type Recommendation struct {
	ColorMode *ColorMode `json:"color_mode,omitempty"`
	Quality   *Quality   `json:"quality,omitempty"`
	Sides     *Sides     `json:"sides,omitempty"`
	Message   string     `json:"message"`
	Tips      []string   `json:"tips"`
}

// Quote is a price breakdown for a prospective print job.
type Quote struct {
	Pages     int     `json:"pages"`
	PrintCost float64 `json:"print_cost"`
	TokenFee  float64 `json:"token_fee"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
}

// DashboardStats summarises a single user's activity.
type DashboardStats struct {
	PrintJobs    int     `json:"print_jobs"`
	PagesPrinted int     `json:"pages_printed"`
	Balance      float64 `json:"balance"`
}

// AdminMetrics summarises activity across the whole shop.
type AdminMetrics struct {
	Users        int               `json:"users"`
	Documents    int               `json:"documents"`
	Printers     int               `json:"printers"`
	OpenPrinters int               `json:"open_printers"`
	JobsByStatus map[JobStatus]int `json:"jobs_by_status"`
	Revenue      float64           `json:"revenue"`
}
