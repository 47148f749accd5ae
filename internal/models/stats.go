package models

// SiteStats is the admin dashboard aggregate, one counter block per
// content type.
type SiteStats struct {
	Blogs struct {
		Total     int64 `json:"total"`
		Published int64 `json:"published"`
		Draft     int64 `json:"draft"`
	} `json:"blogs"`
	Projects struct {
		Total int64 `json:"total"`
	} `json:"projects"`
	Events struct {
		Total    int64 `json:"total"`
		Upcoming int64 `json:"upcoming"`
		Past     int64 `json:"past"`
	} `json:"events"`
	RSVPs struct {
		Total int64 `json:"total"`
	} `json:"rsvps"`
	Galleries struct {
		Total int64 `json:"total"`
	} `json:"galleries"`
	Podcasts struct {
		Total int64 `json:"total"`
	} `json:"podcasts"`
	Users struct {
		Total int64 `json:"total"`
	} `json:"users"`
}
