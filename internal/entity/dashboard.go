package entity

// Banner is the sitewide notice bar shown above the dashboard map.
type Banner struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

// Event is an upcoming campus event pulled from the intra API feed.
type Event struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
	BeginAt  string `json:"begin_at"`
	EndAt    string `json:"end_at"`
}
