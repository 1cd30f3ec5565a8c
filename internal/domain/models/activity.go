package models

// Activity belongs to one day. SortOrder is unique within the day and only
// its relative order matters; deletions leave permanent gaps.
type Activity struct {
	ID          int64  `json:"id"`
	DayID       int64  `json:"day_id"`
	DayNumber   int    `json:"day_number,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	TimeStart   string `json:"time_start,omitempty"`
	TimeEnd     string `json:"time_end,omitempty"`
	IsTransfer  bool   `json:"is_transfer"`
	SortOrder   int    `json:"sort_order"`
}
