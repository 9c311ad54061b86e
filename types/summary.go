package types

// Summary is the JSON view of a session's state, returned by /api/summary and /upload.
type Summary struct {
	Loaded       bool   `json:"loaded"`
	FileName     string `json:"fileName,omitempty"`
	Visible      bool   `json:"visible"`
	StatusColumn int    `json:"statusColumn"`
	Rows         int    `json:"rows"`
	ChartMax     int    `json:"chartMax"`
	Counts
}
