package domain

// CheckResult is the Checker's verdict for one URL.
// StatusCode is 0 when no HTTP response was received.
type CheckResult struct {
	URL           string  `json:"url"`
	StatusCode    int     `json:"status_code"`
	StatusText    string  `json:"status_text"`
	IsBroken      bool    `json:"is_broken"`
	IsWarning     bool    `json:"is_warning"`
	RedirectURL   string  `json:"redirect_url,omitempty"`
	RedirectCount int     `json:"redirect_count"`
	ResponseTime  float64 `json:"response_time"`
	ErrorMessage  string  `json:"error_message,omitempty"`
}

// Outcome names the verdict bucket, used for metrics and summaries.
func (r CheckResult) Outcome() string {
	switch {
	case r.IsBroken:
		return "broken"
	case r.IsWarning:
		return "warning"
	default:
		return "ok"
	}
}
