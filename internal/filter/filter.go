// Package filter holds the per-list filter state and the pure projection
// that selects and orders cached rows for display. Projection never touches
// the store; filters mutate nothing but themselves.
package filter

// Sort keys shared by the list views.
const (
	SortRecent = "recent"
	SortOldest = "oldest"
	SortStatus = "status"
)

// List kinds a filter can be saved under.
const (
	KindApplications = "applications"
	KindJobs         = "jobs"
	KindTalents      = "talents"
)

// Default salary bounds for the job filter.
const (
	DefaultSalaryMin = 0
	DefaultSalaryMax = 500000
)

// ApplicationFilter is the filter state of the applications list.
type ApplicationFilter struct {
	Search   string   `json:"search"`
	Statuses []string `json:"statuses"`
	SortBy   string   `json:"sort_by"`
}

// DefaultApplicationFilter returns the documented defaults.
func DefaultApplicationFilter() ApplicationFilter {
	return ApplicationFilter{SortBy: SortRecent}
}

// Reset restores every field to its default. Idempotent.
func (f *ApplicationFilter) Reset() {
	*f = DefaultApplicationFilter()
}

// JobFilter is the filter state of the job listings.
type JobFilter struct {
	Search     string   `json:"search"`
	Statuses   []string `json:"statuses"`
	SortBy     string   `json:"sort_by"`
	SalaryMin  int      `json:"salary_min"`
	SalaryMax  int      `json:"salary_max"`
	RemoteOnly *bool    `json:"remote_only"`
}

// DefaultJobFilter returns the documented defaults.
func DefaultJobFilter() JobFilter {
	return JobFilter{
		SortBy:    SortRecent,
		SalaryMin: DefaultSalaryMin,
		SalaryMax: DefaultSalaryMax,
	}
}

// Reset restores every field to its default. Idempotent.
func (f *JobFilter) Reset() {
	*f = DefaultJobFilter()
}

// TalentFilter is the filter state of the talent directory.
type TalentFilter struct {
	Search string   `json:"search"`
	Skills []string `json:"skills"`
}

// DefaultTalentFilter returns the documented defaults.
func DefaultTalentFilter() TalentFilter {
	return TalentFilter{}
}

// Reset restores every field to its default. Idempotent.
func (f *TalentFilter) Reset() {
	*f = DefaultTalentFilter()
}
