// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with documented defaults.
// - Deployment-specific values (site URL, form-field names, table headers)
//   live here, never as constants inside the pipeline packages.
package config

// Grade store driver names.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// BaseURL is the intranet course-listing page.
	BaseURL string `koanf:"base_url"`

	// InstructorField is the form field the professor name is typed into.
	InstructorField string `koanf:"instructor_field"`

	// SubmitField is the element clicked to run the search.
	SubmitField string `koanf:"submit_field"`

	// ResultsFrame is the frame the result table renders in.
	ResultsFrame string `koanf:"results_frame"`

	// YearHeader, SemHeader, and CourseHeader name the listing table's
	// academic-year, semester, and course-title columns.
	YearHeader   string `koanf:"year_header"`
	SemHeader    string `koanf:"sem_header"`
	CourseHeader string `koanf:"course_header"`

	// GradesDriver selects the grade store backend: csv or sqlite.
	GradesDriver string `koanf:"grades_driver"`

	// GradesPath locates the grade store file or database.
	GradesPath string `koanf:"grades_path"`

	// MaxWaitSeconds bounds one stabilization wait.
	MaxWaitSeconds int `koanf:"max_wait_seconds"`

	// StableForSeconds is how many consecutive unchanged ticks conclude
	// the table has stabilized.
	StableForSeconds int `koanf:"stable_for_seconds"`

	// PollIntervalMS is the poller's sampling cadence.
	PollIntervalMS int `koanf:"poll_interval_ms"`

	// ChartPath is where the distribution chart PNG is written per query.
	// Empty disables the chart.
	ChartPath string `koanf:"chart_path"`

	// MetricsAddr configures the Prometheus listen address, e.g. ":9090".
	// Empty disables the metrics listener.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults. The site values match the intranet
// deployment this tool was written against; override them per deployment.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		BaseURL:          "http://172.26.142.68/dccourse/",
		InstructorField:  "instructname",
		SubmitField:      "showlist",
		ResultsFrame:     "stu_course",
		YearHeader:       "ACADEMIC YEAR",
		SemHeader:        "SEM",
		CourseHeader:     "COURSE NAME",
		GradesDriver:     DriverCSV,
		GradesPath:       "grades.csv",
		MaxWaitSeconds:   60,
		StableForSeconds: 6,
		PollIntervalMS:   1000,
		ChartPath:        "",
		MetricsAddr:      "",
	}
}
