package countries

// Config holds configuration for the country list job.
type Config struct {
	// URL is the page listing ISO 3166-2 country codes.
	URL string `mapstructure:"url" default:"https://en.wikipedia.org/wiki/ISO_3166-2"`
	// Table is the target table with code and name columns.
	Table string `mapstructure:"table" default:"countries"`
	// PageSize is the number of target rows read per query.
	PageSize int `mapstructure:"page_size" default:"500"`
	// TimeoutSeconds bounds the page download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with the download request.
	UserAgent string `mapstructure:"user_agent" default:"ordered-sync/1.0"`
}
