package tables

// Config holds configuration for the table mirror job.
type Config struct {
	// SourceTable is the table holding the desired values.
	SourceTable string `mapstructure:"source_table" default:"source"`
	// TargetTable is the table that is made equal to SourceTable.
	TargetTable string `mapstructure:"target_table" default:"target"`
	// PageSize is the number of rows read per query.
	PageSize int `mapstructure:"page_size" default:"500"`
	// Prefetch is the number of source rows read ahead while the target is
	// written. 0 reads the source in lock step.
	Prefetch int `mapstructure:"prefetch" default:"0"`
	// CheckOrder fails the run when a table is not returned in value order,
	// e.g. because of a collation the reconciler does not share.
	CheckOrder bool `mapstructure:"check_order" default:"true"`
}
