package objects

// Config holds configuration for the object mirror job.
type Config struct {
	// SourceBucket holds the objects to mirror.
	SourceBucket string `mapstructure:"source_bucket" default:"assets"`
	// SourcePrefix limits the mirror to keys under this prefix.
	SourcePrefix string `mapstructure:"source_prefix" default:""`
	// TargetBucket receives the copies.
	TargetBucket string `mapstructure:"target_bucket" default:"mirror"`
	// TargetPrefix is prepended to every copied key.
	TargetPrefix string `mapstructure:"target_prefix" default:""`
	// CreateBucket creates TargetBucket on the first copy when it is missing.
	CreateBucket bool `mapstructure:"create_bucket" default:"true"`
	// Region is used when the target bucket is created.
	Region string `mapstructure:"region" default:""`
}
