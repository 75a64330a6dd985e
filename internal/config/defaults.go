// Package config provides default configuration values for stagedock.
package config

// Default gesture physics constants
const (
	defaultFlickThreshold        = 500.0 // pixels per second
	defaultDragThreshold         = 0.5   // fraction of host width
	defaultSpringStiffness       = 300.0
	defaultSpringDamping         = 25.0
	defaultSpringMass            = 1.0
	defaultRubberBandCoefficient = 0.55
)

// Default layout constants
const (
	defaultMinPaneShare = 0.1 // fraction of the split
	defaultLayoutName   = "default"
)

// DefaultConfig returns the default configuration values for stagedock.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // resolved to the XDG data dir at load time
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console", // console or json
		},
		Gesture: GestureConfig{
			FlickThreshold:        defaultFlickThreshold,
			DragThreshold:         defaultDragThreshold,
			SpringStiffness:       defaultSpringStiffness,
			SpringDamping:         defaultSpringDamping,
			SpringMass:            defaultSpringMass,
			RubberBandCoefficient: defaultRubberBandCoefficient,
			SlowMotion:            false,
		},
		Layout: LayoutConfig{
			MinPaneShare: defaultMinPaneShare,
			TabStripMode: TabStripAutomatic,
			DefaultName:  defaultLayoutName,
		},
	}
}
