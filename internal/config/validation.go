// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"
)

// RepairConfig fixes out-of-range or unknown configuration values in place,
// replacing each with its default. A layout engine that refuses to start
// over a typo in a tuning knob helps nobody, so bad values are repaired
// rather than rejected. Returns a description of every repair made.
func RepairConfig(config *Config) []string {
	var repairs []string
	defaults := DefaultConfig()

	repair := func(field string, got interface{}, fix func()) {
		fix()
		repairs = append(repairs, fmt.Sprintf("config: %s had invalid value %v, reset to default", field, got))
	}

	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
		config.Logging.Level = strings.ToLower(config.Logging.Level)
	default:
		repair("logging.level", config.Logging.Level, func() {
			config.Logging.Level = defaults.Logging.Level
		})
	}

	switch strings.ToLower(config.Logging.Format) {
	case "console", "json":
		config.Logging.Format = strings.ToLower(config.Logging.Format)
	default:
		repair("logging.format", config.Logging.Format, func() {
			config.Logging.Format = defaults.Logging.Format
		})
	}

	if config.Gesture.FlickThreshold <= 0 {
		repair("gesture.flick_threshold", config.Gesture.FlickThreshold, func() {
			config.Gesture.FlickThreshold = defaults.Gesture.FlickThreshold
		})
	}
	if config.Gesture.DragThreshold <= 0 || config.Gesture.DragThreshold > 1 {
		repair("gesture.drag_threshold", config.Gesture.DragThreshold, func() {
			config.Gesture.DragThreshold = defaults.Gesture.DragThreshold
		})
	}
	if config.Gesture.SpringStiffness <= 0 {
		repair("gesture.spring_stiffness", config.Gesture.SpringStiffness, func() {
			config.Gesture.SpringStiffness = defaults.Gesture.SpringStiffness
		})
	}
	if config.Gesture.SpringDamping <= 0 {
		repair("gesture.spring_damping", config.Gesture.SpringDamping, func() {
			config.Gesture.SpringDamping = defaults.Gesture.SpringDamping
		})
	}
	if config.Gesture.SpringMass <= 0 {
		repair("gesture.spring_mass", config.Gesture.SpringMass, func() {
			config.Gesture.SpringMass = defaults.Gesture.SpringMass
		})
	}
	if config.Gesture.RubberBandCoefficient <= 0 || config.Gesture.RubberBandCoefficient > 1 {
		repair("gesture.rubber_band_coefficient", config.Gesture.RubberBandCoefficient, func() {
			config.Gesture.RubberBandCoefficient = defaults.Gesture.RubberBandCoefficient
		})
	}

	if config.Layout.MinPaneShare <= 0 || config.Layout.MinPaneShare >= 0.5 {
		repair("layout.min_pane_share", config.Layout.MinPaneShare, func() {
			config.Layout.MinPaneShare = defaults.Layout.MinPaneShare
		})
	}

	switch strings.ToLower(config.Layout.TabStripMode) {
	case TabStripAutomatic, TabStripAlways, TabStripNever:
		config.Layout.TabStripMode = strings.ToLower(config.Layout.TabStripMode)
	default:
		repair("layout.tab_strip_mode", config.Layout.TabStripMode, func() {
			config.Layout.TabStripMode = defaults.Layout.TabStripMode
		})
	}

	if config.Layout.DefaultName == "" {
		repair("layout.default_name", config.Layout.DefaultName, func() {
			config.Layout.DefaultName = defaults.Layout.DefaultName
		})
	}

	return repairs
}
