// Package config provides configuration structures and utilities for a11yscan.
// It defines the main configuration options for document checking, rule
// policies, and report generation preferences.
package config
