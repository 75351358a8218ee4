// Package config defines the settings of git-version-builder and provides
// helpers to load, validate and save them in YAML format.
//
// Every field has a default, so the configuration file is optional; command
// line flags override whatever the file provides.
package config
