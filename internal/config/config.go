// Package config holds run settings: the CLI-supplied input/output paths
// and the ambient logging options read from the environment.
package config

import (
	"fmt"
	"os"
)

// DefaultIDColumn is the shapefile attribute column assumed to hold each
// sub-basin's unique name when the operator does not override it.
const DefaultIDColumn = "Subbasin"

// Config holds all settings for one pipeline run.
type Config struct {
	ShapefilePath   string // vector file defining region polygons
	NetCDFDirectory string // raster archive directory
	OutputDirectory string // created if absent
	IDColumn        string // shapefile attribute column with region names

	LogLevel  string
	LogFormat string
}

// New builds a Config from the parsed CLI flags, filling ambient options
// from the environment.
func New(shapefilePath, netcdfDirectory, outputDirectory, idColumn string) *Config {
	return &Config{
		ShapefilePath:   shapefilePath,
		NetCDFDirectory: netcdfDirectory,
		OutputDirectory: outputDirectory,
		IDColumn:        idColumn,
		LogLevel:        EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       EnvOrDefault("LOG_FORMAT", "json"),
	}
}

// Validate performs the fatal-tier input checks: all paths supplied, the
// shapefile is an existing file, and the archive path an existing
// directory. The ID-column check happens later, at shapefile load, where
// the attribute table is available.
func (c *Config) Validate() error {
	if c.ShapefilePath == "" {
		return fmt.Errorf("--shapefile_path is required")
	}
	if c.NetCDFDirectory == "" {
		return fmt.Errorf("--netcdf_directory is required")
	}
	if c.OutputDirectory == "" {
		return fmt.Errorf("--output_directory is required")
	}
	if c.IDColumn == "" {
		return fmt.Errorf("--shapefile_id_column must not be empty")
	}

	info, err := os.Stat(c.ShapefilePath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("shapefile not found at %q", c.ShapefilePath)
	}
	info, err = os.Stat(c.NetCDFDirectory)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("NetCDF directory not found at %q", c.NetCDFDirectory)
	}
	return nil
}

// EnvOrDefault returns the environment variable's value, or def when unset
// or empty.
func EnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
