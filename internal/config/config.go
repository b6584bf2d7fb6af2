package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Geo      GeoConfig      `yaml:"geo"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// IngestConfig holds dictionary ingestion settings.
type IngestConfig struct {
	// SourceDir is the directory scanned for entry documents.
	SourceDir string `yaml:"source_dir" env:"INGEST_SOURCE_DIR" env-default:"./data/entries"`
	// MalformedMarker excludes files whose name contains the marker
	// from a run, case-insensitively.
	MalformedMarker string `yaml:"malformed_marker" env:"INGEST_MALFORMED_MARKER" env-default:"malformed"`
	// SkipUnchanged skips the full rebuild of an entry whose raw source
	// snapshot matches the persisted one.
	SkipUnchanged bool `yaml:"skip_unchanged" env:"INGEST_SKIP_UNCHANGED" env-default:"false"`
	// ForceListElements overrides the element names parsed as sequences
	// even when a document holds exactly one. Empty uses the built-in
	// set (doctree.ListElements).
	ForceListElements []string `yaml:"force_list_elements" env:"INGEST_FORCE_LIST_ELEMENTS"`
}

// GeoConfig holds geocoding settings.
type GeoConfig struct {
	// Enabled turns external place resolution on. When off (the default),
	// places are persisted without coordinates.
	Enabled bool `yaml:"enabled" env:"GEO_ENABLED" env-default:"false"`
	// Endpoint is a Nominatim-compatible search URL. Empty uses the
	// public OSM instance.
	Endpoint string `yaml:"endpoint" env:"GEO_ENDPOINT" env-default:""`
	// UserAgent identifies this loader to the geocoding service.
	UserAgent string `yaml:"user_agent" env:"GEO_USER_AGENT" env-default:"rhymebook-loader/1.0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
