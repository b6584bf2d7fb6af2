package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Ingest.SourceDir == "" {
		return fmt.Errorf("ingest.source_dir must not be empty")
	}
	if c.Ingest.MalformedMarker == "" {
		return fmt.Errorf("ingest.malformed_marker must not be empty")
	}
	return nil
}
