// Public domain.

// Package config holds run configuration as a nested key tree with dot
// path access.  Built-in defaults cover every key, and a user YAML
// file deep merges over them, so partial files work.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is a nested string-keyed tree of settings.
type Config struct {
	m map[string]any
}

func defaults() map[string]any {
	return map[string]any{
		"catalogs": map[string]any{
			"rqe": map[string]any{
				"column_mapping": map[string]any{
					"ra":       "RAgal",
					"dec":      "DECgal",
					"redshift": "zgal",
					"id":       "nyuID",
				},
			},
			"sdss": map[string]any{
				"column_mapping": map[string]any{
					"ra":       "galaxy_ra_deg",
					"dec":      "galaxy_dec_deg",
					"redshift": "galaxy_z_CMB",
					"id":       "objID",
				},
			},
		},
		"neighbor_search": map[string]any{
			"max_neighbors":     500,
			"r_proj_max_arcmin": 5000.0,
			"vel_diff_max_kms":  3000.0,
		},
		"cosmology": map[string]any{
			"hubble_constant": 70.0,
			"matter_density":  0.3,
		},
		"output": map[string]any{
			"format":              "csv",
			"include_all_columns": true,
		},
		"logging": map[string]any{
			"level":    "info",
			"log_file": "",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config { return &Config{m: defaults()} }

// Load reads the YAML file at path and deep merges it over the
// defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var user map[string]any
	if err := yaml.Unmarshal(b, &user); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	c := Default()
	merge(c.m, user)
	return c, nil
}

// merge writes src entries into dst, descending into maps present on
// both sides.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				merge(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}

// Get returns the value at the dot separated path, or def when the
// path is absent.
func (c *Config) Get(path string, def any) any {
	cur := any(c.m)
	for _, k := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		if cur, ok = m[k]; !ok {
			return def
		}
	}
	return cur
}

func (c *Config) GetString(path, def string) string {
	if s, ok := c.Get(path, def).(string); ok {
		return s
	}
	return def
}

func (c *Config) GetInt(path string, def int) int {
	switch v := c.Get(path, def).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func (c *Config) GetFloat(path string, def float64) float64 {
	switch v := c.Get(path, def).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func (c *Config) GetBool(path string, def bool) bool {
	if b, ok := c.Get(path, def).(bool); ok {
		return b
	}
	return def
}

// StringMap returns the map at path with scalar values rendered as
// strings, or nil when the path is absent.
func (c *Config) StringMap(path string) map[string]string {
	m, ok := c.Get(path, nil).(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// Set writes v at the dot separated path, creating intermediate maps
// as needed.
func (c *Config) Set(path string, v any) {
	m := c.m
	keys := strings.Split(path, ".")
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[k] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = v
}

// String renders the configuration as YAML.
func (c *Config) String() string {
	b, err := yaml.Marshal(c.m)
	if err != nil {
		return ""
	}
	return string(b)
}
