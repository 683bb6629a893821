package habilitados

import (
	"fmt"
	"net/url"

	"habilitados-backend/lib/configutil"
)

// SystemConfig describes one portal entirely as data: where to log in,
// which selectors locate the login form and the results table, and how
// table columns map onto the unified schema. adding a portal is a
// config change, never a code change.
type SystemConfig struct {
	Name        string      `json:"name"`
	LoginUrl    string      `json:"login_url"`
	Credentials Credentials `json:"credentials"`
	Selectors   Selectors   `json:"selectors"`
	ColumnMap   ColumnMap   `json:"column_map"`
	// ui controls that must be applied before reading the table,
	// each resolved through FilterSelectors
	RequiredFilters []string          `json:"required_filters"`
	FilterSelectors map[string]string `json:"filter_selectors"`
	// hard cap on pagination, 0 means DefaultMaxPages
	MaxPages int `json:"max_pages"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Selectors struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	LoginButton string `json:"login_button"`
	Table       string `json:"table"`
	// optional, a missing selector means the table has a single page
	NextPage string `json:"next_page"`
}

type ColumnMap struct {
	Name       int `json:"name"`
	Contractor int `json:"contractor"`
	Status     int `json:"status"`
}

const DefaultMaxPages = 500

type ConfigError struct {
	System string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.System == "" {
		return fmt.Sprintf("config: %s", e.Reason)
	}
	return fmt.Sprintf("config: system %q: %s", e.System, e.Reason)
}

func (c SystemConfig) Validate() error {
	fail := func(format string, args ...any) error {
		return &ConfigError{System: c.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if c.Name == "" {
		return &ConfigError{Reason: "missing system name"}
	}
	if c.LoginUrl == "" {
		return fail("missing login_url")
	}
	if _, err := url.Parse(c.LoginUrl); err != nil {
		return fail("invalid login_url: %s", err)
	}
	if c.Credentials.Username == "" || c.Credentials.Password == "" {
		return fail("missing credentials")
	}
	if c.Selectors.Username == "" || c.Selectors.Password == "" {
		return fail("missing login form selectors")
	}
	if c.Selectors.LoginButton == "" {
		return fail("missing login_button selector")
	}
	if c.Selectors.Table == "" {
		return fail("missing table selector")
	}

	indices := map[int]string{}
	for col, idx := range map[string]int{
		"name":       c.ColumnMap.Name,
		"contractor": c.ColumnMap.Contractor,
		"status":     c.ColumnMap.Status,
	} {
		if idx < 0 {
			return fail("column_map.%s is negative", col)
		}
		if other, taken := indices[idx]; taken {
			return fail("column_map.%s and column_map.%s share index %d", other, col, idx)
		}
		indices[idx] = col
	}

	for _, filter := range c.RequiredFilters {
		if c.FilterSelectors[filter] == "" {
			return fail("required filter %q has no selector", filter)
		}
	}
	if c.MaxPages < 0 {
		return fail("max_pages is negative")
	}
	return nil
}

// ValidateRegistry checks each config standalone plus cross-config
// invariants (unique names, since the name is the provenance key).
func ValidateRegistry(configs []SystemConfig) error {
	seen := map[string]bool{}
	for _, c := range configs {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return &ConfigError{System: c.Name, Reason: "duplicate system name"}
		}
		seen[c.Name] = true
	}
	return nil
}

// LoadRegistry reads the portal registry, order preserving. any
// malformed entry aborts the load, a broken registry is a human error
// that has to be fixed before scraping anything.
func LoadRegistry(path string) ([]SystemConfig, error) {
	configs, err := configutil.ReadConfig[[]SystemConfig](path)
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}
	if err := ValidateRegistry(configs); err != nil {
		return nil, err
	}
	return configs, nil
}
