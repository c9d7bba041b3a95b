package storage

import (
	"fmt"
	"regexp"
)

// Provider identifies which physical backend serves a tenant.
type Provider string

const (
	ProviderDocument   Provider = "document"
	ProviderRelational Provider = "relational"
)

func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderDocument, ProviderRelational:
		return Provider(s), nil
	default:
		return "", fmt.Errorf("unknown storage provider %q", s)
	}
}

// RelationalConfig carries the connection parameters a repository forwards to
// the relational gateway on every call.
type RelationalConfig struct {
	// Schema is the per-tenant Postgres schema holding the entity tables.
	Schema string `json:"schema"`
}

var schemaPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// Validate rejects schema names that cannot be safely interpolated as quoted
// identifiers.
func (c RelationalConfig) Validate() error {
	if !schemaPattern.MatchString(c.Schema) {
		return fmt.Errorf("invalid schema name %q", c.Schema)
	}
	return nil
}

// TenantConfig is the provider choice for one tenant, resolved once and passed
// explicitly to the repository layer. No ambient or global state is involved.
type TenantConfig struct {
	TenantID   string
	Provider   Provider
	Relational RelationalConfig
}
