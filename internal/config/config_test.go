package config

import (
	"testing"

	"github.com/assetdesk/backend/internal/storage"
)

func TestSchemaName(t *testing.T) {
	tests := []struct {
		tenantID string
		want     string
	}{
		{"acme", "tenant_acme"},
		{"Acme Corp", "tenant_acme_corp"},
		{"globex-42", "tenant_globex_42"},
		{"snake_case", "tenant_snake_case"},
	}
	for _, tt := range tests {
		if got := SchemaName(tt.tenantID); got != tt.want {
			t.Errorf("SchemaName(%q) = %q, want %q", tt.tenantID, got, tt.want)
		}
	}
}

func TestParseProviderMap(t *testing.T) {
	m := parseProviderMap("acme=relational, globex=document,bad=pair=x,unknown=oracle")
	if m["acme"] != storage.ProviderRelational {
		t.Errorf("acme = %q, want relational", m["acme"])
	}
	if m["globex"] != storage.ProviderDocument {
		t.Errorf("globex = %q, want document", m["globex"])
	}
	if _, ok := m["unknown"]; ok {
		t.Error("unknown provider should be skipped")
	}
}

func TestTenantConfigResolution(t *testing.T) {
	cfg := &Config{
		DefaultProvider: storage.ProviderDocument,
		TenantProviders: map[string]storage.Provider{"acme": storage.ProviderRelational},
	}

	tc, err := cfg.TenantConfig("acme")
	if err != nil {
		t.Fatalf("TenantConfig: %v", err)
	}
	if tc.Provider != storage.ProviderRelational {
		t.Errorf("provider = %q, want relational", tc.Provider)
	}
	if tc.Relational.Schema != "tenant_acme" {
		t.Errorf("schema = %q, want tenant_acme", tc.Relational.Schema)
	}

	tc, err = cfg.TenantConfig("globex")
	if err != nil {
		t.Fatalf("TenantConfig: %v", err)
	}
	if tc.Provider != storage.ProviderDocument {
		t.Errorf("provider = %q, want document", tc.Provider)
	}
}
