package gateway

import "fmt"

// Column kinds, used to coerce JSON values into the right parameter type.
const (
	kindText = iota
	kindInt
	kindBool
)

type column struct {
	name string
	kind int
}

// table describes one entity collection on the relational side. Structured
// sub-fields (audit_log, comments, issue_log, attachments, assigned_to,
// products) are plain TEXT columns holding serialized JSON; the gateway never
// interprets them except in the bespoke transactional actions. Timestamps
// travel as RFC-3339 text so rows round-trip through JSON untouched.
type table struct {
	name     string
	singular string
	plural   string
	columns  []column
}

func (t table) qualified(schema string) string {
	return fmt.Sprintf("%q.%q", schema, t.name)
}

func text(names ...string) []column {
	cols := make([]column, len(names))
	for i, n := range names {
		cols[i] = column{name: n, kind: kindText}
	}
	return cols
}

var assetTable = table{
	name:     "assets",
	singular: "Asset",
	plural:   "Assets",
	columns: text("id", "tenant_id", "name", "model", "serial_number", "category",
		"status", "location", "assigned_to", "purchase_date", "purchase_price",
		"warranty_until", "comments", "attachments", "audit_log", "created_at", "updated_at"),
}

var employeeTable = table{
	name:     "employees",
	singular: "Employee",
	plural:   "Employees",
	columns: text("id", "tenant_id", "name", "email", "department", "title",
		"location", "join_date", "status", "comments", "audit_log", "created_at", "updated_at"),
}

var vendorTable = table{
	name:     "vendors",
	singular: "Vendor",
	plural:   "Vendors",
	columns: text("id", "tenant_id", "name", "contact_name", "email", "phone",
		"address", "products", "audit_log", "created_at", "updated_at"),
}

var softwareTable = table{
	name:     "software",
	singular: "Software",
	plural:   "Softwares",
	columns: append(text("id", "tenant_id", "name", "version", "publisher",
		"license_key", "expiry_date", "assigned_to", "audit_log", "created_at", "updated_at"),
		column{name: "seats", kind: kindInt}),
}

var consumableTable = table{
	name:     "consumables",
	singular: "Consumable",
	plural:   "Consumables",
	columns: append(text("id", "tenant_id", "name", "category", "location",
		"issue_log", "audit_log", "created_at", "updated_at"),
		column{name: "quantity", kind: kindInt},
		column{name: "min_quantity", kind: kindInt}),
}

var awardTable = table{
	name:     "awards",
	singular: "Award",
	plural:   "Awards",
	columns: append(text("id", "tenant_id", "title", "employee_id", "award_date",
		"notes", "audit_log", "created_at", "updated_at"),
		column{name: "is_locked", kind: kindBool}),
}

var userTable = table{
	name:     "users",
	singular: "User",
	plural:   "Users",
	columns: append(text("id", "tenant_id", "email", "name", "role",
		"last_login_at", "audit_log", "created_at", "updated_at"),
		column{name: "disabled", kind: kindBool}),
}

var entityTables = []table{
	assetTable, employeeTable, vendorTable, softwareTable,
	consumableTable, awardTable, userTable,
}

func (t table) ddl(schema string) string {
	cols := ""
	for _, c := range t.columns {
		typ := "TEXT"
		switch c.kind {
		case kindInt:
			typ = "INTEGER NOT NULL DEFAULT 0"
		case kindBool:
			typ = "BOOLEAN NOT NULL DEFAULT FALSE"
		}
		switch c.name {
		case "id":
			typ = "TEXT PRIMARY KEY"
		case "tenant_id", "created_at", "updated_at":
			typ = "TEXT NOT NULL"
		}
		if cols != "" {
			cols += ",\n\t"
		}
		cols += fmt.Sprintf("%s %s", c.name, typ)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.qualified(schema), cols)
}
