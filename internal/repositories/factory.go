package repositories

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/events"
	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
	"github.com/assetdesk/backend/internal/storage/docstore"
	"github.com/assetdesk/backend/internal/storage/relstore"
)

// Repos bundles every repository for one tenant, all wired to the same
// backend. Which backend that is stays invisible to the callers.
type Repos struct {
	Assets      *AssetRepo
	Employees   *EmployeeRepo
	Vendors     *VendorRepo
	Software    *SoftwareRepo
	Consumables *ConsumableRepo
	Awards      *AwardRepo
	Users       *UserRepo
}

// Structured fields are the nested slices each entity stores as JSON text on
// the relational path.
var (
	assetCodec      = relstore.NewCodec("comments", "attachments", "audit_log")
	employeeCodec   = relstore.NewCodec("comments", "audit_log")
	vendorCodec     = relstore.NewCodec("products", "audit_log")
	softwareCodec   = relstore.NewCodec("assigned_to", "audit_log")
	consumableCodec = relstore.NewCodec("issue_log", "audit_log")
	awardCodec      = relstore.NewCodec("audit_log")
	userCodec       = relstore.NewCodec("audit_log")
)

// New builds the repository set for one tenant according to its resolved
// provider. The Redis client doubles as the document store and the event bus;
// the gateway client is only touched on the relational path.
func New(cfg storage.TenantConfig, rdb *redis.Client, gw *relstore.Client, pub events.Publisher, log *zap.Logger) (*Repos, error) {
	switch cfg.Provider {
	case storage.ProviderDocument:
		return newDocumentRepos(cfg, rdb, pub, log), nil
	case storage.ProviderRelational:
		if err := cfg.Relational.Validate(); err != nil {
			return nil, fmt.Errorf("tenant %s: %w", cfg.TenantID, err)
		}
		if gw == nil {
			return nil, fmt.Errorf("tenant %s: relational provider requires a gateway client", cfg.TenantID)
		}
		return newRelationalRepos(cfg, gw, pub, log), nil
	default:
		return nil, fmt.Errorf("tenant %s: unknown provider %q", cfg.TenantID, cfg.Provider)
	}
}

func newDocumentRepos(cfg storage.TenantConfig, rdb *redis.Client, pub events.Publisher, log *zap.Logger) *Repos {
	tenant := cfg.TenantID

	assets := docstore.NewCollection[models.Asset](rdb, tenant, "assets", log)
	employees := docstore.NewCollection[models.Employee](rdb, tenant, "employees", log)
	software := docstore.NewCollection[models.Software](rdb, tenant, "software", log)
	consumables := docstore.NewCollection[models.Consumable](rdb, tenant, "consumables", log)
	awards := docstore.NewCollection[models.Award](rdb, tenant, "awards", log)

	return &Repos{
		Assets:      NewAssetRepo(assets, docAssetActions{col: assets}, tenant, pub, log),
		Employees:   NewEmployeeRepo(employees, docEmployeeActions{col: employees}, tenant, pub, log),
		Vendors:     NewVendorRepo(docstore.NewCollection[models.Vendor](rdb, tenant, "vendors", log), tenant, pub, log),
		Software:    NewSoftwareRepo(software, docSoftwareActions{col: software}, tenant, pub, log),
		Consumables: NewConsumableRepo(consumables, docConsumableActions{col: consumables}, tenant, pub, log),
		Awards:      NewAwardRepo(awards, docAwardActions{col: awards}, tenant, pub, log),
		Users:       NewUserRepo(docstore.NewCollection[models.User](rdb, tenant, "users", log), tenant, pub, log),
	}
}

func newRelationalRepos(cfg storage.TenantConfig, gw *relstore.Client, pub events.Publisher, log *zap.Logger) *Repos {
	tenant := cfg.TenantID
	rc := cfg.Relational

	assets := relstore.NewCollection[models.Asset](gw, tenant, rc, "Asset", "Assets", assetCodec, log)
	employees := relstore.NewCollection[models.Employee](gw, tenant, rc, "Employee", "Employees", employeeCodec, log)
	software := relstore.NewCollection[models.Software](gw, tenant, rc, "Software", "Softwares", softwareCodec, log)
	consumables := relstore.NewCollection[models.Consumable](gw, tenant, rc, "Consumable", "Consumables", consumableCodec, log)
	awards := relstore.NewCollection[models.Award](gw, tenant, rc, "Award", "Awards", awardCodec, log)

	return &Repos{
		Assets:      NewAssetRepo(assets, relAssetActions{col: assets}, tenant, pub, log),
		Employees:   NewEmployeeRepo(employees, relEmployeeActions{col: employees}, tenant, pub, log),
		Vendors:     NewVendorRepo(relstore.NewCollection[models.Vendor](gw, tenant, rc, "Vendor", "Vendors", vendorCodec, log), tenant, pub, log),
		Software:    NewSoftwareRepo(software, relSoftwareActions{col: software}, tenant, pub, log),
		Consumables: NewConsumableRepo(consumables, relConsumableActions{col: consumables}, tenant, pub, log),
		Awards:      NewAwardRepo(awards, relAwardActions{col: awards}, tenant, pub, log),
		Users:       NewUserRepo(relstore.NewCollection[models.User](gw, tenant, rc, "User", "Users", userCodec, log), tenant, pub, log),
	}
}
