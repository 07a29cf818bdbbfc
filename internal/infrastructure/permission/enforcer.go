package permission

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/lumastory/lumastory/internal/shared/logger"
)

//go:embed model.conf
var modelText string

// Enforcer answers role/resource/action questions against the casbin policy
// stored in the casbin_rule table.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role string, resource string, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// Sync replaces the stored policy with pf. The file is the source of truth,
// so rules removed from it are removed from the table too.
func (e *Enforcer) Sync(pf *PolicyFile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.enforcer.EnableAutoSave(false)
	defer e.enforcer.EnableAutoSave(true)

	e.enforcer.ClearPolicy()

	if rules := pf.rules(); len(rules) > 0 {
		if _, err := e.enforcer.AddPolicies(rules); err != nil {
			return fmt.Errorf("failed to add policies: %w", err)
		}
	}
	if groups := pf.groupings(); len(groups) > 0 {
		if _, err := e.enforcer.AddGroupingPolicies(groups); err != nil {
			return fmt.Errorf("failed to add role inheritance: %w", err)
		}
	}

	if err := e.enforcer.SavePolicy(); err != nil {
		e.logger.Errorw("failed to save permission policy", "error", err)
		return fmt.Errorf("failed to save policy: %w", err)
	}

	e.logger.Infow("permission policy synced", "policies", len(pf.Policies), "inherits", len(pf.Inherits))
	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
