package permission

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumastory/lumastory/internal/shared/authorization"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	e, err := NewEnforcer(db, logger.NewLogger())
	require.NoError(t, err)
	return e, db
}

func TestEnforcer_DefaultPolicy(t *testing.T) {
	e, _ := newTestEnforcer(t)

	pf, err := LoadPolicyFile("")
	require.NoError(t, err)
	require.NoError(t, e.Sync(pf))

	tests := []struct {
		role     authorization.UserRole
		resource string
		action   string
		want     bool
	}{
		{authorization.RoleSuperadmin, authorization.ResourceAdminContent, authorization.ActionRead, true},
		{authorization.RoleSuperadmin, authorization.ResourceAdminUsers, authorization.ActionWrite, true},
		{authorization.RoleSuperadmin, authorization.ResourceAdminSystem, authorization.ActionWrite, true},
		{authorization.RoleUser, authorization.ResourceAdminContent, authorization.ActionRead, false},
		{authorization.RoleUser, authorization.ResourceAdminAnalytics, authorization.ActionRead, false},
		{"", authorization.ResourceAdminUsers, authorization.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.resource+" "+tt.action, func(t *testing.T) {
			allowed, err := e.Enforce(tt.role.String(), tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestEnforcer_SyncReplacesStoredPolicy(t *testing.T) {
	e, db := newTestEnforcer(t)

	first, err := ParsePolicy([]byte(`
policies:
  - {role: user, resource: admin.content, action: read}
  - {role: superadmin, resource: admin.*, action: "*"}
`))
	require.NoError(t, err)
	require.NoError(t, e.Sync(first))

	allowed, err := e.Enforce("user", authorization.ResourceAdminContent, authorization.ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	second, err := ParsePolicy([]byte(`
policies:
  - {role: superadmin, resource: admin.*, action: "*"}
`))
	require.NoError(t, err)
	require.NoError(t, e.Sync(second))

	allowed, err = e.Enforce("user", authorization.ResourceAdminContent, authorization.ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)

	// a fresh enforcer over the same table sees the synced state
	reloaded, err := NewEnforcer(db, logger.NewLogger())
	require.NoError(t, err)
	allowed, err = reloaded.Enforce("superadmin", authorization.ResourceAdminSupport, authorization.ActionWrite)
	require.NoError(t, err)
	assert.True(t, allowed)
	allowed, err = reloaded.Enforce("user", authorization.ResourceAdminContent, authorization.ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforcer_Inheritance(t *testing.T) {
	e, _ := newTestEnforcer(t)

	pf, err := ParsePolicy([]byte(`
inherits:
  moderator: [user]
policies:
  - {role: user, resource: admin.content, action: read}
`))
	require.NoError(t, err)
	require.NoError(t, e.Sync(pf))

	allowed, err := e.Enforce("moderator", authorization.ResourceAdminContent, authorization.ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = e.Enforce("moderator", authorization.ResourceAdminContent, authorization.ActionWrite)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestLoadPolicyFile(t *testing.T) {
	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("policies:\n  - {role: auditor, resource: admin.system, action: read}\n"), 0o600))

		pf, err := LoadPolicyFile(path)
		require.NoError(t, err)
		require.Len(t, pf.Policies, 1)
		assert.Equal(t, "auditor", pf.Policies[0].Role)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPolicyFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("incomplete rule", func(t *testing.T) {
		_, err := ParsePolicy([]byte("policies:\n  - {role: user, resource: admin.content}\n"))
		assert.ErrorContains(t, err, "policy 0")
	})
}
