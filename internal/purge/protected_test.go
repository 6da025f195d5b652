package purge

import (
	"context"
	"testing"

	"admin-service/internal/model"
	"admin-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProtectedSets(t *testing.T) {
	db := newTestDB(t)

	wellKnown := model.Business{Name: "Platform Showcase", OwnerID: 1, Active: true}
	byName := model.Business{Name: "Coffee DEMO Shop", OwnerID: 2, Active: true}
	inactive := model.Business{Name: "old demo", OwnerID: 3, Active: false}
	regular := model.Business{Name: "Acme Retail", OwnerID: 4, Active: true}
	for _, b := range []*model.Business{&wellKnown, &byName, &inactive, &regular} {
		require.NoError(t, db.Create(b).Error)
	}
	// The default:true tag makes gorm omit the zero-value Active field on
	// insert, so the inactive fixture must be flipped explicitly.
	require.NoError(t, db.Model(&inactive).Update("active", false).Error)

	wellKnownStore := model.Store{BusinessID: wellKnown.ID, Name: "Showcase Store"}
	byNameStore := model.Store{BusinessID: byName.ID, Name: "Coffee Store"}
	regularStore := model.Store{BusinessID: regular.ID, Name: "Acme Store"}
	for _, s := range []*model.Store{&wellKnownStore, &byNameStore, &regularStore} {
		require.NoError(t, db.Create(s).Error)
	}

	admin1 := model.User{Email: "root1@platform.test", Role: model.RoleSuperAdmin}
	admin2 := model.User{Email: "root2@platform.test", Role: model.RoleSuperAdmin}
	member := model.User{Email: "member@acme.test", Role: "member"}
	for _, u := range []*model.User{&admin1, &admin2, &member} {
		require.NoError(t, db.Create(u).Error)
	}

	cfg := config.PurgeConfig{DemoBusinessID: wellKnown.ID, DemoStoreID: wellKnownStore.ID}
	sets, err := newTestEngine(db, cfg).ResolveProtectedSets(context.Background())
	require.NoError(t, err)

	// Demo by well-known ID and by case-insensitive name match, active only.
	assert.True(t, sets.IsDemoBusiness(wellKnown.ID))
	assert.True(t, sets.IsDemoBusiness(byName.ID))
	assert.False(t, sets.IsDemoBusiness(inactive.ID))
	assert.False(t, sets.IsDemoBusiness(regular.ID))

	// A store is demo iff its business is demo.
	assert.True(t, sets.IsDemoStore(wellKnownStore.ID))
	assert.True(t, sets.IsDemoStore(byNameStore.ID))
	assert.False(t, sets.IsDemoStore(regularStore.ID))

	// Privileged accounts are collected globally.
	assert.True(t, sets.IsSuperAdmin(admin1.ID))
	assert.True(t, sets.IsSuperAdmin(admin2.ID))
	assert.False(t, sets.IsSuperAdmin(member.ID))
}

func TestResolveProtectedSetsFallsBackToConfiguredIDs(t *testing.T) {
	db := newTestDB(t)

	// Only users survive; the business and store lookups will fail outright.
	require.NoError(t, db.Migrator().DropTable(&model.Business{}))
	require.NoError(t, db.Migrator().DropTable(&model.Store{}))

	admin := model.User{Email: "root@platform.test", Role: model.RoleSuperAdmin}
	require.NoError(t, db.Create(&admin).Error)

	cfg := config.PurgeConfig{DemoBusinessID: 42, DemoStoreID: 77}
	sets, err := newTestEngine(db, cfg).ResolveProtectedSets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[uint]struct{}{42: {}}, sets.DemoBusinessIDs)
	assert.Equal(t, map[uint]struct{}{77: {}}, sets.DemoStoreIDs)
	assert.True(t, sets.IsSuperAdmin(admin.ID))
}

func TestRunAbortsWhenPrivilegedAccountsCannotBeResolved(t *testing.T) {
	db := newTestDB(t)

	biz := model.Business{Name: "Acme Retail", OwnerID: 1, Active: true}
	require.NoError(t, db.Create(&biz).Error)
	require.NoError(t, db.Migrator().DropTable(&model.User{}))

	cfg := config.PurgeConfig{DemoBusinessID: 1, DemoStoreID: 1}
	report, err := newTestEngine(db, cfg).Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, report)

	// Nothing was deleted: the run never started.
	assert.EqualValues(t, 1, count(t, db, &model.Business{}, "id = ?", biz.ID))
}
