package purge

import (
	"context"
	"fmt"
	"strings"

	"admin-service/internal/model"

	"go.uber.org/zap"
)

// demoNamePattern marks a business as demo when its name contains it,
// case-insensitively, in addition to the configured well-known identifier.
const demoNamePattern = "demo"

// ProtectedSets holds the identifiers that must survive a reclamation run:
// demo businesses, their stores, and every account holding the platform-wide
// privileged role.
type ProtectedSets struct {
	DemoBusinessIDs map[uint]struct{}
	DemoStoreIDs    map[uint]struct{}
	SuperAdminIDs   map[uint]struct{}
}

func (s *ProtectedSets) IsDemoBusiness(id uint) bool {
	_, ok := s.DemoBusinessIDs[id]
	return ok
}

func (s *ProtectedSets) IsDemoStore(id uint) bool {
	_, ok := s.DemoStoreIDs[id]
	return ok
}

func (s *ProtectedSets) IsSuperAdmin(id uint) bool {
	_, ok := s.SuperAdminIDs[id]
	return ok
}

// ResolveProtectedSets computes the protected identifiers once, up front.
//
// The demo business and demo store sets are always seeded with the configured
// well-known identifiers, so a failed or empty lookup can never produce an
// empty set and under-protect. A failure to resolve the privileged accounts
// is fatal: proceeding with an empty set could delete superadmin rows.
func (e *Engine) ResolveProtectedSets(ctx context.Context) (*ProtectedSets, error) {
	sets := &ProtectedSets{
		DemoBusinessIDs: map[uint]struct{}{e.cfg.DemoBusinessID: {}},
		DemoStoreIDs:    map[uint]struct{}{e.cfg.DemoStoreID: {}},
		SuperAdminIDs:   map[uint]struct{}{},
	}

	var businesses []model.Business
	if err := e.db.WithContext(ctx).Unscoped().Where("active = ?", true).Find(&businesses).Error; err != nil {
		e.log.Warn("Demo business lookup failed, protecting only the configured demo business",
			zap.Uint("demo_business_id", e.cfg.DemoBusinessID),
			zap.Error(err))
	} else {
		for _, b := range businesses {
			if b.ID == e.cfg.DemoBusinessID || strings.Contains(strings.ToLower(b.Name), demoNamePattern) {
				sets.DemoBusinessIDs[b.ID] = struct{}{}
			}
		}
	}

	var storeIDs []uint
	if err := e.db.WithContext(ctx).Model(&model.Store{}).Unscoped().
		Where("business_id IN ?", setKeys(sets.DemoBusinessIDs)).
		Pluck("id", &storeIDs).Error; err != nil {
		e.log.Warn("Demo store lookup failed, protecting only the configured demo store",
			zap.Uint("demo_store_id", e.cfg.DemoStoreID),
			zap.Error(err))
	} else {
		for _, id := range storeIDs {
			sets.DemoStoreIDs[id] = struct{}{}
		}
	}

	// Privileged accounts are global, so there is no business filter here.
	var adminIDs []uint
	if err := e.db.WithContext(ctx).Model(&model.User{}).Unscoped().
		Where("role = ?", model.RoleSuperAdmin).
		Pluck("id", &adminIDs).Error; err != nil {
		return nil, fmt.Errorf("resolve privileged accounts: %w", err)
	}
	for _, id := range adminIDs {
		sets.SuperAdminIDs[id] = struct{}{}
	}

	return sets, nil
}

func setKeys(set map[uint]struct{}) []uint {
	keys := make([]uint, 0, len(set))
	for id := range set {
		keys = append(keys, id)
	}
	return keys
}
