package purge

import (
	"context"
	"fmt"
	"strings"

	"admin-service/internal/model"
)

// ownerRow is the minimal projection fetched for exclusion filtering: a row's
// identifier plus whichever owning columns the table carries.
type ownerRow struct {
	ID         uint
	BusinessID *uint
	StoreID    *uint
}

// joinRow is the projection for access-control join tables, which must be
// checked on the business side and the user side independently.
type joinRow struct {
	ID         uint
	BusinessID uint
	UserID     uint
}

// deleteExcluding fetches every row's identifier and owning column values
// from the table behind dest, drops any row owned by a demo business or demo
// store, and hard-deletes the remainder in identifier batches. The returned
// count is the number of identifiers submitted, not a count re-read from the
// store. When no row survives the filter, no delete statement is issued.
// Failures are captured in the result, never propagated, so the orchestrator
// keeps going.
func (e *Engine) deleteExcluding(ctx context.Context, dest interface{}, businessCol, storeCol string, sets *ProtectedSets) StepResult {
	ids, err := e.survivorIDs(ctx, dest, businessCol, storeCol, sets)
	if err != nil {
		return StepResult{Err: err}
	}
	if len(ids) == 0 {
		return StepResult{}
	}
	if e.dryRun {
		return StepResult{Deleted: int64(len(ids))}
	}
	if err := e.deleteByID(ctx, dest, ids); err != nil {
		return StepResult{Err: err}
	}
	return StepResult{Deleted: int64(len(ids))}
}

// deleteViaParent handles tables that reference a business or store only
// through a parent entity. It first computes the parent table's non-protected
// identifier set (read-only, the parent is not deleted here), then deletes
// every child row keyed to that set.
func (e *Engine) deleteViaParent(ctx context.Context, childDest interface{}, parentIDCol string, parentDest interface{}, businessCol, storeCol string, sets *ProtectedSets) StepResult {
	parentIDs, err := e.survivorIDs(ctx, parentDest, businessCol, storeCol, sets)
	if err != nil {
		return StepResult{Err: err}
	}
	if len(parentIDs) == 0 {
		return StepResult{}
	}

	var deleted int64
	for _, chunk := range chunkIDs(parentIDs, e.batchSize) {
		if e.dryRun {
			var count int64
			if err := e.db.WithContext(ctx).Model(childDest).Unscoped().
				Where(parentIDCol+" IN ?", chunk).
				Count(&count).Error; err != nil {
				return StepResult{Err: fmt.Errorf("count by %s: %w", parentIDCol, err)}
			}
			deleted += count
			continue
		}

		result := e.db.WithContext(ctx).Unscoped().
			Where(parentIDCol+" IN ?", chunk).
			Delete(childDest)
		if result.Error != nil {
			return StepResult{Err: fmt.Errorf("delete by %s: %w", parentIDCol, result.Error)}
		}
		deleted += result.RowsAffected
	}
	return StepResult{Deleted: deleted}
}

// deleteJoinRows removes access-control assignment rows. A row is deleted
// only when its business is non-demo AND its user is non-privileged.
func (e *Engine) deleteJoinRows(ctx context.Context, dest interface{}, sets *ProtectedSets) StepResult {
	var rows []joinRow
	if err := e.db.WithContext(ctx).Model(dest).Unscoped().
		Select("id, business_id, user_id").
		Scan(&rows).Error; err != nil {
		return StepResult{Err: fmt.Errorf("fetch join rows: %w", err)}
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		if sets.IsDemoBusiness(r.BusinessID) || sets.IsSuperAdmin(r.UserID) {
			continue
		}
		ids = append(ids, r.ID)
	}
	if len(ids) == 0 {
		return StepResult{}
	}
	if e.dryRun {
		return StepResult{Deleted: int64(len(ids))}
	}
	if err := e.deleteByID(ctx, dest, ids); err != nil {
		return StepResult{Err: err}
	}
	return StepResult{Deleted: int64(len(ids))}
}

// deleteUsers removes accounts. An account survives when it holds the
// privileged role, appears in the privileged set, is flagged as a demo
// account, or belongs to a demo business. The privileged set is re-checked
// immediately before the delete call; upstream filtering should already have
// excluded those identifiers, but a regression there must not reach the
// store.
func (e *Engine) deleteUsers(ctx context.Context, sets *ProtectedSets) StepResult {
	var rows []struct {
		ID         uint
		Role       string
		IsDemo     bool
		BusinessID *uint
	}
	if err := e.db.WithContext(ctx).Model(&model.User{}).Unscoped().
		Select("id, role, is_demo, business_id").
		Scan(&rows).Error; err != nil {
		return StepResult{Err: fmt.Errorf("fetch users: %w", err)}
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		if r.Role == model.RoleSuperAdmin || sets.IsSuperAdmin(r.ID) || r.IsDemo {
			continue
		}
		if r.BusinessID != nil && sets.IsDemoBusiness(*r.BusinessID) {
			continue
		}
		ids = append(ids, r.ID)
	}

	// Final re-filter before the delete call.
	filtered := ids[:0]
	for _, id := range ids {
		if sets.IsSuperAdmin(id) {
			continue
		}
		filtered = append(filtered, id)
	}

	if len(filtered) == 0 {
		return StepResult{}
	}
	if e.dryRun {
		return StepResult{Deleted: int64(len(filtered))}
	}
	if err := e.deleteByID(ctx, &model.User{}, filtered); err != nil {
		return StepResult{Err: err}
	}
	return StepResult{Deleted: int64(len(filtered))}
}

// survivorIDs returns the identifiers of rows that are NOT protected: rows
// whose business column is not a demo business and whose store column is not
// a demo store. It never mutates the table.
func (e *Engine) survivorIDs(ctx context.Context, dest interface{}, businessCol, storeCol string, sets *ProtectedSets) ([]uint, error) {
	cols := []string{"id"}
	if businessCol != "" {
		cols = append(cols, businessCol+" AS business_id")
	}
	if storeCol != "" {
		cols = append(cols, storeCol+" AS store_id")
	}

	var rows []ownerRow
	if err := e.db.WithContext(ctx).Model(dest).Unscoped().
		Select(strings.Join(cols, ", ")).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		if r.BusinessID != nil && sets.IsDemoBusiness(*r.BusinessID) {
			continue
		}
		if r.StoreID != nil && sets.IsDemoStore(*r.StoreID) {
			continue
		}
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// deleteByID hard-deletes rows in identifier batches
func (e *Engine) deleteByID(ctx context.Context, dest interface{}, ids []uint) error {
	for _, chunk := range chunkIDs(ids, e.batchSize) {
		if err := e.db.WithContext(ctx).Unscoped().
			Where("id IN ?", chunk).
			Delete(dest).Error; err != nil {
			return fmt.Errorf("delete batch: %w", err)
		}
	}
	return nil
}

func chunkIDs(ids []uint, size int) [][]uint {
	if size <= 0 {
		return [][]uint{ids}
	}
	chunks := make([][]uint, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
