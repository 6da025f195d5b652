// Package purge implements the tenant data reclamation engine: an
// administrative operation that removes all rows belonging to non-protected
// businesses and stores across the full entity graph, in an order that
// respects foreign-key dependencies, while guaranteeing that demo businesses,
// demo stores and superadmin accounts always survive.
package purge

import (
	"context"

	"admin-service/internal/model"
	"admin-service/pkg/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultBatchSize = 500

// Engine runs the reclamation. It holds no state between runs; a failed or
// partial run may be safely re-invoked because already-deleted rows are no
// longer candidates.
type Engine struct {
	db        *gorm.DB
	cfg       config.PurgeConfig
	log       *zap.Logger
	batchSize int
	dryRun    bool
}

// New creates a reclamation engine
func New(db *gorm.DB, cfg config.PurgeConfig, log *zap.Logger) *Engine {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Engine{
		db:        db,
		cfg:       cfg,
		log:       log,
		batchSize: batchSize,
	}
}

// Run resolves the protected sets once, then executes every deletion step in
// order. A step failure is recorded in the report and does not stop later
// steps. Run returns an error only when the protected sets themselves cannot
// be resolved, in which case no deletion was attempted.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	return e.execute(ctx, false)
}

// Preview runs the same exclusion filters read-only and reports what a real
// run would delete, without issuing any delete statements. Counts for
// dependent tables are approximate since earlier steps have not actually
// removed their rows.
func (e *Engine) Preview(ctx context.Context) (*Report, error) {
	return e.execute(ctx, true)
}

func (e *Engine) execute(ctx context.Context, dryRun bool) (*Report, error) {
	runner := *e
	runner.dryRun = dryRun

	sets, err := runner.ResolveProtectedSets(ctx)
	if err != nil {
		return nil, err
	}

	runner.log.Info("Starting tenant data reclamation",
		zap.Bool("dry_run", dryRun),
		zap.Int("demo_businesses", len(sets.DemoBusinessIDs)),
		zap.Int("demo_stores", len(sets.DemoStoreIDs)),
		zap.Int("privileged_accounts", len(sets.SuperAdminIDs)))

	steps := runner.steps()
	results := make(map[string]StepResult, len(steps))
	for _, s := range steps {
		res := s.run(ctx, sets)
		results[s.name] = res

		if res.Err != nil {
			runner.log.Error("Reclamation step failed",
				zap.String("table", s.name),
				zap.Error(res.Err))
			continue
		}
		if res.Deleted > 0 {
			runner.log.Info("Reclamation step completed",
				zap.String("table", s.name),
				zap.Int64("deleted", res.Deleted))
		}
	}

	report := buildReport(results)
	runner.log.Info("Tenant data reclamation finished",
		zap.Bool("dry_run", dryRun),
		zap.Int64("total_deleted", report.Summary.TotalRecordsDeleted),
		zap.Int("tables_processed", report.Summary.TablesProcessed),
		zap.Bool("has_errors", report.Summary.HasErrors))
	return report, nil
}

// step names the table a deletion acts on (used as the report key) and how to
// run it. Steps execute strictly in list order: children and leaves first,
// stores before businesses, businesses last of all.
type step struct {
	name string
	run  func(ctx context.Context, sets *ProtectedSets) StepResult
}

func (e *Engine) steps() []step {
	return []step{
		// 1. Usage rows hanging off coupons and promotions. These carry no
		// business column of their own, so protection runs through the parent.
		{"coupon_usages", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteViaParent(ctx, &model.CouponUsage{}, "coupon_id", &model.Coupon{}, "business_id", "", s)
		}},
		{"promotion_usages", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteViaParent(ctx, &model.PromotionUsage{}, "promotion_id", &model.Promotion{}, "business_id", "", s)
		}},

		// 2. Store-scoped transactional records, line items before their
		// parents. Sale items are cascaded by the database but deleted
		// explicitly so the reported counts stay accurate.
		{"sale_items", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteViaParent(ctx, &model.SaleItem{}, "sale_id", &model.Sale{}, "", "store_id", s)
		}},
		{"sales", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Sale{}, "", "store_id", s)
		}},
		{"supply_return_items", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteViaParent(ctx, &model.SupplyReturnItem{}, "supply_return_id", &model.SupplyReturn{}, "", "store_id", s)
		}},
		{"supply_returns", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.SupplyReturn{}, "", "store_id", s)
		}},
		{"supply_order_items", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteViaParent(ctx, &model.SupplyOrderItem{}, "supply_order_id", &model.SupplyOrder{}, "", "store_id", s)
		}},
		{"supply_order_payments", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteViaParent(ctx, &model.SupplyOrderPayment{}, "supply_order_id", &model.SupplyOrder{}, "", "store_id", s)
		}},
		{"supply_orders", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.SupplyOrder{}, "", "store_id", s)
		}},
		{"restock_order_items", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteViaParent(ctx, &model.RestockOrderItem{}, "restock_order_id", &model.RestockOrder{}, "", "store_id", s)
		}},
		{"restock_orders", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.RestockOrder{}, "", "store_id", s)
		}},

		// 3. Remaining storefront and store-scoped records.
		{"public_orders", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.PublicOrder{}, "business_id", "", s)
		}},
		{"saved_carts", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.SavedCart{}, "", "store_id", s)
		}},
		{"customers", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Customer{}, "", "store_id", s)
		}},
		{"store_settings", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.StoreSetting{}, "", "store_id", s)
		}},

		// 4. Business-scoped catalog and configuration.
		{"coupons", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Coupon{}, "business_id", "", s)
		}},
		{"promotions", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Promotion{}, "business_id", "", s)
		}},
		{"products", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Product{}, "business_id", "", s)
		}},
		{"product_categories", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.ProductCategory{}, "business_id", "", s)
		}},
		{"brands", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Brand{}, "business_id", "", s)
		}},
		{"suppliers", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Supplier{}, "business_id", "", s)
		}},
		{"notifications", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Notification{}, "business_id", "", s)
		}},

		// 5. Access-control join rows. A row survives if its business is demo
		// OR its user is privileged; the two checks are independent.
		{"user_roles", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteJoinRows(ctx, &model.UserRole{}, s)
		}},
		{"user_business_roles", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteJoinRows(ctx, &model.UserBusinessRole{}, s)
		}},

		// 6. Business-defined role definitions, after their assignments.
		{"roles", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Role{}, "business_id", "", s)
		}},

		// 7. Stores. A store is excluded when it is itself a demo store or
		// when its owning business is demo.
		{"stores", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Store{}, "business_id", "id", s)
		}},

		// 8. Business-level settings and audit trail.
		{"business_settings", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.BusinessSetting{}, "business_id", "", s)
		}},
		{"activity_logs", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.ActivityLog{}, "business_id", "", s)
		}},

		// 9. Accounts.
		{"users", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteUsers(ctx, s)
		}},

		// 10. Businesses last: every earlier step relies on business IDs
		// staying valid until its own deletion has been attempted.
		{"businesses", func(ctx context.Context, s *ProtectedSets) StepResult {
			return e.deleteExcluding(ctx, &model.Business{}, "id", "", s)
		}},
	}
}
