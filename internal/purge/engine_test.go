package purge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"admin-service/internal/model"
	"admin-service/pkg/config"
	"admin-service/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A uniquely named shared-cache database keeps every pooled connection
	// pointed at the same in-memory store while isolating tests from each
	// other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func newTestEngine(db *gorm.DB, cfg config.PurgeConfig) *Engine {
	return New(db, cfg, zap.NewNop())
}

// seedWorld creates a demo business with a store and a regular business with
// a store, plus a superadmin account, and returns the engine configuration
// pointing at the demo identifiers.
func seedWorld(t *testing.T, db *gorm.DB) (demoBiz, biz model.Business, demoStore, store model.Store, admin model.User, cfg config.PurgeConfig) {
	t.Helper()

	demoBiz = model.Business{Name: "Demo Business", OwnerID: 1, Active: true}
	biz = model.Business{Name: "Acme Retail", OwnerID: 2, Active: true}
	require.NoError(t, db.Create(&demoBiz).Error)
	require.NoError(t, db.Create(&biz).Error)

	demoStore = model.Store{BusinessID: demoBiz.ID, Name: "Demo Store", Active: true}
	store = model.Store{BusinessID: biz.ID, Name: "Acme Downtown", Active: true}
	require.NoError(t, db.Create(&demoStore).Error)
	require.NoError(t, db.Create(&store).Error)

	admin = model.User{Email: "root@platform.test", Role: model.RoleSuperAdmin}
	require.NoError(t, db.Create(&admin).Error)

	cfg = config.PurgeConfig{
		DemoBusinessID: demoBiz.ID,
		DemoStoreID:    demoStore.ID,
		BatchSize:      100,
	}
	return
}

func count(t *testing.T, db *gorm.DB, dest interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(dest).Unscoped()
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func TestRunProtectsDemoAndPrivilegedRows(t *testing.T) {
	db := newTestDB(t)
	demoBiz, biz, demoStore, store, admin, cfg := seedWorld(t, db)

	cashier := model.User{Email: "cashier@acme.test", Role: "cashier", BusinessID: &biz.ID}
	demoUser := model.User{Email: "visitor@demo.test", Role: "member", IsDemo: true}
	require.NoError(t, db.Create(&cashier).Error)
	require.NoError(t, db.Create(&demoUser).Error)

	require.NoError(t, db.Create(&model.Product{BusinessID: demoBiz.ID, Name: "Demo Espresso", Price: 3}).Error)
	require.NoError(t, db.Create(&model.Product{BusinessID: biz.ID, Name: "Espresso", Price: 3}).Error)

	demoSale := model.Sale{StoreID: demoStore.ID, CashierID: demoUser.ID, Total: 6}
	sale := model.Sale{StoreID: store.ID, CashierID: cashier.ID, Total: 9}
	require.NoError(t, db.Create(&demoSale).Error)
	require.NoError(t, db.Create(&sale).Error)
	require.NoError(t, db.Create(&model.SaleItem{SaleID: demoSale.ID, Quantity: 2, UnitPrice: 3}).Error)
	require.NoError(t, db.Create(&model.SaleItem{SaleID: sale.ID, Quantity: 3, UnitPrice: 3}).Error)

	// Join rows: one protected by the user side, one by the business side,
	// one not protected at all.
	require.NoError(t, db.Create(&model.UserBusinessRole{UserID: admin.ID, BusinessID: biz.ID, Role: "owner"}).Error)
	require.NoError(t, db.Create(&model.UserBusinessRole{UserID: cashier.ID, BusinessID: demoBiz.ID, Role: "member"}).Error)
	require.NoError(t, db.Create(&model.UserBusinessRole{UserID: cashier.ID, BusinessID: biz.ID, Role: "member"}).Error)

	report, err := newTestEngine(db, cfg).Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Success)
	require.False(t, report.Summary.HasErrors)

	// Demo-owned rows survive.
	assert.EqualValues(t, 1, count(t, db, &model.Business{}, "id = ?", demoBiz.ID))
	assert.EqualValues(t, 1, count(t, db, &model.Store{}, "id = ?", demoStore.ID))
	assert.EqualValues(t, 1, count(t, db, &model.Product{}, "business_id = ?", demoBiz.ID))
	assert.EqualValues(t, 1, count(t, db, &model.Sale{}, "store_id = ?", demoStore.ID))
	assert.EqualValues(t, 1, count(t, db, &model.SaleItem{}, "sale_id = ?", demoSale.ID))

	// Privileged and demo-flagged accounts survive.
	assert.EqualValues(t, 1, count(t, db, &model.User{}, "id = ?", admin.ID))
	assert.EqualValues(t, 1, count(t, db, &model.User{}, "id = ?", demoUser.ID))

	// Join rows survive through either side of the protection.
	assert.EqualValues(t, 1, count(t, db, &model.UserBusinessRole{}, "user_id = ?", admin.ID))
	assert.EqualValues(t, 1, count(t, db, &model.UserBusinessRole{}, "business_id = ?", demoBiz.ID))

	// Everything else is gone.
	assert.EqualValues(t, 0, count(t, db, &model.Business{}, "id = ?", biz.ID))
	assert.EqualValues(t, 0, count(t, db, &model.Store{}, "id = ?", store.ID))
	assert.EqualValues(t, 0, count(t, db, &model.Product{}, "business_id = ?", biz.ID))
	assert.EqualValues(t, 0, count(t, db, &model.Sale{}, "store_id = ?", store.ID))
	assert.EqualValues(t, 0, count(t, db, &model.SaleItem{}, "sale_id = ?", sale.ID))
	assert.EqualValues(t, 0, count(t, db, &model.User{}, "id = ?", cashier.ID))
	assert.EqualValues(t, 0, count(t, db, &model.UserBusinessRole{}, "user_id = ? AND business_id = ?", cashier.ID, biz.ID))
}

func TestDemoBusinessMembersSurvive(t *testing.T) {
	db := newTestDB(t)
	demoBiz, biz, _, _, _, cfg := seedWorld(t, db)

	// Not flagged as demo accounts; only the business FK ties them to the
	// demo world.
	demoMember := model.User{Email: "staff@demo.test", Role: "member", BusinessID: &demoBiz.ID}
	member := model.User{Email: "staff@acme.test", Role: "member", BusinessID: &biz.ID}
	require.NoError(t, db.Create(&demoMember).Error)
	require.NoError(t, db.Create(&member).Error)

	report, err := newTestEngine(db, cfg).Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Success)

	assert.EqualValues(t, 1, count(t, db, &model.User{}, "id = ?", demoMember.ID))
	assert.EqualValues(t, 0, count(t, db, &model.User{}, "id = ?", member.ID))
	assert.EqualValues(t, 1, report.Results["users"].Deleted)
}

func TestRunIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	_, biz, _, store, _, cfg := seedWorld(t, db)

	require.NoError(t, db.Create(&model.Product{BusinessID: biz.ID, Name: "Espresso", Price: 3}).Error)
	require.NoError(t, db.Create(&model.Customer{StoreID: store.ID, Name: "Jo"}).Error)

	engine := newTestEngine(db, cfg)

	first, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.True(t, first.Success)
	require.Greater(t, first.Summary.TotalRecordsDeleted, int64(0))

	second, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.False(t, second.Summary.HasErrors)
	assert.EqualValues(t, 0, second.Summary.TotalRecordsDeleted)
}

func TestStepFailureDoesNotStopTheRun(t *testing.T) {
	db := newTestDB(t)
	_, biz, _, _, _, cfg := seedWorld(t, db)

	require.NoError(t, db.Create(&model.Supplier{BusinessID: biz.ID, Name: "Beans Inc"}).Error)
	require.NoError(t, db.Create(&model.Supplier{BusinessID: biz.ID, Name: "Cups Ltd"}).Error)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.Product{BusinessID: biz.ID, Name: fmt.Sprintf("p%d", i), Price: 1}).Error)
	}

	injected := errors.New("injected store failure")
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test_fail_suppliers", func(tx *gorm.DB) {
		if tx.Statement.Table == "suppliers" {
			tx.AddError(injected)
		}
	}))

	report, err := newTestEngine(db, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Success)
	assert.True(t, report.Summary.HasErrors)

	suppliers := report.Results["suppliers"]
	assert.EqualValues(t, 0, suppliers.Deleted)
	assert.Contains(t, suppliers.Error, "injected store failure")

	// The failed table keeps its rows, every other step still ran.
	assert.EqualValues(t, 2, count(t, db, &model.Supplier{}, ""))
	assert.EqualValues(t, 3, report.Results["products"].Deleted)
	assert.EqualValues(t, 0, count(t, db, &model.Product{}, ""))
	assert.EqualValues(t, 1, report.Results["businesses"].Deleted)
}

func TestUsageRowsFollowTheirParentsProtection(t *testing.T) {
	db := newTestDB(t)
	demoBiz, biz, _, _, _, cfg := seedWorld(t, db)

	demoCoupon := model.Coupon{BusinessID: demoBiz.ID, Code: "DEMO10", Discount: 10}
	coupon := model.Coupon{BusinessID: biz.ID, Code: "ACME10", Discount: 10}
	require.NoError(t, db.Create(&demoCoupon).Error)
	require.NoError(t, db.Create(&coupon).Error)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&model.CouponUsage{CouponID: demoCoupon.ID}).Error)
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.CouponUsage{CouponID: coupon.ID}).Error)
	}

	report, err := newTestEngine(db, cfg).Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Success)

	assert.EqualValues(t, 3, report.Results["coupon_usages"].Deleted)
	assert.EqualValues(t, 2, count(t, db, &model.CouponUsage{}, "coupon_id = ?", demoCoupon.ID))
	assert.EqualValues(t, 0, count(t, db, &model.CouponUsage{}, "coupon_id = ?", coupon.ID))
	assert.EqualValues(t, 1, count(t, db, &model.Coupon{}, "id = ?", demoCoupon.ID))
	assert.EqualValues(t, 0, count(t, db, &model.Coupon{}, "id = ?", coupon.ID))
}

func TestLineItemsAreRemovedWithTheirOrderAndStore(t *testing.T) {
	db := newTestDB(t)
	_, _, _, store, _, cfg := seedWorld(t, db)

	order := model.SupplyOrder{StoreID: store.ID, Status: "received", Total: 120}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&model.SupplyOrderItem{SupplyOrderID: order.ID, Quantity: 10, UnitCost: 6}).Error)
	require.NoError(t, db.Create(&model.SupplyOrderItem{SupplyOrderID: order.ID, Quantity: 5, UnitCost: 12}).Error)
	require.NoError(t, db.Create(&model.SupplyOrderPayment{SupplyOrderID: order.ID, Amount: 120, Method: "card"}).Error)

	report, err := newTestEngine(db, cfg).Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Success)

	// No orphaned line items, no dangling store reference.
	assert.EqualValues(t, 2, report.Results["supply_order_items"].Deleted)
	assert.EqualValues(t, 1, report.Results["supply_order_payments"].Deleted)
	assert.EqualValues(t, 1, report.Results["supply_orders"].Deleted)
	assert.EqualValues(t, 1, report.Results["stores"].Deleted)
	assert.EqualValues(t, 0, count(t, db, &model.SupplyOrderItem{}, ""))
	assert.EqualValues(t, 0, count(t, db, &model.SupplyOrderPayment{}, ""))
	assert.EqualValues(t, 0, count(t, db, &model.SupplyOrder{}, ""))
	assert.EqualValues(t, 0, count(t, db, &model.Store{}, "id = ?", store.ID))
}

func TestNoDeleteIssuedWhenNothingQualifies(t *testing.T) {
	db := newTestDB(t)
	demoBiz, _, demoStore, _, _, cfg := seedWorld(t, db)

	// Remove the non-demo world so every candidate set filters down to empty.
	require.NoError(t, db.Unscoped().Where("id NOT IN ?", []uint{demoBiz.ID}).Delete(&model.Business{}).Error)
	require.NoError(t, db.Unscoped().Where("id NOT IN ?", []uint{demoStore.ID}).Delete(&model.Store{}).Error)

	require.NoError(t, db.Create(&model.Product{BusinessID: demoBiz.ID, Name: "Demo Espresso", Price: 3}).Error)
	require.NoError(t, db.Create(&model.Sale{StoreID: demoStore.ID, Total: 3}).Error)

	var deleteCalls int
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test_count_deletes", func(tx *gorm.DB) {
		deleteCalls++
	}))

	report, err := newTestEngine(db, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.EqualValues(t, 0, report.Summary.TotalRecordsDeleted)
	assert.Equal(t, 0, deleteCalls)
	assert.EqualValues(t, 1, count(t, db, &model.Product{}, ""))
	assert.EqualValues(t, 1, count(t, db, &model.Sale{}, ""))
}

func TestPreviewDeletesNothing(t *testing.T) {
	db := newTestDB(t)
	_, biz, _, store, _, cfg := seedWorld(t, db)

	require.NoError(t, db.Create(&model.Product{BusinessID: biz.ID, Name: "Espresso", Price: 3}).Error)
	require.NoError(t, db.Create(&model.Customer{StoreID: store.ID, Name: "Jo"}).Error)

	var deleteCalls int
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test_count_deletes", func(tx *gorm.DB) {
		deleteCalls++
	}))

	report, err := newTestEngine(db, cfg).Preview(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Greater(t, report.Summary.TotalRecordsDeleted, int64(0))
	assert.EqualValues(t, 1, report.Results["products"].Deleted)
	assert.EqualValues(t, 1, report.Results["customers"].Deleted)

	assert.Equal(t, 0, deleteCalls)
	assert.EqualValues(t, 1, count(t, db, &model.Product{}, ""))
	assert.EqualValues(t, 1, count(t, db, &model.Customer{}, ""))
	assert.EqualValues(t, 1, count(t, db, &model.Business{}, "id = ?", biz.ID))
}
