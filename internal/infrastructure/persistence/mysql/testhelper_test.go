package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
)

// newTestDB 每个测试一个独立的内存SQLite库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenSQLite(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

type fixture struct {
	db         *gorm.DB
	ctx        context.Context
	categories product.CategoryRepository
	products   product.Repository
	racks      rack.Repository
	placements placement.Repository
	journal    journal.Repository
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		db:         db,
		ctx:        context.Background(),
		categories: NewCategoryRepository(db),
		products:   NewProductRepository(db),
		racks:      NewRackRepository(db),
		placements: NewPlacementRepository(db),
		journal:    NewJournalRepository(db),
	}
}

func (f *fixture) category(t *testing.T, name string) *product.Category {
	t.Helper()
	c, err := product.NewCategory(name, "")
	require.NoError(t, err)
	require.NoError(t, f.categories.Create(f.ctx, c))
	return c
}

func (f *fixture) product(t *testing.T, name, sku string, categoryID uint) *product.Product {
	t.Helper()
	p, err := product.NewProduct(name, sku, categoryID, 15, 7, 1, 0.2, "")
	require.NoError(t, err)
	require.NoError(t, f.products.Create(f.ctx, p))
	return p
}

func (f *fixture) rack(t *testing.T, name string) *rack.Rack {
	t.Helper()
	r, err := rack.NewRack(name, 100, 50, 200, 100)
	require.NoError(t, err)
	require.NoError(t, f.racks.Create(f.ctx, r))
	return r
}

func (f *fixture) place(t *testing.T, rackID, productID uint, batchID *uint, qty int, at time.Time) *placement.Placement {
	t.Helper()
	p := placement.NewPlacement(rackID, productID, batchID, qty, at)
	require.NoError(t, f.placements.Create(f.ctx, p))
	return p
}

func uintPtr(v uint) *uint { return &v }
