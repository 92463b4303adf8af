// Package apptest 用例测试使用的内存SQLite环境
//
// 与生产代码使用同一套GORM模型、迁移和仓储实现,
// 只是驱动换成SQLite(":memory:",单连接)。
package apptest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/mysql"
)

// Env 一个测试独占的数据库及全部仓储
type Env struct {
	DB         *gorm.DB
	Ctx        context.Context
	Tx         *mysql.TxManager
	Categories product.CategoryRepository
	Products   product.Repository
	Racks      rack.Repository
	Batches    batch.Repository
	Placements placement.Repository
	Journal    journal.Repository
}

// NewEnv 创建测试环境,测试结束自动关闭数据库
func NewEnv(t testing.TB) *Env {
	t.Helper()

	db, err := mysql.OpenSQLite(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, mysql.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	return &Env{
		DB:         db,
		Ctx:        context.Background(),
		Tx:         mysql.NewTxManager(db),
		Categories: mysql.NewCategoryRepository(db),
		Products:   mysql.NewProductRepository(db),
		Racks:      mysql.NewRackRepository(db),
		Batches:    mysql.NewBatchRepository(db),
		Placements: mysql.NewPlacementRepository(db),
		Journal:    mysql.NewJournalRepository(db),
	}
}

// Product 创建商品(自动创建同名分类)
func (e *Env) Product(t testing.TB, name, sku string, length, width, height, weight float64) *product.Product {
	t.Helper()
	c, err := product.NewCategory("cat-"+sku, "")
	require.NoError(t, err)
	require.NoError(t, e.Categories.Create(e.Ctx, c))

	p, err := product.NewProduct(name, sku, c.ID, length, width, height, weight, "")
	require.NoError(t, err)
	require.NoError(t, e.Products.Create(e.Ctx, p))
	return p
}

// Rack 创建启用的货架
func (e *Env) Rack(t testing.TB, name string, length, width, height, maxLoad float64) *rack.Rack {
	t.Helper()
	r, err := rack.NewRack(name, length, width, height, maxLoad)
	require.NoError(t, err)
	require.NoError(t, e.Racks.Create(e.Ctx, r))
	return r
}

// Batch 登记到货批次
func (e *Env) Batch(t testing.TB, productID uint, quantity int) *batch.Batch {
	t.Helper()
	b, err := batch.NewBatch(productID, quantity, "ACME", "", time.Now())
	require.NoError(t, err)
	require.NoError(t, e.Batches.Create(e.Ctx, b))
	return b
}

// Place 直接写入一条上架记录(绕过校验,用于构造出库场景)
func (e *Env) Place(t testing.TB, rackID, productID uint, batchID *uint, quantity int, at time.Time) *placement.Placement {
	t.Helper()
	p := placement.NewPlacement(rackID, productID, batchID, quantity, at)
	require.NoError(t, e.Placements.Create(e.Ctx, p))
	return p
}
