package report

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/application/apptest"
	"github.com/xiebiao/warehouse/internal/application/notify"
	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/journal"
)

// jsonCache 与Redis实现一样走JSON序列化
type jsonCache struct {
	data map[string][]byte
}

func newJSONCache() *jsonCache { return &jsonCache{data: map[string][]byte{}} }

func (c *jsonCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *jsonCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *jsonCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestDashboard(t *testing.T) {
	env := apptest.NewEnv(t)

	racks := make([]uint, 0, 6)
	for i := 1; i <= 6; i++ {
		r := env.Rack(t, fmt.Sprintf("R%d", i), 100, 50, 200, 100)
		racks = append(racks, r.ID)
	}
	off := env.Rack(t, "Z-off", 10, 10, 10, 10)
	off.SetActive(false)
	require.NoError(t, env.Racks.Update(env.Ctx, off))

	plenty := env.Product(t, "Plenty", "P-1", 100, 50, 10, 1)
	few := env.Product(t, "Few", "P-2", 1, 1, 1, 1)
	none := env.Product(t, "None", "P-3", 1, 1, 1, 1)

	env.Place(t, racks[0], plenty.ID, nil, 12, time.Now())
	env.Place(t, racks[0], few.ID, nil, 3, time.Now())

	recorder := journal.NewRecorder(env.Journal)
	for i := 0; i < 12; i++ {
		_, err := recorder.Record(env.Ctx, journal.OperationIn, plenty.ID, 1, nil, nil, "op", "")
		require.NoError(t, err)
	}

	cache := newJSONCache()
	uc := NewDashboardUseCase(env.Products, env.Racks, env.Placements, env.Journal, cache, 10)

	d, err := uc.Execute(env.Ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, d.TotalProducts)
	assert.Equal(t, 6, d.ActiveRacks)
	assert.EqualValues(t, 2, d.ActivePlacements)
	assert.EqualValues(t, 15, d.TotalQuantity)
	assert.Len(t, d.RecentEntries, 10)

	require.Len(t, d.LowStock, 2)
	assert.Equal(t, few.ID, d.LowStock[0].ProductID)
	assert.Equal(t, 3, d.LowStock[0].Quantity)
	assert.Equal(t, none.ID, d.LowStock[1].ProductID)
	assert.Equal(t, 0, d.LowStock[1].Quantity)

	require.Len(t, d.RackUsage, 5)
	assert.Equal(t, "R1", d.RackUsage[0].Name)
	// 12 * 50000 + 3 * 1 = 600003 / 1000000
	assert.Equal(t, 60.0, d.RackUsage[0].UtilizationPercent)
	assert.Equal(t, 0.0, d.RackUsage[1].UtilizationPercent)

	// 命中缓存:新增的上架不可见
	env.Place(t, racks[1], none.ID, nil, 20, time.Now())
	cached, err := uc.Execute(env.Ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 15, cached.TotalQuantity)
	assert.Len(t, cached.LowStock, 2)

	// 缓存删除后重新计算
	require.NoError(t, cache.Delete(env.Ctx, notify.DashboardKey))
	fresh, err := uc.Execute(env.Ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 35, fresh.TotalQuantity)
	require.Len(t, fresh.LowStock, 1)
	assert.Equal(t, few.ID, fresh.LowStock[0].ProductID)
}

func TestDashboard_LowStockLimit(t *testing.T) {
	env := apptest.NewEnv(t)
	for i := 0; i < 7; i++ {
		env.Product(t, fmt.Sprintf("P%d", i), fmt.Sprintf("SKU-%d", i), 1, 1, 1, 1)
	}

	d, err := NewDashboardUseCase(env.Products, env.Racks, env.Placements, env.Journal, nil, 10).Execute(env.Ctx)
	require.NoError(t, err)
	require.Len(t, d.LowStock, 5)
	assert.Equal(t, "P0", d.LowStock[0].Name)
	assert.Equal(t, "P4", d.LowStock[4].Name)
	assert.Empty(t, d.RackUsage)
}

func TestSearch(t *testing.T) {
	env := apptest.NewEnv(t)
	uc := NewSearchUseCase(env.Products, env.Placements)

	r := env.Rack(t, "R1", 100, 50, 200, 100)
	p := env.Product(t, "Phone Case", "PC-1", 15, 7, 1, 0.2)
	env.Product(t, "Charger", "CH-1", 5, 5, 5, 0.3)
	env.Place(t, r.ID, p.ID, nil, 4, time.Now())
	env.Place(t, r.ID, p.ID, nil, 6, time.Now())

	results, err := uc.Execute(env.Ctx, "CASE")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, p.ID, results[0].Product.ID)
	assert.Len(t, results[0].Placements, 2)
	assert.Equal(t, 10, results[0].TotalQuantity)
	assert.Equal(t, "R1", results[0].Placements[0].RackName)

	// 按SKU
	results, err = uc.Execute(env.Ctx, "ch-")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Charger", results[0].Product.Name)
	assert.Zero(t, results[0].TotalQuantity)

	results, err = uc.Execute(env.Ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestJournal(t *testing.T) {
	env := apptest.NewEnv(t)
	uc := NewJournalUseCase(env.Journal)
	p := env.Product(t, "Phone Case", "PC-1", 15, 7, 1, 0.2)

	recorder := journal.NewRecorder(env.Journal)
	_, err := recorder.Record(env.Ctx, journal.OperationIn, p.ID, 5, nil, nil, "alice", "")
	require.NoError(t, err)
	_, err = recorder.Record(env.Ctx, journal.OperationOut, p.ID, 2, nil, nil, "bob", journal.NoteFullIssue)
	require.NoError(t, err)

	entries, total, err := uc.Execute(env.Ctx, journal.ListParams{OperationType: journal.OperationOut})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "bob", entries[0].Operator)

	_, _, err = uc.Execute(env.Ctx, journal.ListParams{OperationType: "MOVE"})
	assert.ErrorIs(t, err, journal.ErrInvalidOperation)
}

func TestBatchList(t *testing.T) {
	env := apptest.NewEnv(t)
	uc := NewBatchListUseCase(env.Batches)
	p := env.Product(t, "Phone Case", "PC-1", 15, 7, 1, 0.2)

	older, err := batch.NewBatch(p.ID, 10, "ACME", "", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	require.NoError(t, env.Batches.Create(env.Ctx, older))
	newer := env.Batch(t, p.ID, 20)

	list, total, err := uc.List(env.Ctx, batch.ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, "Phone Case", list[0].ProductName)
	assert.Equal(t, 20, list[0].InitialRemaining())

	got, err := uc.Get(env.Ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	_, err = uc.Get(env.Ctx, 999)
	assert.ErrorIs(t, err, batch.ErrBatchNotFound)
}
