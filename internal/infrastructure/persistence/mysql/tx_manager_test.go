package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/domain/placement"
)

func TestTxManager_RollbackOnError(t *testing.T) {
	f := newFixture(t)
	tx := NewTxManager(f.db)
	c := f.category(t, "配件")
	p := f.product(t, "手机壳", "CASE-1", c.ID)
	r := f.rack(t, "A-01")

	boom := errors.New("boom")
	err := tx.Transaction(f.ctx, func(ctx context.Context) error {
		pl := placement.NewPlacement(r.ID, p.ID, nil, 10, time.Now())
		if err := f.placements.Create(ctx, pl); err != nil {
			return err
		}
		e, err := journal.NewEntry(journal.OperationIn, p.ID, 10, nil, nil, "op", "")
		if err != nil {
			return err
		}
		if err := f.journal.Append(ctx, e); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	active, err := f.placements.ListActiveByProduct(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, total, err := f.journal.List(f.ctx, journal.ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTxManager_Commit(t *testing.T) {
	f := newFixture(t)
	tx := NewTxManager(f.db)
	c := f.category(t, "配件")
	p := f.product(t, "手机壳", "CASE-1", c.ID)
	r := f.rack(t, "A-01")

	err := tx.Transaction(f.ctx, func(ctx context.Context) error {
		// 事务内读取必须走事务连接(单连接SQLite下否则会卡住)
		if _, err := f.racks.LockByID(ctx, r.ID); err != nil {
			return err
		}
		return f.placements.Create(ctx, placement.NewPlacement(r.ID, p.ID, nil, 10, time.Now()))
	})
	require.NoError(t, err)

	active, err := f.placements.ListActiveByProduct(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
