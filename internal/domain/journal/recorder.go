package journal

import (
	"context"
)

// Recorder 日志记录器
// 上架与出库流程通过它写日志,在事务内调用时与业务写入一起提交或回滚
type Recorder struct {
	repo Repository
}

// NewRecorder 创建日志记录器
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Record 追加一条日志
func (r *Recorder) Record(ctx context.Context, op OperationType, productID uint, quantity int, rackID, batchID *uint, operator, notes string) (*Entry, error) {
	entry, err := NewEntry(op, productID, quantity, rackID, batchID, operator, notes)
	if err != nil {
		return nil, err
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
