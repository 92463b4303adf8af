package report

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/journal"
)

// JournalUseCase 仓库日志查询
type JournalUseCase struct {
	journalRepo journal.Repository
}

// NewJournalUseCase 创建日志查询用例
func NewJournalUseCase(journalRepo journal.Repository) *JournalUseCase {
	return &JournalUseCase{journalRepo: journalRepo}
}

// Execute 按操作时间倒序分页查询
// 分页默认50条,最大100条(由仓储限制)
func (uc *JournalUseCase) Execute(ctx context.Context, params journal.ListParams) ([]*journal.Entry, int64, error) {
	if params.OperationType != "" && !params.OperationType.Valid() {
		return nil, 0, journal.ErrInvalidOperation
	}
	return uc.journalRepo.List(ctx, params)
}
