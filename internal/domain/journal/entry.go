package journal

import (
	"fmt"
	"strings"
	"time"
)

// OperationType 操作类型
type OperationType string

const (
	OperationIn  OperationType = "IN"  // 上架入库
	OperationOut OperationType = "OUT" // 出库
)

// Valid 是否为合法的操作类型
func (t OperationType) Valid() bool {
	return t == OperationIn || t == OperationOut
}

// 自动生成的备注
const (
	NotePartialIssue = "Partial issue"
	NoteFullIssue    = "Full issue"
)

// PlacementNote 上架日志的备注,引用批次号
func PlacementNote(batchID uint) string {
	return fmt.Sprintf("Placement of batch #%d", batchID)
}

// Entry 仓库日志条目
// 只追加,创建后不修改不删除,是库存变动的权威审计记录
type Entry struct {
	ID            uint
	OperationType OperationType
	ProductID     uint
	Quantity      int
	RackID        *uint
	BatchID       *uint
	OperationDate time.Time
	Operator      string
	Notes         string

	// 只读展示字段
	ProductName string
	RackName    string
}

// NewEntry 创建日志条目
// 只校验必填项,业务规则由上架/出库流程保证
func NewEntry(op OperationType, productID uint, quantity int, rackID, batchID *uint, operator, notes string) (*Entry, error) {
	if !op.Valid() {
		return nil, ErrInvalidOperation
	}
	if productID == 0 || quantity < 1 {
		return nil, ErrMissingField
	}
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return nil, ErrMissingField
	}

	return &Entry{
		OperationType: op,
		ProductID:     productID,
		Quantity:      quantity,
		RackID:        rackID,
		BatchID:       batchID,
		OperationDate: time.Now(),
		Operator:      operator,
		Notes:         notes,
	}, nil
}

// RoutingKey 发布到消息队列时的路由键: journal.in / journal.out
func (e *Entry) RoutingKey() string {
	return "journal." + strings.ToLower(string(e.OperationType))
}
