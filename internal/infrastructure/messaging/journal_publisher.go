// Package messaging 把仓库日志发布到RabbitMQ
package messaging

import (
	"context"
	"time"

	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/pkg/circuitbreaker"
)

// Sender 底层消息发送(由pkg/mq.Publisher实现)
type Sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// JournalEvent 日志事件消息体
type JournalEvent struct {
	EntryID       uint      `json:"entry_id"`
	OperationType string    `json:"operation_type"`
	ProductID     uint      `json:"product_id"`
	Quantity      int       `json:"quantity"`
	RackID        *uint     `json:"rack_id,omitempty"`
	BatchID       *uint     `json:"batch_id,omitempty"`
	OperationDate time.Time `json:"operation_date"`
	Operator      string    `json:"operator"`
	Notes         string    `json:"notes,omitempty"`
}

// JournalPublisher 实现journal.Publisher
// 路由键: journal.in / journal.out
//
// 教学要点:
// 1. 发布发生在事务提交之后,失败不影响库存数据,只记录告警
// 2. breaker不为nil时,RabbitMQ连续失败后熔断,后续请求直接返回ErrOpenState
type JournalPublisher struct {
	sender  Sender
	breaker *circuitbreaker.Breaker
}

// NewJournalPublisher 创建日志事件发布者,breaker可以为nil
func NewJournalPublisher(sender Sender, breaker *circuitbreaker.Breaker) *JournalPublisher {
	return &JournalPublisher{sender: sender, breaker: breaker}
}

// Publish 发布一条日志事件
func (p *JournalPublisher) Publish(ctx context.Context, e *journal.Entry) error {
	send := func() error {
		return p.sender.Publish(ctx, e.RoutingKey(), NewJournalEvent(e))
	}
	if p.breaker == nil {
		return send()
	}
	return p.breaker.Execute(send)
}

// NewJournalEvent 日志条目 → 事件消息
func NewJournalEvent(e *journal.Entry) JournalEvent {
	return JournalEvent{
		EntryID:       e.ID,
		OperationType: string(e.OperationType),
		ProductID:     e.ProductID,
		Quantity:      e.Quantity,
		RackID:        e.RackID,
		BatchID:       e.BatchID,
		OperationDate: e.OperationDate,
		Operator:      e.Operator,
		Notes:         e.Notes,
	}
}

// NopPublisher 未启用消息队列时使用
type NopPublisher struct{}

// Publish 什么都不做
func (NopPublisher) Publish(context.Context, *journal.Entry) error { return nil }
