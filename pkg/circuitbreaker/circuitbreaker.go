// Package circuitbreaker 熔断器
//
// 用于保护事务提交后的外部调用(如RabbitMQ日志事件发布):
// 下游连续失败后进入OPEN状态快速失败,不再让每个上架/出库请求等待超时;
// Timeout之后进入HALF_OPEN放行少量探测请求,成功则恢复CLOSED。
//
// 状态转换:
//
//	CLOSED --(ReadyToTrip)--> OPEN --(Timeout)--> HALF_OPEN --(成功)--> CLOSED
//	                                                 |
//	                                                 +--(失败)--> OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行,统计失败
	StateOpen                  // 熔断,全部快速失败
	StateHalfOpen              // 探测,放行MaxRequests个请求
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开(或半开且探测名额已用完)
var ErrOpenState = errors.New("circuit breaker is open")

// Settings 熔断器配置,零值字段使用默认值
type Settings struct {
	Name        string
	MaxRequests uint32        // 半开状态允许的探测请求数,默认1
	Interval    time.Duration // CLOSED状态的统计窗口,0表示不按窗口清零
	Timeout     time.Duration // OPEN持续时间,默认30s

	// ReadyToTrip 是否应该熔断,默认连续失败5次
	ReadyToTrip func(counts Counts) bool

	// OnStateChange 状态变化回调(记录日志、更新指标)
	OnStateChange func(name string, from, to State)
}

// Counts 当前统计窗口内的计数
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// Breaker 熔断器,并发安全
type Breaker struct {
	name          string
	maxRequests   uint32
	interval      time.Duration
	timeout       time.Duration
	readyToTrip   func(Counts) bool
	onStateChange func(string, State, State)
	now           func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换+1,丢弃切换前发出的请求结果
	counts     Counts
	expiry     time.Time
}

// New 创建熔断器
func New(s Settings) *Breaker {
	b := &Breaker{
		name:          s.Name,
		maxRequests:   s.MaxRequests,
		interval:      s.Interval,
		timeout:       s.Timeout,
		readyToTrip:   s.ReadyToTrip,
		onStateChange: s.OnStateChange,
		now:           time.Now,
	}
	if b.maxRequests == 0 {
		b.maxRequests = 1
	}
	if b.timeout <= 0 {
		b.timeout = 30 * time.Second
	}
	if b.readyToTrip == nil {
		b.readyToTrip = func(c Counts) bool { return c.ConsecutiveFailures >= 5 }
	}
	b.toNewGeneration(b.now())
	return b
}

// Name 熔断器名称
func (b *Breaker) Name() string {
	return b.name
}

// Execute 在熔断器保护下执行fn
// 熔断时不调用fn,直接返回ErrOpenState;否则返回fn的错误
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.beforeRequest()
	if err != nil {
		return err
	}

	err = fn()
	b.afterRequest(generation, err == nil)
	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, _ := b.currentState(b.now())
	return state
}

// Counts 当前统计
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.counts
}

func (b *Breaker) beforeRequest() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, generation := b.currentState(b.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && b.counts.Requests >= b.maxRequests:
		return generation, ErrOpenState
	}

	b.counts.Requests++
	return generation, nil
}

func (b *Breaker) afterRequest(before uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state, generation := b.currentState(now)
	if generation != before {
		return
	}

	if success {
		b.counts.onSuccess()
		if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.maxRequests {
			b.setState(StateClosed, now)
		}
		return
	}

	b.counts.onFailure()
	switch state {
	case StateClosed:
		if b.readyToTrip(b.counts) {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		b.setState(StateOpen, now)
	}
}

// currentState 处理到期:CLOSED窗口到期清零,OPEN到期转HALF_OPEN
func (b *Breaker) currentState(now time.Time) (State, uint64) {
	switch b.state {
	case StateClosed:
		if !b.expiry.IsZero() && b.expiry.Before(now) {
			b.toNewGeneration(now)
		}
	case StateOpen:
		if b.expiry.Before(now) {
			b.setState(StateHalfOpen, now)
		}
	}
	return b.state, b.generation
}

func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.toNewGeneration(now)

	if b.onStateChange != nil {
		b.onStateChange(b.name, prev, state)
	}
}

func (b *Breaker) toNewGeneration(now time.Time) {
	b.generation++
	b.counts = Counts{}

	switch b.state {
	case StateClosed:
		if b.interval > 0 {
			b.expiry = now.Add(b.interval)
		} else {
			b.expiry = time.Time{}
		}
	case StateOpen:
		b.expiry = now.Add(b.timeout)
	default:
		b.expiry = time.Time{}
	}
}
