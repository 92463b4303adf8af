package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker unreachable")

// clock 可手动拨动的时钟,避免测试里sleep
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBreaker(s Settings) (*Breaker, *clock) {
	clk := &clock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	b := New(s)
	b.now = clk.Now
	b.toNewGeneration(clk.Now())
	return b, clk
}

func fail() error    { return errBroker }
func succeed() error { return nil }

func TestBreaker_Defaults(t *testing.T) {
	b, _ := newBreaker(Settings{Name: "journal"})

	assert.Equal(t, "journal", b.Name())
	assert.Equal(t, StateClosed, b.State())

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, b.Execute(fail), errBroker)
	}
	assert.Equal(t, StateClosed, b.State())

	// 第5次连续失败触发熔断
	assert.ErrorIs(t, b.Execute(fail), errBroker)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	b, _ := newBreaker(Settings{})

	for i := 0; i < 4; i++ {
		_ = b.Execute(fail)
	}
	require.NoError(t, b.Execute(succeed))
	for i := 0; i < 4; i++ {
		_ = b.Execute(fail)
	}

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(4), b.Counts().ConsecutiveFailures)
}

func TestBreaker_OpenFailsFast(t *testing.T) {
	b, _ := newBreaker(Settings{ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 }})
	_ = b.Execute(fail)

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	var transitions []string
	b, clk := newBreaker(Settings{
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 2 },
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(fail)
	_ = b.Execute(fail)
	require.Equal(t, StateOpen, b.State())

	// 超时前仍然熔断
	clk.Advance(9 * time.Second)
	assert.ErrorIs(t, b.Execute(succeed), ErrOpenState)

	// 超时后半开,探测成功恢复
	clk.Advance(2 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())
	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateClosed, b.State())

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, clk := newBreaker(Settings{
		Timeout:     time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	_ = b.Execute(fail)
	clk.Advance(2 * time.Second)
	require.Equal(t, StateHalfOpen, b.State())

	_ = b.Execute(fail)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, clk := newBreaker(Settings{
		MaxRequests: 1,
		Timeout:     time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})
	_ = b.Execute(fail)
	clk.Advance(2 * time.Second)

	// 第一个探测请求执行中,第二个请求被拒绝
	probeStarted := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- b.Execute(func() error {
			close(probeStarted)
			<-release
			return nil
		})
	}()

	<-probeStarted
	assert.ErrorIs(t, b.Execute(succeed), ErrOpenState)
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_IntervalResetsCounts(t *testing.T) {
	b, clk := newBreaker(Settings{Interval: time.Minute})

	for i := 0; i < 4; i++ {
		_ = b.Execute(fail)
	}
	clk.Advance(2 * time.Minute)

	// 新窗口重新计数,再失败4次也不熔断
	for i := 0; i < 4; i++ {
		_ = b.Execute(fail)
	}
	assert.Equal(t, StateClosed, b.State())
}
