package connectivity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/logging"
)

func TestSignal_TransitionsOnly(t *testing.T) {
	s := NewSignal(false)
	assert.False(t, s.IsOnline())

	var got []bool
	unsubscribe := s.Subscribe(func(online bool) { got = append(got, online) })

	assert.False(t, s.Set(false))
	assert.True(t, s.Set(true))
	assert.False(t, s.Set(true))
	assert.True(t, s.Set(false))

	assert.Equal(t, []bool{true, false}, got)

	unsubscribe()
	unsubscribe()
	s.Set(true)
	assert.Equal(t, []bool{true, false}, got)
	assert.True(t, s.IsOnline())
}

func TestSignal_ListenerOrder(t *testing.T) {
	s := NewSignal(false)

	var order []int
	s.Subscribe(func(bool) { order = append(order, 1) })
	unsub := s.Subscribe(func(bool) { order = append(order, 2) })
	s.Subscribe(func(bool) { order = append(order, 3) })
	unsub()

	s.Set(true)
	assert.Equal(t, []int{1, 3}, order)
}

func TestSignal_ListenerMayReadState(t *testing.T) {
	s := NewSignal(false)

	var seen bool
	s.Subscribe(func(bool) { seen = s.IsOnline() })
	s.Set(true)

	assert.True(t, seen)
}

func TestMonitor_Check(t *testing.T) {
	var fail atomic.Bool
	prober := &ProberMock{
		PingFunc: func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			if fail.Load() {
				return errors.New("connection refused")
			}
			return nil
		},
	}

	s := NewSignal(false)
	m := NewMonitor(prober, s, logging.Discard(), WithTimeout(time.Second))

	assert.True(t, m.Check(context.Background()))
	assert.True(t, s.IsOnline())

	fail.Store(true)
	assert.False(t, m.Check(context.Background()))
	assert.False(t, s.IsOnline())

	assert.Len(t, prober.PingCalls(), 2)
}

func TestMonitor_StartStop(t *testing.T) {
	var mu sync.Mutex
	var transitions []bool

	probed := make(chan struct{}, 10)
	prober := &ProberMock{
		PingFunc: func(ctx context.Context) error {
			select {
			case probed <- struct{}{}:
			default:
			}
			return nil
		},
	}

	s := NewSignal(false)
	s.Subscribe(func(online bool) {
		mu.Lock()
		transitions = append(transitions, online)
		mu.Unlock()
	})

	m := NewMonitor(prober, s, logging.Discard(), WithInterval(10*time.Millisecond))

	require.NoError(t, m.Start(context.Background()))
	assert.ErrorIs(t, m.Start(context.Background()), ErrAlreadyRunning)

	// первая проверка выполняется сразу, затем по таймеру
	for i := 0; i < 3; i++ {
		select {
		case <-probed:
		case <-time.After(2 * time.Second):
			t.Fatal("monitor did not probe")
		}
	}

	m.Stop()
	m.Stop()

	calls := len(prober.PingCalls())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, len(prober.PingCalls()), "no probes after Stop")

	mu.Lock()
	assert.Equal(t, []bool{true}, transitions)
	mu.Unlock()

	// Можно запустить снова после остановки
	require.NoError(t, m.Start(context.Background()))
	m.Stop()
}

func TestMonitor_StopsWithContext(t *testing.T) {
	prober := &ProberMock{PingFunc: func(ctx context.Context) error { return nil }}
	m := NewMonitor(prober, NewSignal(false), logging.Discard(), WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool {
		n := len(prober.PingCalls())
		time.Sleep(20 * time.Millisecond)
		return n == len(prober.PingCalls())
	}, time.Second, 10*time.Millisecond)

	m.Stop()
}
