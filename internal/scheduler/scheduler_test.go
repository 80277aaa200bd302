package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/usecasetest"
)

type countingUseCase struct {
	runs  atomic.Int32
	delay time.Duration
	err   error
}

func (c *countingUseCase) Execute(ctx context.Context) (*send_reminders.Response, error) {
	c.runs.Add(1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return &send_reminders.Response{}, nil
}

func TestStartRunsImmediatelyAndStopsOnCancel(t *testing.T) {
	uc := &countingUseCase{}
	s := New(uc, time.Hour, usecasetest.NopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return uc.runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	assert.Equal(t, int32(1), uc.runs.Load())
}

func TestStartRepeatsEveryPeriod(t *testing.T) {
	uc := &countingUseCase{err: errors.New("db down")}
	s := New(uc, time.Second, usecasetest.NopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	// Ошибка цикла не останавливает планировщик
	assert.Eventually(t, func() bool { return uc.runs.Load() >= 3 }, 5*time.Second, 50*time.Millisecond)
}

func TestNewClampsPeriod(t *testing.T) {
	s := New(&countingUseCase{}, time.Millisecond, usecasetest.NopLogger{})
	assert.Equal(t, time.Second, s.period)
}
