// Package scheduler периодически запускает отправку напоминаний
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ReservationService/internal/usecase/send_reminders"
)

// ReminderUseCase один цикл отправки напоминаний
type ReminderUseCase interface {
	Execute(ctx context.Context) (*send_reminders.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает цикл сразу и затем каждые period.
// Следующий цикл пропускается, если предыдущий еще выполняется.
type Scheduler struct {
	useCase ReminderUseCase
	period  time.Duration
	logger  Logger
}

// New создает планировщик. period округляется до секунды, минимум секунда.
func New(useCase ReminderUseCase, period time.Duration, logger Logger) *Scheduler {
	if period < time.Second {
		period = time.Second
	}
	return &Scheduler{
		useCase: useCase,
		period:  period,
		logger:  logger,
	}
}

// Start блокируется до отмены ctx и возвращается после завершения текущего цикла
func (s *Scheduler) Start(ctx context.Context) {
	c := cron.New(
		cron.WithLogger(cronLogger{logger: s.logger}),
		cron.WithChain(
			cron.Recover(cronLogger{logger: s.logger}),
			cron.SkipIfStillRunning(cronLogger{logger: s.logger}),
		),
	)
	c.Schedule(cron.Every(s.period), cron.FuncJob(func() { s.runCycle(ctx) }))

	s.logger.Info("Scheduler: started, period=%s", s.period)
	s.runCycle(ctx)
	c.Start()

	<-ctx.Done()

	// Stop не прерывает работающий цикл, ждем его завершения
	<-c.Stop().Done()
	s.logger.Info("Scheduler: stopped")
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	resp, err := s.useCase.Execute(ctx)
	if err != nil {
		s.logger.Error("Scheduler: reminder cycle failed: %v", err)
		return
	}

	s.logger.Info("Scheduler: reminder cycle done in %s, due=%d sent=%d failed=%d",
		time.Since(start).Round(time.Millisecond), resp.Due, resp.Sent, resp.Failed)
}

// cronLogger адаптирует Logger к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// Из Info-сообщений cron интересен только пропуск запуска
	if msg == "skip" {
		l.logger.Warn("Scheduler: previous cycle still running, skipping")
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Scheduler: %s: %v %s", msg, err, fmt.Sprint(keysAndValues...))
}
