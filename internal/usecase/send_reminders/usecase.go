package send_reminders

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case одного цикла отправки напоминаний
type UseCase struct {
	bookingRepo  BookingRepository
	languages    LanguageResolver
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	config       Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	languages LanguageResolver,
	notifier Notifier,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	if config.Location == nil {
		config.Location = DefaultConfig().Location
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		languages:    languages,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		config:       config,
		logger:       logger,
	}
}

// Execute находит завершенные бронирования, визит по которым попадает в окно
// [now+Lead, now+Lead+Window], и отправляет напоминания.
// Флаг reminder_sent ставится только после успешной отправки, неудачные попытки
// повторяются в следующем цикле. Ошибки по отдельному бронированию не возвращаются.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.config.Location)
	window := domain.NewReminderWindow(now, uc.config.Lead, uc.config.Window)

	uc.logger.Info("SendReminders: scanning window %s - %s",
		window.Start.Format("2006-01-02 15:04"), window.End.Format("2006-01-02 15:04"))

	// 1. Получаем бронирования в окне
	due, err := uc.bookingRepo.GetDueReminders(ctx, window)
	if err != nil {
		uc.logger.Error("SendReminders: failed to get due bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get due bookings: %v", ErrStoreUnavailable, err)
	}

	resp := &Response{Window: window, Due: len(due)}

	// 2. Отправляем по одному
	for _, details := range due {
		if ctx.Err() != nil {
			uc.logger.Warn("SendReminders: cycle interrupted, %d/%d processed", resp.Sent+resp.Failed, resp.Due)
			break
		}

		result := uc.remind(ctx, details)
		uc.observe(result)
		if result == ResultSent {
			resp.Sent++
		} else {
			resp.Failed++
		}
	}

	uc.logger.Info("SendReminders: due=%d, sent=%d, failed=%d", resp.Due, resp.Sent, resp.Failed)
	return resp, nil
}

func (uc *UseCase) remind(ctx context.Context, details *domain.BookingDetails) string {
	lang, err := uc.languages.Language(ctx, details.UserID)
	if err != nil {
		uc.logger.Warn("SendReminders: failed to resolve language for user=%d, using %s: %v",
			details.UserID, domain.DefaultLanguage, err)
		lang = domain.DefaultLanguage
	}

	reminder := domain.Reminder{
		BookingID:    details.ID,
		CategoryName: details.Category.LocalizedName(lang),
		Date:         details.BookingDate,
		Time:         ptr.Value(details.StartTime).String(),
		PartySize:    ptr.Value(details.PartySize),
		Language:     lang,
	}

	if err := uc.notifier.SendReminder(ctx, details.UserID, reminder); err != nil {
		uc.logger.Error("SendReminders: failed to notify user=%d about booking id=%d: %v",
			details.UserID, details.ID, err)
		return ResultSendFailed
	}

	if err := uc.bookingRepo.MarkReminderSent(ctx, details.ID); err != nil {
		uc.logger.Error("SendReminders: reminder for booking id=%d sent but not marked: %v", details.ID, err)
		return ResultMarkFailed
	}

	return ResultSent
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveReminder(result)
	}
}
