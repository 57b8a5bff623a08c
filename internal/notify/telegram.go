package notify

import (
	"fmt"
	"worklog-service/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// TelegramNotifier delivers review notifications to employees who have a
// Telegram chat ID on their profile. Employees without one are skipped.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	logger *logrus.Logger
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logger.Infof("Telegram notifier authorized on account %s", bot.Self.UserName)

	return &TelegramNotifier{
		bot:    bot,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) NotifySubmitted(week *models.WeekSubmission, manager *models.Employee) error {
	if manager == nil || manager.TelegramChatID == nil {
		return nil
	}

	text := fmt.Sprintf("Week of %s submitted for review: %d days, %s logged.",
		week.WeekStart.Format("2006-01-02"),
		week.DaysLogged,
		formatMinutes(week.TotalMinutes))

	return n.send(*manager.TelegramChatID, text)
}

func (n *TelegramNotifier) NotifyReviewed(week *models.WeekSubmission, employee *models.Employee, action, comment string) error {
	if employee == nil || employee.TelegramChatID == nil {
		return nil
	}

	var text string
	switch action {
	case models.ActionApproved:
		text = fmt.Sprintf("Your week of %s was approved.", week.WeekStart.Format("2006-01-02"))
	case models.ActionRework:
		text = fmt.Sprintf("Your week of %s was sent back for rework: %s", week.WeekStart.Format("2006-01-02"), comment)
	default:
		return fmt.Errorf("unknown review action: %q", action)
	}

	return n.send(*employee.TelegramChatID, text)
}

func (n *TelegramNotifier) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send notification")
		return err
	}

	n.logger.WithField("chat_id", chatID).Debug("Notification sent")
	return nil
}

func formatMinutes(minutes int) string {
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}
