package service

import (
	"fmt"
	"strings"

	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/pkg/telegram"

	"github.com/sirupsen/logrus"
)

// Notifier receives timer lifecycle events. Notifications are
// best-effort: failures are logged and never fail the operation.
type Notifier interface {
	TimerStarted(record *models.TimeRecord, property *models.Property, workers []models.Worker)
	TimerStopped(record *models.TimeRecord, property *models.Property, workers []models.Worker)
}

// NoopNotifier is used when no Telegram bot is configured.
type NoopNotifier struct{}

func (NoopNotifier) TimerStarted(*models.TimeRecord, *models.Property, []models.Worker) {}
func (NoopNotifier) TimerStopped(*models.TimeRecord, *models.Property, []models.Worker) {}

// TelegramNotifier posts timer events to the admin chat.
type TelegramNotifier struct {
	client      *telegram.Client
	adminChatID int64
	logger      *logrus.Logger
}

func NewTelegramNotifier(client *telegram.Client, adminChatID int64, logger *logrus.Logger) *TelegramNotifier {
	return &TelegramNotifier{client: client, adminChatID: adminChatID, logger: logger}
}

func (n *TelegramNotifier) TimerStarted(record *models.TimeRecord, property *models.Property, workers []models.Worker) {
	text := fmt.Sprintf("Timer started at %s (%s) by %s",
		property.Name, record.StartTime, workerNames(workers))
	n.send(text)
}

func (n *TelegramNotifier) TimerStopped(record *models.TimeRecord, property *models.Property, workers []models.Worker) {
	minutes := 0
	cost := 0.0
	if record.TotalMinutes != nil {
		minutes = *record.TotalMinutes
	}
	if record.TotalCost != nil {
		cost = *record.TotalCost
	}
	text := fmt.Sprintf("Timer stopped at %s: %dh %02dm, $%.2f (%s)",
		property.Name, minutes/60, minutes%60, cost, workerNames(workers))
	n.send(text)
}

func (n *TelegramNotifier) send(text string) {
	if err := n.client.SendMessage(n.adminChatID, text); err != nil {
		n.logger.WithError(err).Warn("Failed to send Telegram notification")
	}
}

func workerNames(workers []models.Worker) string {
	if len(workers) == 0 {
		return "no workers"
	}
	names := make([]string, 0, len(workers))
	for _, worker := range workers {
		names = append(names, worker.Name)
	}
	return strings.Join(names, ", ")
}
