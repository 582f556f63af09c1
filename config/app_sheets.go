package config

import (
	"os"
	"time"

	"github.com/affhub/meetup-backend/internal/log"
	"github.com/affhub/meetup-backend/pkg/sheets"
	"github.com/affhub/meetup-backend/pkg/utils"
)

type SheetsConfig struct {
	WebhookURL string
	SheetRange string
	Timeout    time.Duration
}

func NewSheetsConfig() *SheetsConfig {
	timeout := 5 * time.Second
	if raw := utils.GetEnvTrimmed("SHEETS_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return &SheetsConfig{
		WebhookURL: os.Getenv("SHEETS_WEBHOOK_URL"),
		SheetRange: utils.GetEnvTrimmedOrDefault("SHEETS_RANGE", "registrations!A2:B"),
		Timeout:    timeout,
	}
}

func (sc *SheetsConfig) IsConfigured() bool {
	return sc.WebhookURL != ""
}

// NewClientOrNil returns nil when no webhook is configured; registration then
// skips the spreadsheet notification entirely.
func (sc *SheetsConfig) NewClientOrNil(logger *log.Logger) *sheets.Client {
	if !sc.IsConfigured() {
		logger.Info("Spreadsheet sink is not configured; registrations will not be exported")
		return nil
	}

	logger.Info("Spreadsheet sink configured", "range", sc.SheetRange)

	return sheets.NewClient(&sheets.Config{
		WebhookURL: sc.WebhookURL,
		SheetRange: sc.SheetRange,
		Timeout:    sc.Timeout,
		Logger:     logger,
	})
}
