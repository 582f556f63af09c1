package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/affhub/meetup-backend/config"
	"github.com/affhub/meetup-backend/domain/prize"
	"github.com/affhub/meetup-backend/internal/log"
	"github.com/affhub/meetup-backend/internal/models"
	"github.com/affhub/meetup-backend/pkg/utils"
)

type seedPrize struct {
	Title  string `json:"title"`
	Amount int    `json:"amount"`
}

// defaultPrizes is the meetup's wheel inventory, used when PRIZES_FILE is not
// set. Order matters: the wheel segments map to list positions.
var defaultPrizes = []seedPrize{
	{Title: "Everad backpack", Amount: 5},
	{Title: "Everad thermo mug", Amount: 10},
	{Title: "Everad USB wristband", Amount: 30},
	{Title: "Everad powerbank", Amount: 5},
	{Title: "Affhub pins", Amount: 40},
	{Title: "Affhub windbreaker", Amount: 10},
	{Title: "Affhub USB lighter", Amount: 30},
	{Title: "Affhub pullover", Amount: 10},
}

// SeedPrizes loads the prize inventory. A non-empty prizes table is left
// untouched: seeding happens once at setup time, only amount mutates after.
func SeedPrizes(logger *log.Logger) error {
	dbCfg := &config.DBConfig{}
	db, err := config.NewDatabase(logger, dbCfg)
	if err != nil {
		return err
	}
	defer config.CloseDatabase(db, logger)

	seeds := defaultPrizes
	if path := utils.GetEnvTrimmed("PRIZES_FILE"); path != "" {
		loaded, err := loadPrizesFile(path)
		if err != nil {
			return err
		}
		seeds = loaded
		logger.Info("Loaded prize definitions", "file", path, "count", len(seeds))
	}

	prizes := make([]*models.Prize, 0, len(seeds))
	for _, s := range seeds {
		prizes = append(prizes, &models.Prize{Title: s.Title, Amount: s.Amount})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repository := prize.NewPrizeRepository(db)
	inserted, err := repository.SeedPrizes(ctx, prizes)
	if err != nil {
		return err
	}

	if inserted == 0 {
		logger.Info("Prize inventory already seeded; nothing to do")
	} else {
		logger.Info("Prize inventory seeded", "count", inserted)
	}

	return nil
}

func loadPrizesFile(path string) ([]seedPrize, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seeds []seedPrize
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, err
	}

	return seeds, nil
}
