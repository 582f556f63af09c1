package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/affhub/meetup-backend/config"
	"github.com/affhub/meetup-backend/config/router"
	"github.com/affhub/meetup-backend/domain"
	"github.com/affhub/meetup-backend/internal/log"
	"github.com/affhub/meetup-backend/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type PrizeAPITestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	baseURL   string
	logger    *log.Logger
	appConfig *config.ApplicationConfig
}

func (s *PrizeAPITestSuite) SetupSuite() {
	var err error
	s.db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=10000"), &gorm.Config{})
	s.Require().NoError(err)

	// SQLite serializes writes at the database level. Limiting to one open
	// connection prevents "database is locked" errors under concurrent load.
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = s.db.AutoMigrate(&models.Prize{}, &models.Registrant{})
	s.Require().NoError(err)

	s.logger = log.NewLoggerWithJSONOutput()

	s.appConfig = &config.ApplicationConfig{
		DB:     s.db,
		Logger: s.logger,
	}

	s.appConfig.RouterService = router.CreateRouterService(s.logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(s.appConfig)

	s.server = httptest.NewServer(s.appConfig.RouterService.GetEngine())
	s.baseURL = s.server.URL
}

func (s *PrizeAPITestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.db != nil {
		sqlDB, _ := s.db.DB()
		sqlDB.Close()
	}
}

func (s *PrizeAPITestSuite) SetupTest() {
	s.db.Exec("DELETE FROM registrants")
	s.db.Exec("DELETE FROM prizes")
}

// Helper methods

func (s *PrizeAPITestSuite) seedPrizes(prizes ...models.Prize) []models.Prize {
	for i := range prizes {
		s.Require().NoError(s.db.Create(&prizes[i]).Error)
	}
	return prizes
}

func (s *PrizeAPITestSuite) createRegistrant(phone string) models.Registrant {
	registrant := models.Registrant{Name: "Spinner", Phone: &phone}
	s.Require().NoError(s.db.Create(&registrant).Error)
	return registrant
}

func (s *PrizeAPITestSuite) allocate(registrantID, prizeID uint) (*http.Response, map[string]any) {
	body, _ := json.Marshal(map[string]any{"user_id": registrantID})
	url := fmt.Sprintf("%s/api/prizes/%d", s.baseURL, prizeID)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	var response map[string]any
	err = json.NewDecoder(resp.Body).Decode(&response)
	s.Require().NoError(err)
	return resp, response
}

func (s *PrizeAPITestSuite) TestListPrizes() {
	s.seedPrizes(
		models.Prize{Title: "Backpack", Amount: 5},
		models.Prize{Title: "Mug", Amount: 10},
	)

	resp, err := http.Get(s.baseURL + "/api/prizes")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]any
	err = json.NewDecoder(resp.Body).Decode(&response)
	s.Require().NoError(err)

	data := response["data"].([]any)
	s.Len(data, 2)

	first := data[0].(map[string]any)
	s.Equal("Backpack", first["title"])
	s.Equal(float64(5), first["amount"])
}

func (s *PrizeAPITestSuite) TestSuggestionPointsToAvailablePrize() {
	prizes := s.seedPrizes(
		models.Prize{Title: "Backpack", Amount: 0},
		models.Prize{Title: "Mug", Amount: 3},
		models.Prize{Title: "Powerbank", Amount: 0},
	)

	resp, err := http.Get(s.baseURL + "/api/prizes/suggestion")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]any
	err = json.NewDecoder(resp.Body).Decode(&response)
	s.Require().NoError(err)

	index := int(response["data"].(map[string]any)["index"].(float64))
	s.GreaterOrEqual(index, 0)
	s.Less(index, len(prizes))
	s.Greater(prizes[index].Amount, 0)
}

func (s *PrizeAPITestSuite) TestSuggestionAllExhausted() {
	s.seedPrizes(
		models.Prize{Title: "Backpack", Amount: 0},
		models.Prize{Title: "Mug", Amount: 0},
	)

	resp, err := http.Get(s.baseURL + "/api/prizes/suggestion")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]any
	err = json.NewDecoder(resp.Body).Decode(&response)
	s.Require().NoError(err)

	index := int(response["data"].(map[string]any)["index"].(float64))
	s.Equal(-1, index)
}

func (s *PrizeAPITestSuite) TestAllocatePrize() {
	prizes := s.seedPrizes(models.Prize{Title: "Backpack", Amount: 5})
	registrant := s.createRegistrant("+380501111111")

	resp, response := s.allocate(registrant.ID, prizes[0].ID)
	s.Equal(http.StatusOK, resp.StatusCode)

	data := response["data"].(map[string]any)
	s.Equal(float64(prizes[0].ID), data["prize_id"])
	s.Equal("Backpack", data["prize_title"])

	var prize models.Prize
	s.Require().NoError(s.db.First(&prize, prizes[0].ID).Error)
	s.Equal(4, prize.Amount)

	var updated models.Registrant
	s.Require().NoError(s.db.First(&updated, registrant.ID).Error)
	s.Require().NotNil(updated.PrizeID)
	s.Equal(prizes[0].ID, *updated.PrizeID)
}

func (s *PrizeAPITestSuite) TestAllocateTwiceConflicts() {
	prizes := s.seedPrizes(
		models.Prize{Title: "Backpack", Amount: 5},
		models.Prize{Title: "Mug", Amount: 5},
	)
	registrant := s.createRegistrant("+380502222222")

	resp, _ := s.allocate(registrant.ID, prizes[0].ID)
	s.Equal(http.StatusOK, resp.StatusCode)

	// A second spin, even for a different prize, must be rejected.
	resp, response := s.allocate(registrant.ID, prizes[1].ID)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Contains(response["message"], "already has a prize")

	// The losing attempt must not consume inventory.
	var mug models.Prize
	s.Require().NoError(s.db.First(&mug, prizes[1].ID).Error)
	s.Equal(5, mug.Amount)
}

func (s *PrizeAPITestSuite) TestAllocateExhaustedPrize() {
	prizes := s.seedPrizes(models.Prize{Title: "Backpack", Amount: 0})
	registrant := s.createRegistrant("+380503333333")

	resp, response := s.allocate(registrant.ID, prizes[0].ID)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Contains(response["message"], "out of stock")

	var updated models.Registrant
	s.Require().NoError(s.db.First(&updated, registrant.ID).Error)
	s.Nil(updated.PrizeID)
}

func (s *PrizeAPITestSuite) TestAllocateUnknownPrize() {
	registrant := s.createRegistrant("+380504444444")

	resp, _ := s.allocate(registrant.ID, 9999)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *PrizeAPITestSuite) TestAllocateUnknownRegistrant() {
	prizes := s.seedPrizes(models.Prize{Title: "Backpack", Amount: 5})

	resp, _ := s.allocate(9999, prizes[0].ID)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var prize models.Prize
	s.Require().NoError(s.db.First(&prize, prizes[0].ID).Error)
	s.Equal(5, prize.Amount)
}

func (s *PrizeAPITestSuite) TestAllocateMissingUserID() {
	prizes := s.seedPrizes(models.Prize{Title: "Backpack", Amount: 5})

	body, _ := json.Marshal(map[string]any{})
	url := fmt.Sprintf("%s/api/prizes/%d", s.baseURL, prizes[0].ID)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *PrizeAPITestSuite) TestConcurrentAllocationAwardsLastUnitOnce() {
	prizes := s.seedPrizes(models.Prize{Title: "Backpack", Amount: 1})

	const spinners = 8
	registrants := make([]models.Registrant, spinners)
	for i := range registrants {
		registrants[i] = s.createRegistrant(fmt.Sprintf("+38050000%04d", i))
	}

	statuses := make([]int, spinners)
	var wg sync.WaitGroup
	for i := 0; i < spinners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]any{"user_id": registrants[i].ID})
			url := fmt.Sprintf("%s/api/prizes/%d", s.baseURL, prizes[0].ID)
			resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, status := range statuses {
		if status == http.StatusOK {
			winners++
		} else {
			s.Equal(http.StatusConflict, status)
		}
	}
	s.Equal(1, winners, "exactly one spinner may take the last unit")

	var prize models.Prize
	s.Require().NoError(s.db.First(&prize, prizes[0].ID).Error)
	s.Equal(0, prize.Amount)

	var awarded int64
	s.db.Model(&models.Registrant{}).Where("prize_id IS NOT NULL").Count(&awarded)
	s.Equal(int64(1), awarded)
}

func TestPrizeAPISuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(PrizeAPITestSuite))
}
