package prize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickPrizeIndex_EmptyInventory(t *testing.T) {
	index := PickPrizeIndex(nil, rand.Intn)
	assert.Equal(t, -1, index)

	index = PickPrizeIndex([]PrizeResponse{}, rand.Intn)
	assert.Equal(t, -1, index)
}

func TestPickPrizeIndex_AllExhausted(t *testing.T) {
	prizes := []PrizeResponse{
		{ID: 1, Title: "Backpack", Amount: 0},
		{ID: 2, Title: "Mug", Amount: 0},
		{ID: 3, Title: "Powerbank", Amount: 0},
	}

	index := PickPrizeIndex(prizes, rand.Intn)
	assert.Equal(t, -1, index)
}

func TestPickPrizeIndex_RedrawsPastExhausted(t *testing.T) {
	prizes := []PrizeResponse{
		{ID: 1, Title: "Backpack", Amount: 0},
		{ID: 2, Title: "Mug", Amount: 3},
		{ID: 3, Title: "Powerbank", Amount: 0},
	}

	// First two draws hit exhausted segments; the picker must redraw until
	// it lands on one with inventory.
	draws := []int{0, 2, 1}
	intn := func(n int) int {
		assert.Equal(t, len(prizes), n)
		draw := draws[0]
		draws = draws[1:]
		return draw
	}

	index := PickPrizeIndex(prizes, intn)
	assert.Equal(t, 1, index)
	assert.Empty(t, draws)
}

func TestPickPrizeIndex_SingleAvailable(t *testing.T) {
	prizes := []PrizeResponse{
		{ID: 1, Title: "Backpack", Amount: 1},
	}

	index := PickPrizeIndex(prizes, rand.Intn)
	assert.Equal(t, 0, index)
}

func TestPickPrizeIndex_AlwaysLandsOnAvailable(t *testing.T) {
	prizes := []PrizeResponse{
		{ID: 1, Amount: 0},
		{ID: 2, Amount: 5},
		{ID: 3, Amount: 0},
		{ID: 4, Amount: 2},
		{ID: 5, Amount: 0},
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		index := PickPrizeIndex(prizes, rng.Intn)
		assert.GreaterOrEqual(t, index, 0)
		assert.Less(t, index, len(prizes))
		assert.Greater(t, prizes[index].Amount, 0)
	}
}
