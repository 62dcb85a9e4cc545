package scoring

import (
	"testing"

	"github.com/Vasek03/tip-league/models"
	"github.com/stretchr/testify/assert"
)

func rankingItems(positions ...int) []models.TeamRankingItem {
	items := make([]models.TeamRankingItem, 0, len(positions))
	for i, pos := range positions {
		items = append(items, models.TeamRankingItem{TeamID: i + 1, Position: pos})
	}
	return items
}

func TestRankingPointsIdenticalOrder(t *testing.T) {
	final := map[int]int{1: 1, 2: 2, 3: 3, 4: 4}
	got := RankingPoints(rankingItems(1, 2, 3, 4), final)
	assert.Equal(t, 12, got, "identical ranking of 4 teams scores 3*4")
}

func TestRankingPointsReversedOrder(t *testing.T) {
	// The exact reverse of a 4-team order has no fixed points.
	final := map[int]int{1: 1, 2: 2, 3: 3, 4: 4}
	got := RankingPoints(rankingItems(4, 3, 2, 1), final)
	assert.Equal(t, 0, got)
}

func TestRankingPointsPartialMatches(t *testing.T) {
	final := map[int]int{1: 1, 2: 2, 3: 3, 4: 4}
	// Teams 1 and 4 placed correctly, 2 and 3 swapped.
	got := RankingPoints(rankingItems(1, 3, 2, 4), final)
	assert.Equal(t, 6, got)
}

func TestRankingPointsUnassignedFinalPositions(t *testing.T) {
	// Teams whose authoritative position is still unset never contribute.
	final := map[int]int{1: 1, 2: 2}
	got := RankingPoints(rankingItems(1, 2, 3, 4), final)
	assert.Equal(t, 6, got)

	assert.Equal(t, 0, RankingPoints(rankingItems(1, 2, 3, 4), map[int]int{}))
}

func TestRankingPointsOrderIndependent(t *testing.T) {
	final := map[int]int{1: 2, 2: 1, 3: 3, 4: 4}
	items := rankingItems(2, 1, 3, 4)
	reversed := []models.TeamRankingItem{items[3], items[2], items[1], items[0]}
	assert.Equal(t, RankingPoints(items, final), RankingPoints(reversed, final))
}
