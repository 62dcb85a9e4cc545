package scoring

import "github.com/Vasek03/tip-league/models"

const rankingHitPoints = 3

// RankingPoints awards 3 points for every item whose position equals the
// team's authoritative final position. Teams without an assigned final
// position never match. The result is independent of item order.
func RankingPoints(items []models.TeamRankingItem, finalPositions map[int]int) int {
	points := 0
	for _, item := range items {
		final, ok := finalPositions[item.TeamID]
		if !ok {
			continue
		}
		if item.Position == final {
			points += rankingHitPoints
		}
	}
	return points
}
