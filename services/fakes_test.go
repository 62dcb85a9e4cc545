package services

import (
	"context"

	"github.com/Vasek03/tip-league/models"
	"github.com/Vasek03/tip-league/repositories"
)

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	if f.matches == nil {
		f.matches = make(map[int]*models.Match)
	}
	match.ID = len(f.matches) + 1
	f.matches[match.ID] = match
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (f *fakeMatchRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeMatchRepo) List(ctx context.Context) ([]models.Match, error) {
	matches := make([]models.Match, 0, len(f.matches))
	for _, match := range f.matches {
		matches = append(matches, *match)
	}
	return matches, nil
}

func (f *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, id, homeScore, awayScore int) error {
	match, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.HomeScore = &homeScore
	match.AwayScore = &awayScore
	match.IsFinished = true
	return nil
}

type fakePredictionRepo struct {
	upserted []*models.Prediction
	byUser   map[int][]models.Prediction
	byMatch  map[int][]*models.Prediction
}

func (f *fakePredictionRepo) Upsert(ctx context.Context, prediction *models.Prediction) error {
	prediction.ID = len(f.upserted) + 1
	f.upserted = append(f.upserted, prediction)
	return nil
}

func (f *fakePredictionRepo) ListByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]*models.Prediction, error) {
	return f.byMatch[matchID], nil
}

func (f *fakePredictionRepo) ListByUser(ctx context.Context, userID int) ([]models.Prediction, error) {
	return f.byUser[userID], nil
}

func (f *fakePredictionRepo) UpdatePoints(ctx context.Context, exec repositories.SQLExecutor, predictionID, points int) error {
	return nil
}

func (f *fakePredictionRepo) SumPointsByUser(ctx context.Context, exec repositories.SQLExecutor, userID int) (int, error) {
	return 0, nil
}

type fakeTeamRepo struct {
	teams   []models.Team
	cleared int
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	team.ID = len(f.teams) + 1
	f.teams = append(f.teams, *team)
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	for i := range f.teams {
		if f.teams[i].ID == id {
			copied := f.teams[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]models.Team, error) {
	teams := make([]models.Team, len(f.teams))
	copy(teams, f.teams)
	return teams, nil
}

func (f *fakeTeamRepo) ClearFinalPositions(ctx context.Context, exec repositories.SQLExecutor) error {
	f.cleared++
	for i := range f.teams {
		f.teams[i].FinalPosition = nil
	}
	return nil
}

// UpdateFinalPosition mirrors the immediate unique constraint on
// final_position: assigning a position another team still holds fails.
func (f *fakeTeamRepo) UpdateFinalPosition(ctx context.Context, exec repositories.SQLExecutor, teamID int, position int) error {
	for i := range f.teams {
		if f.teams[i].ID != teamID && f.teams[i].FinalPosition != nil && *f.teams[i].FinalPosition == position {
			return repositories.ErrTeamPositionConflict
		}
	}
	for i := range f.teams {
		if f.teams[i].ID == teamID {
			p := position
			f.teams[i].FinalPosition = &p
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) UpdateLogoKey(ctx context.Context, teamID int, logoKey string) error {
	return nil
}

type fakeRankingRepo struct {
	byUser    map[int]*models.TeamRanking
	submitted []*models.TeamRanking
}

func (f *fakeRankingRepo) GetByUserForUpdate(ctx context.Context, exec repositories.SQLExecutor, userID int) (*models.TeamRanking, error) {
	return f.GetByUser(ctx, userID)
}

func (f *fakeRankingRepo) GetByUser(ctx context.Context, userID int) (*models.TeamRanking, error) {
	ranking, ok := f.byUser[userID]
	if !ok {
		return nil, repositories.ErrRankingNotFound
	}
	return ranking, nil
}

func (f *fakeRankingRepo) Upsert(ctx context.Context, exec repositories.SQLExecutor, ranking *models.TeamRanking) error {
	ranking.ID = 1
	return nil
}

func (f *fakeRankingRepo) ReplaceItems(ctx context.Context, exec repositories.SQLExecutor, rankingID int, items []models.TeamRankingItem) error {
	return nil
}

func (f *fakeRankingRepo) ListSubmitted(ctx context.Context, exec repositories.SQLExecutor) ([]*models.TeamRanking, error) {
	return f.submitted, nil
}

func (f *fakeRankingRepo) UpdatePoints(ctx context.Context, exec repositories.SQLExecutor, rankingID, points int) error {
	return nil
}

func (f *fakeRankingRepo) PointsByUser(ctx context.Context, exec repositories.SQLExecutor, userID int) (int, error) {
	return 0, nil
}

type fakeProfileRepo struct {
	entries []models.LeaderboardEntry
	listErr error
}

func (f *fakeProfileRepo) Create(ctx context.Context, exec repositories.SQLExecutor, userID int) error {
	return nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, exec repositories.SQLExecutor, userID int) (*models.Profile, error) {
	return &models.Profile{UserID: userID}, nil
}

func (f *fakeProfileRepo) UpdateTotalPoints(ctx context.Context, exec repositories.SQLExecutor, userID, totalPoints int) error {
	return nil
}

func (f *fakeProfileRepo) ListLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}
