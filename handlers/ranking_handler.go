package handlers

import (
	"net/http"

	"github.com/Vasek03/tip-league/middleware"
	"github.com/Vasek03/tip-league/services"
)

type RankingHandler struct {
	rankingService     services.RankingService
	settlementService  services.SettlementService
	leaderboardService services.LeaderboardService
	broadcaster        LeaderboardBroadcaster
}

func NewRankingHandler(
	rankingService services.RankingService,
	settlementService services.SettlementService,
	leaderboardService services.LeaderboardService,
	broadcaster LeaderboardBroadcaster,
) *RankingHandler {
	return &RankingHandler{
		rankingService:     rankingService,
		settlementService:  settlementService,
		leaderboardService: leaderboardService,
		broadcaster:        broadcaster,
	}
}

// SubmitRanking godoc
// @Summary Submit the caller's pre-season team order (one-shot)
// @Tags rankings
// @Accept json
// @Produce json
// @Param input body services.SubmitRankingInput true "ordered team list"
// @Success 201 {object} models.TeamRanking
// @Security BearerAuth
// @Router /ranking [post]
func (h *RankingHandler) SubmitRanking(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.SubmitRankingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ranking, err := h.rankingService.SubmitRanking(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetOwnRanking godoc
// @Summary Get the caller's own team ranking
// @Tags rankings
// @Produce json
// @Success 200 {object} models.TeamRanking
// @Security BearerAuth
// @Router /ranking [get]
func (h *RankingHandler) GetOwnRanking(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	ranking, err := h.rankingService.GetUserRanking(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListSubmittedRankings godoc
// @Summary List everyone's submitted rankings (caller must have submitted)
// @Tags rankings
// @Produce json
// @Success 200 {array} models.TeamRanking
// @Security BearerAuth
// @Router /rankings [get]
func (h *RankingHandler) ListSubmittedRankings(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	rankings, err := h.rankingService.ListSubmittedRankings(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FinalizeRanking godoc
// @Summary Enter the authoritative team order and settle all rankings (admin)
// @Tags settlement
// @Accept json
// @Produce json
// @Param input body services.FinalizeRankingInput true "final team order"
// @Success 200 {object} services.RankingSettlementResult
// @Security BearerAuth
// @Router /rankings/result [post]
func (h *RankingHandler) FinalizeRanking(w http.ResponseWriter, r *http.Request) {
	var input services.FinalizeRankingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.settlementService.FinalizeRanking(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.pushLeaderboard(r)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"settlement": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RankingHandler) pushLeaderboard(r *http.Request) {
	if h.broadcaster == nil {
		return
	}
	entries, err := h.leaderboardService.GetLeaderboard(r.Context())
	if err != nil {
		return
	}
	h.broadcaster.BroadcastLeaderboard(entries)
}
