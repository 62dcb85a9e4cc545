package handlers

import (
	"net/http"
	"strconv"

	"github.com/Vasek03/tip-league/middleware"
	"github.com/Vasek03/tip-league/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService       services.MatchService
	settlementService  services.SettlementService
	leaderboardService services.LeaderboardService
	broadcaster        LeaderboardBroadcaster
}

// LeaderboardBroadcaster pushes fresh standings to live subscribers after a
// settlement commits.
type LeaderboardBroadcaster interface {
	BroadcastLeaderboard(payload interface{})
}

func NewMatchHandler(
	matchService services.MatchService,
	settlementService services.SettlementService,
	leaderboardService services.LeaderboardService,
	broadcaster LeaderboardBroadcaster,
) *MatchHandler {
	return &MatchHandler{
		matchService:       matchService,
		settlementService:  settlementService,
		leaderboardService: leaderboardService,
		broadcaster:        broadcaster,
	}
}

// ListMatches godoc
// @Summary List the season schedule with the caller's own tips
// @Tags matches
// @Produce json
// @Success 200 {array} services.MatchView
// @Security BearerAuth
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatch godoc
// @Summary Get a single match
// @Tags matches
// @Produce json
// @Param id path int true "match id"
// @Success 200 {object} models.Match
// @Security BearerAuth
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil || matchID < 1 {
		notFoundResponse(w, r)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatch godoc
// @Summary Create a match (admin)
// @Tags matches
// @Accept json
// @Produce json
// @Param input body services.CreateMatchInput true "match data"
// @Success 201 {object} models.Match
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FinalizeMatch godoc
// @Summary Enter the official result and settle all tips (admin)
// @Tags settlement
// @Accept json
// @Produce json
// @Param id path int true "match id"
// @Param input body services.FinalizeMatchInput true "official result"
// @Success 200 {object} services.MatchSettlementResult
// @Security BearerAuth
// @Router /matches/{id}/result [post]
func (h *MatchHandler) FinalizeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil || matchID < 1 {
		notFoundResponse(w, r)
		return
	}

	var input services.FinalizeMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.MatchID = matchID

	result, err := h.settlementService.FinalizeMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.pushLeaderboard(r)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"settlement": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) pushLeaderboard(r *http.Request) {
	if h.broadcaster == nil {
		return
	}
	entries, err := h.leaderboardService.GetLeaderboard(r.Context())
	if err != nil {
		return // the settlement already committed; the push is best-effort
	}
	h.broadcaster.BroadcastLeaderboard(entries)
}
