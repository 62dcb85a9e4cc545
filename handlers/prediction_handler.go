package handlers

import (
	"net/http"
	"strconv"

	"github.com/Vasek03/tip-league/middleware"
	"github.com/Vasek03/tip-league/services"
	"github.com/go-chi/chi/v5"
)

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// SubmitTip godoc
// @Summary Create or replace the caller's tip for a match
// @Tags tips
// @Accept json
// @Produce json
// @Param id path int true "match id"
// @Param input body services.SubmitTipInput true "tip"
// @Success 200 {object} models.Prediction
// @Security BearerAuth
// @Router /matches/{id}/prediction [put]
func (h *PredictionHandler) SubmitTip(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil || matchID < 1 {
		notFoundResponse(w, r)
		return
	}

	var input services.SubmitTipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.UserID = userID
	input.MatchID = matchID

	prediction, err := h.predictionService.SubmitTip(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tip": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatchTips godoc
// @Summary List everyone's tips for a locked match
// @Tags tips
// @Produce json
// @Param id path int true "match id"
// @Success 200 {array} models.Prediction
// @Security BearerAuth
// @Router /matches/{id}/predictions [get]
func (h *PredictionHandler) ListMatchTips(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil || matchID < 1 {
		notFoundResponse(w, r)
		return
	}

	tips, err := h.predictionService.ListMatchTips(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tips": tips}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListOwnTips godoc
// @Summary List all of the caller's tips
// @Tags tips
// @Produce json
// @Success 200 {array} models.Prediction
// @Security BearerAuth
// @Router /predictions [get]
func (h *PredictionHandler) ListOwnTips(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	tips, err := h.predictionService.ListUserTips(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tips": tips}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
