package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrScoreNegative      = errors.New("scores must be non-negative integers")

	// Tipping rules
	ErrPredictionLocked = errors.New("predictions for this match are locked")
	ErrMatchNotLocked   = errors.New("tips stay hidden until the match locks")

	// Ranking rules
	ErrRankingAlreadySubmitted   = errors.New("team ranking has already been submitted")
	ErrRankingNotSubmitted       = errors.New("own team ranking must be submitted first")
	ErrRankingIncomplete         = errors.New("ranking must place every team exactly once")
	ErrRankingPositionDuplicate  = errors.New("every position must be used exactly once")
	ErrRankingPositionOutOfRange = errors.New("ranking positions must be between 1 and the number of teams")
	ErrRankingUnknownTeam        = errors.New("ranking references an unknown team")

	// Settlement rules
	ErrMatchAlreadyFinished  = errors.New("match result has already been entered")
	ErrRankingAlreadyScored  = errors.New("authoritative team order has already been entered")
	ErrNoTeamsConfigured     = errors.New("no teams configured for the season")
	ErrLogoStorageDisabled   = errors.New("logo storage is not configured")
	ErrUnsupportedLogoFormat = errors.New("unsupported logo content type")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserNicknameConflict = errors.New("nickname is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific not-found variants
	ErrUserNotFound  = errors.New("user not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrTeamNotFound  = errors.New("team not found")

	// ErrConsistencyFault marks a broken internal invariant (finished match
	// without scores, half-applied settlement). It is the only class treated
	// as fatal rather than a user-facing rejection.
	ErrConsistencyFault = errors.New("internal consistency fault")
)
