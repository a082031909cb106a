package handler

import (
    "database/sql" // for sentinel errors returned from repository
    "errors"       // for errors.Is comparisons
    "net/http"     // HTTP status codes
    "strings"      // input trimming

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/planet-stamp-roulette/internal/draw"
    "github.com/iliyamo/planet-stamp-roulette/internal/repository"
)

// PublicHandler serves the participant-facing endpoints: the prize list
// feeding the roulette wheel, registration, stamp collection and the
// advisory eligibility check.  All endpoints are unauthenticated; the
// participant identifier is an opaque client-supplied token.
type PublicHandler struct {
    Prizes       *repository.PrizeRepo
    Participants *repository.ParticipantRepo
    Locations    map[string]bool // valid stamp location IDs
    TotalStamps  int             // stamps required for eligibility
}

// NewPublicHandler constructs a PublicHandler.  The location list comes
// from deployment configuration.
func NewPublicHandler(prizes *repository.PrizeRepo, participants *repository.ParticipantRepo, locations []string) *PublicHandler {
    if prizes == nil || participants == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    set := make(map[string]bool, len(locations))
    for _, l := range locations {
        set[l] = true
    }
    return &PublicHandler{
        Prizes:       prizes,
        Participants: participants,
        Locations:    set,
        TotalStamps:  len(locations),
    }
}

// prizeItem is the public projection of a prize.  Total quantity is an
// admin-only detail and is not exposed here.
type prizeItem struct {
    ID                int64  `json:"id"`
    Name              string `json:"name"`
    RemainingQuantity int    `json:"remaining_quantity"`
}

// ListPrizes handles GET /api/prizes.  It returns prizes that still have
// stock, in the same ascending-id order the draw engine and the roulette
// wheel use.
func (h *PublicHandler) ListPrizes(c echo.Context) error {
    prizes, err := h.Prizes.ListRemaining(c.Request().Context())
    if err != nil {
        c.Logger().Errorf("list prizes: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load prizes"})
    }
    items := make([]prizeItem, 0, len(prizes))
    for _, p := range prizes {
        items = append(items, prizeItem{ID: p.ID, Name: p.Name, RemainingQuantity: p.RemainingQuantity})
    }
    return c.JSON(http.StatusOK, items)
}

// RegisterUser handles POST /api/register-user.  Registration is
// idempotent: repeated calls never disturb collected stamps or redemption
// state.
func (h *PublicHandler) RegisterUser(c echo.Context) error {
    var body struct {
        UserID string `json:"userId"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.UserID = strings.TrimSpace(body.UserID)
    if body.UserID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId is required"})
    }
    if err := h.Participants.Register(c.Request().Context(), body.UserID); err != nil {
        c.Logger().Errorf("register user %s: %v", body.UserID, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to register user"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// CollectStamp handles POST /api/collect-stamp.  Collecting a stamp twice
// is a no-op; collecting at an unknown location is a validation error so
// typos on kiosk devices surface during setup instead of polluting the
// ledger.
func (h *PublicHandler) CollectStamp(c echo.Context) error {
    var body struct {
        UserID   string `json:"userId"`
        PlanetID string `json:"planetId"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.UserID = strings.TrimSpace(body.UserID)
    body.PlanetID = strings.TrimSpace(body.PlanetID)
    if body.UserID == "" || body.PlanetID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId and planetId are required"})
    }
    if !h.Locations[body.PlanetID] {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown stamp location"})
    }
    if err := h.Participants.CollectStamp(c.Request().Context(), body.UserID, body.PlanetID); err != nil {
        c.Logger().Errorf("collect stamp %s/%s: %v", body.UserID, body.PlanetID, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record stamp"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// CheckEligibility handles GET /api/check-eligibility/:userId.  This is
// the advisory answer shown before a spin attempt; the spin itself
// re-validates inside the draw transaction.
func (h *PublicHandler) CheckEligibility(c echo.Context) error {
    userID := strings.TrimSpace(c.Param("userId"))
    if userID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId is required"})
    }
    p, err := h.Participants.GetByID(c.Request().Context(), userID)
    if err != nil && !errors.Is(err, sql.ErrNoRows) {
        c.Logger().Errorf("check eligibility %s: %v", userID, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check eligibility"})
    }
    d := draw.Evaluate(p, h.TotalStamps)
    if d.Eligible {
        return c.JSON(http.StatusOK, echo.Map{"eligible": true})
    }
    return c.JSON(http.StatusOK, echo.Map{"eligible": false, "reason": d.Reason})
}
