package handler

import (
    "context"
    "database/sql"
    "errors"
    mrand "math/rand/v2"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/planet-stamp-roulette/internal/draw"
    "github.com/iliyamo/planet-stamp-roulette/internal/notify"
    "github.com/iliyamo/planet-stamp-roulette/internal/queue"
    "github.com/iliyamo/planet-stamp-roulette/internal/repository"
    queue_publisher "github.com/iliyamo/planet-stamp-roulette/internal/service"
)

// SpinHandler serves POST /api/spin, the single state-changing participant
// endpoint.  The engine owns correctness (one win per participant, stock
// never negative); this handler maps engine outcomes to HTTP, computes the
// presentation-only wheel angle, and fans out the post-commit signals.
type SpinHandler struct {
    Participants *repository.ParticipantRepo
    Engine       *draw.Engine
    Hub          *notify.Hub
    // PublishEvents toggles the RabbitMQ side channel; disabled in tests.
    PublishEvents bool
}

// NewSpinHandler constructs a SpinHandler.
func NewSpinHandler(participants *repository.ParticipantRepo, engine *draw.Engine, hub *notify.Hub) *SpinHandler {
    if participants == nil || engine == nil || hub == nil {
        panic("nil dependency passed to NewSpinHandler")
    }
    return &SpinHandler{Participants: participants, Engine: engine, Hub: hub, PublishEvents: true}
}

// Spin handles POST /api/spin.  The early redemption check is defense in
// depth for a friendlier error; the authoritative gate is the guarded
// update inside the draw transaction, which closes the window between this
// read and the commit.
func (h *SpinHandler) Spin(c echo.Context) error {
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

    ctx := c.Request().Context()
    if p, err := h.Participants.GetByID(ctx, body.UserID); err != nil && !errors.Is(err, sql.ErrNoRows) {
        c.Logger().Errorf("spin precheck %s: %v", body.UserID, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "spin failed"})
    } else if p != nil && p.IsRedeemed {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "prize already redeemed; repeat participation is not allowed"})
    }

    result, err := h.Engine.Draw(ctx, body.UserID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrAlreadyRedeemed):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "prize already redeemed; repeat participation is not allowed"})
        case errors.Is(err, repository.ErrExhausted):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "all prizes have been given away"})
        default:
            // Includes a stock conflict that survived the engine's retry.
            c.Logger().Errorf("spin draw %s: %v", body.UserID, err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "spin failed"})
        }
    }

    h.Hub.Broadcast()
    if h.PublishEvents {
        ev := queue.PrizeRedeemedEvent{
            UserID:     body.UserID,
            PrizeID:    result.PrizeID,
            PrizeName:  result.PrizeName,
            RedeemCode: result.RedeemCode,
            RedeemedAt: time.Now().UTC().Format(time.RFC3339),
        }
        go func() {
            pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
            defer cancel()
            _ = queue_publisher.PublishPrizeRedeemed(pubCtx, ev) // best effort, already logged
        }()
    }

    return c.JSON(http.StatusOK, echo.Map{
        "stopAt":     stopAngle(result.PoolIndex, result.PoolSize),
        "redeemCode": result.RedeemCode,
        "prizeName":  result.PrizeName,
    })
}

// stopAngle maps the winning pool position to a wheel angle in [0,360).
// The wheel divides evenly among the prizes that had stock at selection
// time; the offset keeps the pointer visibly inside the segment rather
// than on a boundary.  Pure presentation, no fairness significance.
func stopAngle(index, size int) float64 {
    if size <= 0 {
        return 0
    }
    segment := 360.0 / float64(size)
    offset := 5.0
    jitter := segment - 10
    if jitter < 0 {
        // Segments narrower than the usual margins: pin to the center.
        jitter = 0
        offset = segment / 2
    }
    return float64(index)*segment + offset + mrand.Float64()*jitter
}
