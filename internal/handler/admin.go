package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/planet-stamp-roulette/internal/config"
    "github.com/iliyamo/planet-stamp-roulette/internal/middleware"
    "github.com/iliyamo/planet-stamp-roulette/internal/repository"
    "github.com/iliyamo/planet-stamp-roulette/internal/utils"
)

// AdminHandler bundles dependencies for the admin surface: login, the
// stats dashboard and inventory updates.
type AdminHandler struct {
    Cfg    config.Config
    Admins *repository.AdminRepo
    Stats  *repository.StatsRepo
    Prizes *repository.PrizeRepo
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(cfg config.Config, admins *repository.AdminRepo, stats *repository.StatsRepo, prizes *repository.PrizeRepo) *AdminHandler {
    if admins == nil || stats == nil || prizes == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{Cfg: cfg, Admins: admins, Stats: stats, Prizes: prizes}
}

type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

// Login handles POST /admin/login.  Unknown usernames and wrong passwords
// produce the same 401 so the endpoint does not reveal which usernames
// exist.
func (h *AdminHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    admin, err := h.Admins.GetByUsername(ctx, req.Username)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        c.Logger().Errorf("admin login query: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
    }
    if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    tok, err := utils.NewAdminToken(h.Cfg.JWTSecret, admin.Username, h.Cfg.TokenTTLHours)
    if err != nil {
        c.Logger().Errorf("admin token issue: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"token": tok.Token})
}

// statsDate validates the optional date query parameter, defaulting an
// absent one to the server's current UTC date.
func statsDate(raw string) (string, error) {
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return time.Now().UTC().Format("2006-01-02"), nil
    }
    if _, err := time.Parse("2006-01-02", raw); err != nil {
        return "", err
    }
    return raw, nil
}

// GetStats handles GET /admin/stats?date=YYYY-MM-DD.  The date defaults to
// the server's current UTC date; a date with no activity yields zeros and
// empty lists.
func (h *AdminHandler) GetStats(c echo.Context) error {
    date, err := statsDate(c.QueryParam("date"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }

    stats, err := h.Stats.Collect(c.Request().Context(), date)
    if err != nil {
        c.Logger().Errorf("collect stats for %s: %v", date, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
    }
    return c.JSON(http.StatusOK, stats)
}

type updatePrizesReq struct {
    PrizeName     string `json:"prizeName"`
    NewQuantity   *int   `json:"newQuantity"`
    AdminPassword string `json:"adminPassword"`
}

// UpdatePrizes handles POST /admin/update-prizes.  On top of the bearer
// token it re-verifies the admin password, since an inventory reset is the
// most damaging operation the dashboard exposes.  Both quantities are set
// to the new value.
func (h *AdminHandler) UpdatePrizes(c echo.Context) error {
    var req updatePrizesReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.PrizeName = strings.TrimSpace(req.PrizeName)
    if req.PrizeName == "" || req.NewQuantity == nil || req.AdminPassword == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "prizeName, newQuantity and adminPassword are required"})
    }
    if *req.NewQuantity < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "newQuantity must not be negative"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    username := middleware.AdminUsername(c)
    admin, err := h.Admins.GetByUsername(ctx, username)
    if err != nil {
        c.Logger().Errorf("update prizes admin lookup %s: %v", username, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if !utils.VerifyPassword(admin.PasswordHash, req.AdminPassword) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "admin password is incorrect"})
    }

    if err := h.Prizes.ResetQuantity(ctx, req.PrizeName, *req.NewQuantity); err != nil {
        if errors.Is(err, repository.ErrPrizeNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "prize not found"})
        }
        c.Logger().Errorf("update prizes %s: %v", req.PrizeName, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success": true,
        "message": req.PrizeName + " quantity updated",
    })
}
