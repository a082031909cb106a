package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/planet-stamp-roulette/internal/handler"    // handlers implementing the endpoints
    "github.com/iliyamo/planet-stamp-roulette/internal/middleware" // JWT auth for the admin surface
)

// RegisterRoutes registers routes that do not belong to either surface.
// Currently this is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the participant-facing endpoints under /api.
// cacheMW wraps the read endpoints, rateMW guards the spin endpoint; both
// are pass-throughs when Redis is not configured.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, s *handler.SpinHandler, cacheMW, rateMW echo.MiddlewareFunc) {
    g := e.Group("/api")
    g.GET("/prizes", p.ListPrizes, cacheMW)
    g.POST("/register-user", p.RegisterUser)
    g.POST("/collect-stamp", p.CollectStamp)
    g.GET("/check-eligibility/:userId", p.CheckEligibility)
    g.POST("/spin", s.Spin, rateMW)
}

// RegisterAdmin registers the admin surface.  Login and the observer
// WebSocket are open; stats and inventory updates require a valid bearer
// token issued by Login.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, o *handler.ObserverHandler, jwtSecret string) {
    e.POST("/admin/login", a.Login)
    e.GET("/admin/observe", o.Observe)

    auth := e.Group("/admin")
    auth.Use(middleware.AdminAuth(jwtSecret))
    auth.GET("/stats", a.GetStats)
    auth.POST("/update-prizes", a.UpdatePrizes)
}
