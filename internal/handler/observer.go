package handler

import (
    "net/http"
    "time"

    "github.com/gorilla/websocket"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/planet-stamp-roulette/internal/notify"
)

// ObserverHandler upgrades admin dashboard connections to WebSocket and
// forwards hub signals as {"type":"stats-updated"} messages.  The channel
// carries no data and no secrets, only an advisory hint to re-fetch stats,
// so it is intentionally unauthenticated like the rest of the dashboard's
// read-triggering plumbing.
type ObserverHandler struct {
    Hub *notify.Hub
}

// NewObserverHandler constructs an ObserverHandler.
func NewObserverHandler(hub *notify.Hub) *ObserverHandler {
    if hub == nil {
        panic("nil hub passed to NewObserverHandler")
    }
    return &ObserverHandler{Hub: hub}
}

var upgrader = websocket.Upgrader{
    ReadBufferSize:  1024,
    WriteBufferSize: 1024,
    // The dashboard is served from a different origin during development.
    CheckOrigin: func(r *http.Request) bool { return true },
}

const observerWriteTimeout = 10 * time.Second

// Observe handles GET /admin/observe.  One goroutine drains the client
// side to notice disconnects; the handler goroutine waits on the hub
// channel and pushes the stats-updated message.  Either side failing tears
// the connection down and removes the observer from the hub.
func (h *ObserverHandler) Observe(c echo.Context) error {
    ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
    if err != nil {
        return err
    }
    defer ws.Close()

    ch := h.Hub.Register()
    defer h.Hub.Unregister(ch)

    done := make(chan struct{})
    go func() {
        defer close(done)
        for {
            if _, _, err := ws.ReadMessage(); err != nil {
                return
            }
        }
    }()

    for {
        select {
        case <-done:
            return nil
        case _, ok := <-ch:
            if !ok {
                return nil
            }
            _ = ws.SetWriteDeadline(time.Now().Add(observerWriteTimeout))
            if err := ws.WriteJSON(echo.Map{"type": "stats-updated"}); err != nil {
                return nil
            }
        }
    }
}
