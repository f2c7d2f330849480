// Package eventdelivery exposes the notification bus state over http.
package eventdelivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/mini-bank/pkg/web"
)

// Counter reports how many events of each operation were observed.
type Counter interface {
	Counts() map[string]int64
}

// SubscriberCounter reports how many subscribers are attached to the bus.
type SubscriberCounter interface {
	Len() int
}

// Handler facilitates event delivery layer logic.
type Handler struct {
	counter Counter
	bus     SubscriberCounter
}

// NewHandler returns event handler.
func NewHandler(c Counter, b SubscriberCounter) *Handler {
	return &Handler{
		counter: c,
		bus:     b,
	}
}

type analyticsData struct {
	Operations  map[string]int64 `json:"operations"`
	Subscribers int              `json:"subscribers"`
}

// Analytics handles http request to read the per-operation event counters.
func (h *Handler) Analytics(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, web.Response{
		Data: analyticsData{
			Operations:  h.counter.Counts(),
			Subscribers: h.bus.Len(),
		},
	})
}
