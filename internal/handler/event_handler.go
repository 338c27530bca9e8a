package handler

import (
	"encoding/json"
	"io"

	"github.com/blues/ivs/internal/event"
	"github.com/gin-gonic/gin"
)

// EventHandler 事件流处理器，把账本事件以 SSE 推送给前端
type EventHandler struct {
	bus *event.Bus
}

// NewEventHandler 创建事件流处理器
func NewEventHandler(bus *event.Bus) *EventHandler {
	return &EventHandler{bus: bus}
}

// Stream 订阅事件流，连接断开时取消订阅
func (h *EventHandler) Stream(c *gin.Context) {
	ch, cancel := h.bus.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			data, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			c.SSEvent(string(ev.Type), string(data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
