package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	KindOrderSnapshot = "order.snapshot"
	KindOrderStatus   = "order.status"
	KindPaymentStatus = "payment.status"

	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = pongWait * 9 / 10
	sendBuffer   = 16
)

// TrackingMessage is pushed to websocket subscribers of an order.
type TrackingMessage struct {
	Kind      string     `json:"kind"`
	OrderID   uuid.UUID  `json:"orderId"`
	PaymentID *uuid.UUID `json:"paymentId,omitempty"`
	OldStatus string     `json:"oldStatus,omitempty"`
	NewStatus string     `json:"newStatus"`
	At        time.Time  `json:"at"`
}

type subscriber struct {
	send chan TrackingMessage
}

// TrackingHub fans committed order and payment status changes out to the
// websocket clients watching that order. Slow clients lose messages rather
// than block the publisher.
type TrackingHub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*subscriber]struct{}
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

var _ ports.EventPublisher = (*TrackingHub)(nil)

func NewTrackingHub(logger *slog.Logger) *TrackingHub {
	return &TrackingHub{
		subscribers: make(map[uuid.UUID]map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "tracking-hub"),
	}
}

// Publish implements ports.EventPublisher.
func (h *TrackingHub) Publish(ctx context.Context, events ...ddd.DomainEvent) {
	for _, event := range events {
		msg, ok := trackingMessage(event)
		if !ok {
			continue
		}
		h.broadcast(ctx, msg)
	}
}

func trackingMessage(event ddd.DomainEvent) (TrackingMessage, bool) {
	switch e := event.(type) {
	case order.StatusChanged:
		return TrackingMessage{
			Kind:      KindOrderStatus,
			OrderID:   e.OrderID.Bytes(),
			OldStatus: e.OldStatus.String(),
			NewStatus: e.NewStatus.String(),
			At:        e.OccurredAt(),
		}, true
	case payment.StatusChanged:
		if e.OrderID == nil {
			return TrackingMessage{}, false
		}
		paymentID := e.PaymentID.Bytes()
		return TrackingMessage{
			Kind:      KindPaymentStatus,
			OrderID:   e.OrderID.Bytes(),
			PaymentID: &paymentID,
			OldStatus: e.OldStatus.String(),
			NewStatus: e.NewStatus.String(),
			At:        e.OccurredAt(),
		}, true
	}
	return TrackingMessage{}, false
}

func (h *TrackingHub) broadcast(ctx context.Context, msg TrackingMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers[msg.OrderID] {
		select {
		case sub.send <- msg:
		default:
			h.logger.WarnContext(ctx, "dropping tracking message for slow subscriber",
				"order_id", msg.OrderID, "new_status", msg.NewStatus)
		}
	}
}

// Subscribers returns how many clients watch orderID.
func (h *TrackingHub) Subscribers(orderID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[orderID.Bytes()])
}

func (h *TrackingHub) subscribe(orderID uuid.UUID) *subscriber {
	sub := &subscriber{send: make(chan TrackingMessage, sendBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[orderID] == nil {
		h.subscribers[orderID] = make(map[*subscriber]struct{})
	}
	h.subscribers[orderID][sub] = struct{}{}
	return sub
}

func (h *TrackingHub) unsubscribe(orderID uuid.UUID, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers[orderID], sub)
	if len(h.subscribers[orderID]) == 0 {
		delete(h.subscribers, orderID)
	}
}

// Serve upgrades the request and streams messages for orderID until the client
// disconnects. first is sent before any published change.
func (h *TrackingHub) Serve(ctx echo.Context, orderID kernel.UUID, first TrackingMessage) error {
	conn, err := h.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		h.logger.WarnContext(ctx.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	key := orderID.Bytes()
	sub := h.subscribe(key)
	defer h.unsubscribe(key, sub)
	// changes published from here on queue in sub.send behind the snapshot
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = conn.WriteJSON(first); err != nil {
		return nil
	}

	closed := make(chan struct{})
	go h.readLoop(conn, closed)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return nil
		case msg := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(msg); err != nil {
				h.logger.DebugContext(ctx.Request().Context(), "tracking client gone", "order_id", key, "error", err)
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

// readLoop discards client frames and closes done when the connection drops.
func (h *TrackingHub) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
