package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

func upgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// streamPreferences writes every preference change as a JSON frame. The
// optional "session" query narrows the stream to one session.
func (s *Server) streamPreferences(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	filter := conn.Query("session")

	ch, err := s.bus.SubscribePreferenceChanged(ctx)
	if err != nil {
		s.logger.Warn("preference stream unavailable", zap.Error(err))
		return
	}

	// Reads only detect the peer going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for evt := range ch {
		if filter != "" && evt.SessionID != filter {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(evt); err != nil {
			s.logger.Debug("preference stream closed", zap.Error(err))
			return
		}
	}
}
