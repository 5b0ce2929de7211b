package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/normanking/taskmind/internal/orchestrator"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSMessage is the frame exchanged on /ws. The client sends type "message";
// the server replies with the same type. Errors come back as type "error".
type WSMessage struct {
	Type           string `json:"type"`
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// wsHandler runs a chat session over a single WebSocket connection. The user
// id comes from the X-User-ID header or a user_id query parameter. Each
// incoming frame goes through the same pipeline as POST /api/chat, and the
// reply carries the conversation id so the client can pin follow-ups to it.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		userID = r.URL.Query().Get("user_id")
	}
	if userID == "" {
		http.Error(w, "user id required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.logger.With().Str("user_id", userID).Logger()
	log.Debug().Msg("WebSocket session opened")

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}

		if msg.Type != "message" || msg.Content == "" {
			if err := conn.WriteJSON(WSMessage{Type: "error", Content: "expected a non-empty frame of type message"}); err != nil {
				return
			}
			continue
		}

		resp := s.orch.HandleRequest(r.Context(), orchestrator.Request{
			UserID:         userID,
			Message:        msg.Content,
			ConversationID: msg.ConversationID,
		})

		reply := WSMessage{
			Type:           "message",
			Content:        resp.Text,
			ConversationID: resp.ConversationID,
		}
		if err := conn.WriteJSON(reply); err != nil {
			log.Warn().Err(err).Msg("WebSocket write error")
			return
		}
	}
}
