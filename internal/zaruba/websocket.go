package zaruba

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Player is one connected battle participant.
type Player struct {
	ID     string
	UserID string
	Team   int
	Conn   *websocket.Conn
	Send   chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NewWebsocketHandler upgrades connections into battle-room players. The
// user id comes from the session cookie, with a query fallback for the
// battle page; anonymous connections play as "guest".
func NewWebsocketHandler(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		userID := ""
		if c, err := r.Cookie("user_id"); err == nil {
			userID = c.Value
		}
		if userID == "" {
			userID = r.URL.Query().Get("userID")
		}
		if userID == "" {
			userID = "guest"
		}

		player := &Player{
			ID:     fmt.Sprintf("p-%d", time.Now().UnixNano()),
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 256),
		}

		h.Register <- player
		go writePump(player)
		go readPump(player, h)
	}
}

func readPump(p *Player, h *Hub) {
	defer func() {
		h.Unregister <- p
		p.Conn.Close()
	}()

	for {
		_, message, err := p.Conn.ReadMessage()
		if err != nil {
			break
		}
		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			continue
		}
		cmd.player = p
		h.Commands <- cmd
	}
}

func writePump(p *Player) {
	defer func() { p.Conn.Close() }()
	for message := range p.Send {
		p.Conn.WriteMessage(websocket.TextMessage, message)
	}
	p.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
