// Package live serves the interactive recompute channel: the browser sends
// the full input record on every control change and gets the fresh result
// back on the same connection.
package live

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"Porthole/internal/calc/porthole"
	"Porthole/internal/present"

	"github.com/gorilla/websocket"
)

const (
	maxFrameSize = 16 << 10
	writeWait    = 5 * time.Second
	idleTimeout  = 10 * time.Minute
)

// Frame is the server → client message.
type Frame struct {
	Result *porthole.Result `json:"result,omitempty"`
	Cards  []present.Card   `json:"cards,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type Handler struct {
	upgrader websocket.Upgrader
}

func NewHandler() *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and answers each input frame in order until
// the client goes away. Nothing is kept between frames.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[live] read: %v", err)
			}
			return
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(Evaluate(msg)); err != nil {
			log.Printf("[live] write: %v", err)
			return
		}
	}
}

// Evaluate decodes one input frame and computes its reply.
func Evaluate(msg []byte) Frame {
	var in porthole.Input
	if err := json.Unmarshal(msg, &in); err != nil {
		return Frame{Error: "invalid input frame"}
	}
	res := porthole.Calculate(in)
	return Frame{Result: &res, Cards: present.Cards(res)}
}
