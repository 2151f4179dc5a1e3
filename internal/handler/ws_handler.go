/*
Package handler provides the HTTP handler function for the snapshot WebSocket.

The page opens one WebSocket and receives a full session snapshot immediately
and after every state transition; it never sends workflow commands over the
socket (those go through the JSON API), so the read side only watches for close.
*/
package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"userdeck/internal/app/session"
	"userdeck/internal/pkg/logx"
)

const (
	// timeout for writing a snapshot to the WebSocket connection.
	wsWriteWait = 10 * time.Second

	// maximum time allowed to wait for a Pong message from the page.
	wsPongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	wsPingPeriod = (wsPongWait * 9) / 10

	// inbound frames carry no commands; anything larger is a protocol error.
	wsMaxMessageSize = 512
)

// HandleWebSocket creates an HTTP HandlerFunc that upgrades the connection and
// streams session snapshots until the page disconnects.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		snapshots, cancel := deps.Session.Subscribe()

		go snapshotWritePump(conn, snapshots)

		watchForClose(conn, cancel)
	}
}

// snapshotWritePump forwards snapshots to the page and keeps the connection
// alive with pings. It exits when the subscription channel closes or a write
// fails.
func snapshotWritePump(conn *websocket.Conn, snapshots <-chan session.Snapshot) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(snap); err != nil {
				logx.Warn("Snapshot write failed. Dropping WebSocket connection.")
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// watchForClose consumes inbound frames until the connection drops, then
// unregisters the snapshot subscription.
func watchForClose(conn *websocket.Conn, cancel func()) {
	defer func() {
		cancel()
		_ = conn.Close()
	}()

	conn.SetReadLimit(wsMaxMessageSize)

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		logx.Error(err, "Failed to set read deadline")
		return
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Info("WebSocket closed unexpectedly.")
			}
			return
		}
	}
}
