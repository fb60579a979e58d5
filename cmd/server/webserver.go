package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// webServer creates server serving files in the static folder
// and the websocket endpoint running one flight per connection.
func webServer(ctx context.Context, port int, static string, hub *sessionHub) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(hub))
	mux.Handle("/", http.FileServer(http.Dir(static)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Printf("listening on http://localhost:%d", port)
	return srv
}

// websocketHandler handles the http ws endpoint.
// The connection lives as long as its session.
func websocketHandler(hub *sessionHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: restrict to the served host once a deployment origin exists
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		log.Printf("got connection from: %s", r.RemoteAddr)
		err = hub.serve(r.Context(), c)
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			c.Close(websocket.StatusNormalClosure, "")
		default:
			if err != nil {
				log.Printf("session %s: %v", r.RemoteAddr, err)
				c.Close(websocket.StatusInternalError, "session failed")
				return
			}
			c.Close(websocket.StatusNormalClosure, "")
		}
	}
}
