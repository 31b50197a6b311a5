package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/etnz/fgpt/agent"
	"github.com/etnz/fgpt/logger"
	"github.com/google/subcommands"
	"github.com/gorilla/websocket"
)

// chatRequest is a message sent by a websocket client.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the reply to a chatRequest.
type chatResponse struct {
	Reply   string `json:"reply"`
	Clarify bool   `json:"clarify"`
}

// ChatServer answers chat messages over websocket connections. Each
// connection is a conversation of its own.
type ChatServer struct {
	upgrader  websocket.Upgrader
	newRouter func() *agent.Router
}

// NewChatServer returns a server starting a conversation with newRouter for
// each connection.
func NewChatServer(newRouter func() *agent.Router) *ChatServer {
	return &ChatServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // the server is meant for a local front-end
			},
		},
		newRouter: newRouter,
	}
}

// Handler returns the http handler serving /chat.
func (s *ChatServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	return mux
}

func (s *ChatServer) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()
	// Hijacked connections outlive the server shutdown, close them with ctx.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	router := s.newRouter()
	log.Info().Str("session", router.History().ID()).Str("remote", r.RemoteAddr).Msg("chat connected")
	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("chat read")
			}
			return
		}
		reply, err := router.Turn(ctx, req.Message)
		if err != nil {
			return
		}
		if err := conn.WriteJSON(chatResponse{Reply: reply.Text, Clarify: reply.Clarify}); err != nil {
			log.Debug().Err(err).Msg("chat write")
			return
		}
	}
}

// serveCmd is the subcommand serving the chat over websocket.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the chat over a websocket" }
func (*serveCmd) Usage() string {
	return `serve [-addr <host:port>]

Serve the assistant on ws://<addr>/chat. Clients send {"message": "..."} and
receive {"reply": "...", "clarify": false}.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", env("FGPT_ADDR", "localhost:8080"), "Address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the assistant: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              c.addr,
		Handler:           NewChatServer(a.newRouter).Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Shut down when ctx ends, so that the files are closed on exit.
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("shutdown")
		}
	})
	defer stop()

	logger.FromContext(ctx).Info().Str("addr", c.addr).Str("backend", backend).Msg("serving chat")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error serving on %s: %v\n", c.addr, err)
		return subcommands.ExitFailure
	}
	logger.FromContext(ctx).Info().Msg("chat server stopped")
	return subcommands.ExitSuccess
}

// shutdownTimeout bounds the wait for requests in flight on exit.
const shutdownTimeout = 5 * time.Second
