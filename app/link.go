package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ayoisaiah/timestop/internal/config"
	"github.com/ayoisaiah/timestop/peer"
)

const shutdownTimeout = 5 * time.Second

// syncLink is the websocket transport for the configured role together
// with the HTTP server that accepts it on the phone side.
type syncLink struct {
	Transport peer.Transport
	server    *http.Server
}

// startLink creates the transport for cfg's role. The phone listens on the
// peer address and the wrist dials it.
func startLink(ctx context.Context, cfg *config.Config) (*syncLink, error) {
	linkCfg := peer.DefaultLinkConfig()
	addr := cfg.PeerAddr()

	if cfg.Role() == config.RoleWrist {
		url := "ws://" + addr + peer.SyncPath

		return &syncLink{Transport: peer.NewDialer(url, linkCfg)}, nil
	}

	listener := peer.NewListener(linkCfg)

	mux := http.NewServeMux()
	listener.RegisterRoutes(mux)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errListen.Fmt(addr).Wrap(err)
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: linkCfg.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		err := server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("sync server stopped", slog.Any("error", err))
		}
	}()

	slog.Info("sync server listening", slog.String("addr", ln.Addr().String()))

	return &syncLink{Transport: listener, server: server}, nil
}

// Shutdown stops accepting paired devices.
func (l *syncLink) Shutdown() {
	if l.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := l.server.Shutdown(ctx)
	if err != nil {
		slog.Debug("sync server shutdown", slog.Any("error", err))
	}
}
