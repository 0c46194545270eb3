package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type HappyHourHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	address   string
}

func NewHappyHourHttpServer(router *Router, muxRouter *mux.Router, address string) *HappyHourHttpServer {
	return &HappyHourHttpServer{
		router:    router,
		muxRouter: muxRouter,
		address:   address,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully. It
// returns early if the listener fails.
func (s *HappyHourHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[HappyHourHttpServer] Starting server on %s", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.address, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[HappyHourHttpServer] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("[HappyHourHttpServer] Server exiting")
	return nil
}
