package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postboard/app/repositories"
	"postboard/app/repositories/memory"
	"postboard/app/routes"
)

// Store bundles the repositories of one backend with its shutdown hook.
type Store struct {
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	close    func() error
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStore opens the backend selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Driver {
	case DriverBadger:
		store, err := repositories.OpenBadger(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return &Store{Posts: store.Posts(), Comments: store.Comments(), close: store.Close}, nil
	case DriverPostgres:
		store, err := repositories.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Store{Posts: store.Posts(), Comments: store.Comments(), close: store.Close}, nil
	case DriverMemory:
		posts, comments := memory.NewPostRepository(), memory.NewCommentRepository()
		return &Store{Posts: posts, Comments: comments}, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// RunAppServer parses the serve flags, opens the store and serves HTTP
// until SIGINT or SIGTERM.
func RunAppServer(args []string) int {
	cfg, err := ParseConfig(args, os.Getenv)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		log.Printf("Failed to open %s store: %v", cfg.Driver, err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()
	log.Printf("Opened %s store", cfg.Driver)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Printf("Failed to listen on %s: %v", cfg.Addr, err)
		return 1
	}

	srv := &http.Server{
		Handler:           routes.SetupRoutes(store.Posts, store.Comments),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("Listening on http://%s", ln.Addr())
	if err := serve(ctx, srv, ln, cfg.ShutdownTimeout); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	log.Printf("Server stopped")
	return 0
}

// serve runs srv on ln until ctx is done, then shuts it down, waiting at
// most timeout for in-flight requests.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
