// Package server is the TalentHub admin console: it serves the dashboard SPA,
// owns admin sessions, and fronts the upstream TalentHub REST API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/gateway"
	"gorm.io/gorm"
)

// SYNC-CONSOLE-SESSION-COOKIE
const SessionCookie = "talenthub-admin-session"

type Server struct {
	HotReloadWWW bool
	Log          logs.Log
	DB           *gorm.DB
	Port         string // from config, eg ":8080"

	signalIn   chan os.Signal
	httpServer *http.Server
	httpRouter *httprouter.Router
	sessions   *auth.SessionServer
	upstream   *gateway.Client
	screens    *screenRegistry
}

func NewServer(configFile string) (*Server, error) {
	cfg := Config{}
	if cfgB, err := os.ReadFile(configFile); err != nil {
		return nil, err
	} else {
		if err := json.Unmarshal(cfgB, &cfg); err != nil {
			return nil, fmt.Errorf("Error parsing config file %v: %w", configFile, err)
		}
	}
	logger, err := logs.NewLog()
	if err != nil {
		return nil, err
	}
	return NewServerWithConfig(logger, cfg)
}

func NewServerWithConfig(logger logs.Log, cfg Config) (*Server, error) {
	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream.baseUrl must be configured")
	}
	sealKey, err := cfg.sealKey()
	if err != nil {
		return nil, err
	}
	db, err := openDB(logger, cfg.DB)
	if err != nil {
		return nil, err
	}
	port := cfg.Port
	if port == "" {
		port = ":8080"
	}
	s := &Server{
		Log:      logger,
		DB:       db,
		Port:     port,
		sessions: auth.NewSessionServer(db, logger, SessionCookie, sealKey),
		upstream: gateway.NewClient(cfg.Upstream.BaseURL),
		screens:  newScreenRegistry(),
	}
	// Screen state follows the session out
	s.sessions.OnSessionPurged = s.screens.drop
	if err := s.setupHttpRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// port example: ":8080"
func (s *Server) ListenHTTP(port string) error {
	s.Log.Infof("Listening on %v", port)
	s.httpServer = &http.Server{
		Addr:    port,
		Handler: s.httpRouter,
	}
	return s.httpServer.ListenAndServe()
}

// Router returns the root HTTP handler (used by tests).
func (s *Server) Router() http.Handler {
	return s.httpRouter
}

func (s *Server) ListenForKillSignals() {
	s.Log.Infof("ListenForKillSignals starting")
	s.signalIn = make(chan os.Signal, 1)
	signal.Notify(s.signalIn, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig, ok := <-s.signalIn
		if ok {
			s.Log.Infof("Received OS signal '%v'. ListenForKillSignals will exit after shutdown", sig.String())
			s.Shutdown()
		} else {
			// This path gets hit when Shutdown() is called by something other than ourselves, and Shutdown() closes the signalIn channel.
			s.Log.Infof("signalIn closed. ListenForKillSignals will exit now")
		}
	}()
}

func (s *Server) Shutdown() {
	s.Log.Infof("Shutdown")
	signal.Stop(s.signalIn)
	close(s.signalIn)
	s.Log.Infof("Closing HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	err := s.httpServer.Shutdown(ctx)
	defer cancel()
	if err != nil {
		s.Log.Warnf("Shutdown complete, with error: %v", err)
	} else {
		s.Log.Infof("Shutdown complete")
	}
	s.Log.Close()
}
