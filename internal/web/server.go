// Package web exposes a small read-only HTTP API over the live snapshots
// and the active game session.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/golazobot/golazo/internal/models"
	"github.com/golazobot/golazo/internal/poller"
	"github.com/golazobot/golazo/internal/service"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type Server struct {
	httpServer  *http.Server
	scorePoller *poller.Poller
	gameService *service.GameService
}

func NewServer(addr string, scorePoller *poller.Poller, gameService *service.GameService) *Server {
	s := &Server{
		scorePoller: scorePoller,
		gameService: gameService,
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/live", s.handleLive).Methods(http.MethodGet)
	api.HandleFunc("/game", s.handleGame).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return s
}

func (s *Server) Run() error {
	slog.Info("Web server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	snapshots, updatedAt := s.scorePoller.Snapshots()
	if snapshots == nil {
		snapshots = []models.MatchWithScore{}
	}

	writeJSON(w, map[string]interface{}{
		"polling":   s.scorePoller.Running(),
		"updatedAt": updatedAt,
		"matches":   snapshots,
	})
}

func (s *Server) handleGame(w http.ResponseWriter, _ *http.Request) {
	game := s.gameService.CurrentGame()
	if game == nil {
		http.Error(w, `{"error":"no game in progress"}`, http.StatusNotFound)
		return
	}

	type matchView struct {
		ID        string `json:"id"`
		League    string `json:"league"`
		HomeTeam  string `json:"homeTeam"`
		AwayTeam  string `json:"awayTeam"`
		HomeGoals int    `json:"homeGoals"`
		AwayGoals int    `json:"awayGoals"`
		Common    bool   `json:"common"`
	}
	type playerView struct {
		Name   string `json:"name"`
		Drinks int    `json:"drinks"`
	}

	view := struct {
		ID        string       `json:"id"`
		CreatedAt time.Time    `json:"createdAt"`
		Matches   []matchView  `json:"matches"`
		Players   []playerView `json:"players"`
	}{
		ID:        game.ID,
		CreatedAt: game.CreatedAt,
		Matches:   []matchView{},
		Players:   []playerView{},
	}

	for _, match := range game.Matches {
		view.Matches = append(view.Matches, matchView{
			ID:        match.ID,
			League:    match.League,
			HomeTeam:  match.HomeTeam,
			AwayTeam:  match.AwayTeam,
			HomeGoals: match.HomeGoals,
			AwayGoals: match.AwayGoals,
			Common:    match.ID == game.CommonMatchID,
		})
	}
	for _, player := range game.Players {
		view.Players = append(view.Players, playerView{Name: player.Name, Drinks: player.Drinks})
	}

	writeJSON(w, view)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
