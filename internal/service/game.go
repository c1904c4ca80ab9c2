package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golazobot/golazo/internal/models"
	"github.com/golazobot/golazo/internal/repository/memory"
	"github.com/golazobot/golazo/internal/store"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	ErrNoGame         = errors.New("no game in progress, use /newgame first")
	ErrGameInProgress = errors.New("a game is already in progress, use /endgame first")
	ErrMatchExists    = errors.New("match is already tracked")
	ErrMatchNotFound  = errors.New("no tracked match found for that team")
	ErrPlayerExists   = errors.New("player is already in the game")
	ErrPlayerNotFound = errors.New("no such player in the game")
)

// matchThreshold is the minimum name similarity accepted when resolving
// team and player names from chat input.
const matchThreshold = 0.7

type GameService struct {
	repo  *memory.Repository
	store *store.Store
	mu    sync.Mutex
}

func NewGameService(repo *memory.Repository, archive *store.Store) *GameService {
	return &GameService{repo: repo, store: archive}
}

func (s *GameService) NewGame() (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo.GetGame() != nil {
		return nil, ErrGameInProgress
	}

	game := &models.Game{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		Assignments: make(map[string][]string),
	}
	s.repo.SaveGame(game)

	slog.Info("New game started", "game", game.ID)
	return game, nil
}

// AddMatch registers a fixture to track. The id must be the upstream event
// id so the live poller can reconcile scores against it.
func (s *GameService) AddMatch(match models.Match) error {
	if match.ID == "" || match.HomeTeam == "" || match.AwayTeam == "" {
		return fmt.Errorf("match needs an id and both team names")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return ErrNoGame
	}

	for _, existing := range game.Matches {
		if existing.ID == match.ID {
			return ErrMatchExists
		}
	}

	game.Matches = append(game.Matches, match)
	s.repo.SaveGame(game)

	slog.Info("Match added", "match", match.ID, "home", match.HomeTeam, "away", match.AwayTeam)
	return nil
}

func (s *GameService) AddPlayer(name string) (models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Player{}, fmt.Errorf("player name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return models.Player{}, ErrNoGame
	}

	for _, existing := range game.Players {
		if strings.EqualFold(existing.Name, name) {
			return models.Player{}, ErrPlayerExists
		}
	}

	player := models.Player{ID: uuid.NewString(), Name: name}
	game.Players = append(game.Players, player)
	s.repo.SaveGame(game)

	return player, nil
}

// AssignPlayer adds the match whose team best matches teamQuery to the
// player's assignment list.
func (s *GameService) AssignPlayer(playerName, teamQuery string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return ErrNoGame
	}

	player := findPlayer(game, playerName)
	if player == nil {
		return ErrPlayerNotFound
	}

	match, _ := findMatchByTeam(game, teamQuery)
	if match == nil {
		return ErrMatchNotFound
	}

	for _, assigned := range game.Assignments[player.ID] {
		if assigned == match.ID {
			return nil
		}
	}
	game.Assignments[player.ID] = append(game.Assignments[player.ID], match.ID)
	s.repo.SaveGame(game)

	return nil
}

// SetCommonMatch designates the match whose team best matches teamQuery as
// the common match, which covers every player.
func (s *GameService) SetCommonMatch(teamQuery string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return ErrNoGame
	}

	match, _ := findMatchByTeam(game, teamQuery)
	if match == nil {
		return ErrMatchNotFound
	}

	game.CommonMatchID = match.ID
	s.repo.SaveGame(game)

	return nil
}

// RecordGoal manually increments the score of whichever side of a tracked
// match the team query resolves to, and returns the drink announcement.
func (s *GameService) RecordGoal(teamQuery string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return "", ErrNoGame
	}

	match, side := findMatchByTeam(game, teamQuery)
	if match == nil {
		return "", ErrMatchNotFound
	}

	if side == models.SideHome {
		match.HomeGoals++
	} else {
		match.AwayGoals++
	}

	drinkers := s.assignDrinks(game, match, side)
	s.repo.SaveGame(game)

	return goalAnnouncement(match, side, drinkers), nil
}

// HandleGoal is the live poller's callback target. It raises the given
// side's score to the reported absolute total and assigns drinks. A total
// at or below the recorded score is ignored, which makes replayed or stale
// callbacks harmless.
func (s *GameService) HandleGoal(matchID string, side models.Side, newTotal int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return "", ErrNoGame
	}

	match := findMatchByID(game, matchID)
	if match == nil {
		return "", ErrMatchNotFound
	}

	current := match.HomeGoals
	if side == models.SideAway {
		current = match.AwayGoals
	}
	if newTotal <= current {
		return "", nil
	}

	if side == models.SideHome {
		match.HomeGoals = newTotal
	} else {
		match.AwayGoals = newTotal
	}

	drinkers := s.assignDrinks(game, match, side)
	s.repo.SaveGame(game)

	slog.Info("Goal detected", "match", match.ID, "side", side, "score", newTotal)
	return goalAnnouncement(match, side, drinkers), nil
}

// assignDrinks gives one drink to every player covering the match: the
// explicit assignees, or everyone when the match is the common match.
// Caller holds s.mu.
func (s *GameService) assignDrinks(game *models.Game, match *models.Match, side models.Side) []string {
	reason := models.DrinkReasonGoal
	isCommon := match.ID == game.CommonMatchID
	if isCommon {
		reason = models.DrinkReasonCommonMatch
	}

	var names []string
	for i := range game.Players {
		player := &game.Players[i]
		if !isCommon && !contains(game.Assignments[player.ID], match.ID) {
			continue
		}

		player.Drinks++
		game.Drinks = append(game.Drinks, models.DrinkEntry{
			PlayerID:  player.ID,
			MatchID:   match.ID,
			Side:      side,
			Reason:    reason,
			CreatedAt: time.Now(),
		})
		names = append(names, player.Name)
	}

	return names
}

// TrackedMatches returns a copy of the current matches for the poller.
// An empty slice when no game is active keeps the poller idle.
func (s *GameService) TrackedMatches() []models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return nil
	}

	matches := make([]models.Match, len(game.Matches))
	copy(matches, game.Matches)
	return matches
}

// CurrentGame returns a deep copy of the active session, or nil when no
// game is in progress. Safe to read without further locking.
func (s *GameService) CurrentGame() *models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return nil
	}

	snapshot := &models.Game{
		ID:            game.ID,
		CreatedAt:     game.CreatedAt,
		CommonMatchID: game.CommonMatchID,
		Matches:       append([]models.Match(nil), game.Matches...),
		Players:       append([]models.Player(nil), game.Players...),
		Drinks:        append([]models.DrinkEntry(nil), game.Drinks...),
		Assignments:   make(map[string][]string, len(game.Assignments)),
	}
	for playerID, matchIDs := range game.Assignments {
		snapshot.Assignments[playerID] = append([]string(nil), matchIDs...)
	}

	return snapshot
}

// EndGame archives the session and clears the in-memory state, returning a
// final summary message.
func (s *GameService) EndGame(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return "", ErrNoGame
	}

	if err := s.store.ArchiveGame(ctx, game, time.Now()); err != nil {
		return "", fmt.Errorf("archiving game: %w", err)
	}

	summary := finalSummary(game)
	s.repo.ClearGame()

	slog.Info("Game ended and archived", "game", game.ID)
	return summary, nil
}

func findMatchByID(game *models.Game, matchID string) *models.Match {
	for i := range game.Matches {
		if game.Matches[i].ID == matchID {
			return &game.Matches[i]
		}
	}
	return nil
}

// findMatchByTeam resolves a chat-supplied team name to a tracked match and
// the side that team plays on, using the same similarity scoring as player
// lookup.
func findMatchByTeam(game *models.Game, query string) (*models.Match, models.Side) {
	var (
		best     *models.Match
		bestSide models.Side
		bestSim  float64
	)

	for i := range game.Matches {
		match := &game.Matches[i]
		if sim := similarity(query, match.HomeTeam); sim > bestSim {
			best, bestSide, bestSim = match, models.SideHome, sim
		}
		if sim := similarity(query, match.AwayTeam); sim > bestSim {
			best, bestSide, bestSim = match, models.SideAway, sim
		}
	}

	if bestSim < matchThreshold {
		return nil, ""
	}
	return best, bestSide
}

func findPlayer(game *models.Game, name string) *models.Player {
	var (
		best    *models.Player
		bestSim float64
	)

	for i := range game.Players {
		player := &game.Players[i]
		if strings.EqualFold(player.Name, name) {
			return player
		}
		if sim := similarity(name, player.Name); sim > bestSim {
			best, bestSim = player, sim
		}
	}

	if bestSim < matchThreshold {
		return nil
	}
	return best
}

// similarity is a normalized Levenshtein score in [0, 1]. Substring hits
// count as matches so "united" finds "Manchester United".
func similarity(query, target string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	target = strings.ToLower(target)
	if query == "" {
		return 0
	}
	if strings.Contains(target, query) {
		return 1
	}

	distance := fuzzy.LevenshteinDistance(query, target)
	maxLen := float64(max(len(query), len(target)))
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(distance)/maxLen
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func goalAnnouncement(match *models.Match, side models.Side, drinkers []string) string {
	scorer := match.HomeTeam
	if side == models.SideAway {
		scorer = match.AwayTeam
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚽ *GOAL!* %s\n", scorer))
	sb.WriteString(fmt.Sprintf("%s %d - %d %s\n", match.HomeTeam, match.HomeGoals, match.AwayGoals, match.AwayTeam))

	if len(drinkers) == 0 {
		sb.WriteString("Nobody drinks this time.")
	} else {
		sb.WriteString(fmt.Sprintf("🍺 Drink up: %s", strings.Join(drinkers, ", ")))
	}

	return sb.String()
}

func finalSummary(game *models.Game) string {
	var sb strings.Builder
	sb.WriteString("🏁 *Game Over!*\n\n")

	for _, match := range game.Matches {
		sb.WriteString(fmt.Sprintf("%s %d - %d %s\n", match.HomeTeam, match.HomeGoals, match.AwayGoals, match.AwayTeam))
	}

	sb.WriteString("\n")
	sb.WriteString(leaderboardBody(game))
	return sb.String()
}

func leaderboardBody(game *models.Game) string {
	players := make([]models.Player, len(game.Players))
	copy(players, game.Players)

	sort.Slice(players, func(i, j int) bool {
		if players[i].Drinks != players[j].Drinks {
			return players[i].Drinks > players[j].Drinks
		}
		return players[i].Name < players[j].Name
	})

	var sb strings.Builder
	sb.WriteString("🍺 *Drink Count*\n")
	for rank, player := range players {
		sb.WriteString(fmt.Sprintf("%d. %s: %d\n", rank+1, player.Name, player.Drinks))
	}
	if len(players) == 0 {
		sb.WriteString("No players yet.\n")
	}
	return sb.String()
}
