package service_test

import (
	"context"
	"testing"

	"github.com/golazobot/golazo/internal/models"
	"github.com/golazobot/golazo/internal/repository/memory"
	"github.com/golazobot/golazo/internal/service"
	"github.com/golazobot/golazo/internal/store"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *service.GameService {
	t.Helper()

	archive, err := store.Connect(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })

	return service.NewGameService(memory.NewRepository(), archive)
}

func startedGame(t *testing.T) *service.GameService {
	t.Helper()

	s := newTestService(t)
	_, err := s.NewGame()
	require.NoError(t, err)

	require.NoError(t, s.AddMatch(models.Match{
		ID: "m1", League: "eng.1", HomeTeam: "Arsenal", AwayTeam: "Chelsea",
	}))
	require.NoError(t, s.AddMatch(models.Match{
		ID: "m2", League: "esp.1", HomeTeam: "Barcelona", AwayTeam: "Real Madrid",
	}))

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, err := s.AddPlayer(name)
		require.NoError(t, err)
	}

	return s
}

func TestNewGameLifecycle(t *testing.T) {
	s := newTestService(t)

	_, err := s.NewGame()
	require.NoError(t, err)

	_, err = s.NewGame()
	require.ErrorIs(t, err, service.ErrGameInProgress)

	_, err = s.EndGame(context.Background())
	require.NoError(t, err)

	_, err = s.EndGame(context.Background())
	require.ErrorIs(t, err, service.ErrNoGame)
}

func TestAddMatchAndPlayerValidation(t *testing.T) {
	s := startedGame(t)

	err := s.AddMatch(models.Match{ID: "m1", HomeTeam: "Arsenal", AwayTeam: "Chelsea"})
	require.ErrorIs(t, err, service.ErrMatchExists)

	_, err = s.AddPlayer("alice")
	require.ErrorIs(t, err, service.ErrPlayerExists)

	noGame := newTestService(t)
	require.ErrorIs(t, noGame.AddMatch(models.Match{ID: "x", HomeTeam: "A", AwayTeam: "B"}), service.ErrNoGame)
}

func TestRecordGoalAssignsDrinksToAssignedPlayersOnly(t *testing.T) {
	s := startedGame(t)

	require.NoError(t, s.AssignPlayer("Alice", "arsenal"))
	require.NoError(t, s.AssignPlayer("Bob", "barcelona"))

	announcement, err := s.RecordGoal("chelsea")
	require.NoError(t, err)
	require.Contains(t, announcement, "Chelsea")
	require.Contains(t, announcement, "Arsenal 0 - 1 Chelsea")
	require.Contains(t, announcement, "Alice")
	require.NotContains(t, announcement, "Bob")

	game := s.CurrentGame()
	require.Equal(t, 1, playerByName(t, game, "Alice").Drinks)
	require.Equal(t, 0, playerByName(t, game, "Bob").Drinks)
	require.Len(t, game.Drinks, 1)
	require.Equal(t, models.DrinkReasonGoal, game.Drinks[0].Reason)
}

func TestCommonMatchCoversEveryPlayer(t *testing.T) {
	s := startedGame(t)

	// Only Alice is explicitly assigned; the common match covers everyone.
	require.NoError(t, s.AssignPlayer("Alice", "arsenal"))
	require.NoError(t, s.SetCommonMatch("barcelona"))

	announcement, err := s.RecordGoal("real madrid")
	require.NoError(t, err)
	require.Contains(t, announcement, "Alice")
	require.Contains(t, announcement, "Bob")
	require.Contains(t, announcement, "Carol")

	game := s.CurrentGame()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.Equal(t, 1, playerByName(t, game, name).Drinks)
	}
	require.Equal(t, models.DrinkReasonCommonMatch, game.Drinks[0].Reason)
}

func TestHandleGoalUsesAbsoluteTotals(t *testing.T) {
	s := startedGame(t)
	require.NoError(t, s.AssignPlayer("Alice", "arsenal"))

	// Poller reports home side at 2: score jumps straight there.
	announcement, err := s.HandleGoal("m1", models.SideHome, 2)
	require.NoError(t, err)
	require.Contains(t, announcement, "Arsenal 2 - 0 Chelsea")

	// A stale or replayed callback is ignored.
	announcement, err = s.HandleGoal("m1", models.SideHome, 2)
	require.NoError(t, err)
	require.Empty(t, announcement)

	game := s.CurrentGame()
	require.Equal(t, 2, matchByID(t, game, "m1").HomeGoals)
	require.Equal(t, 1, playerByName(t, game, "Alice").Drinks)

	_, err = s.HandleGoal("unknown", models.SideHome, 1)
	require.ErrorIs(t, err, service.ErrMatchNotFound)
}

func TestAssignPlayerFuzzyMatching(t *testing.T) {
	s := startedGame(t)

	// Partial, case-insensitive team names resolve to the right match.
	require.NoError(t, s.AssignPlayer("alice", "CHEL"))
	require.NoError(t, s.AssignPlayer("Bob", "madrid"))

	require.ErrorIs(t, s.AssignPlayer("Alice", "juventus"), service.ErrMatchNotFound)
	require.ErrorIs(t, s.AssignPlayer("Zed", "arsenal"), service.ErrPlayerNotFound)

	// Assigning the same match twice is a no-op, not an error.
	require.NoError(t, s.AssignPlayer("Alice", "chelsea"))
}

func TestTrackedMatchesIsACopy(t *testing.T) {
	s := startedGame(t)

	matches := s.TrackedMatches()
	require.Len(t, matches, 2)

	matches[0].HomeGoals = 99
	require.Equal(t, 0, s.TrackedMatches()[0].HomeGoals)

	require.Empty(t, newTestService(t).TrackedMatches())
}

func TestLeaderboardOrdering(t *testing.T) {
	s := startedGame(t)

	require.NoError(t, s.AssignPlayer("Bob", "arsenal"))
	_, err := s.RecordGoal("arsenal")
	require.NoError(t, err)
	_, err = s.RecordGoal("arsenal")
	require.NoError(t, err)

	leaderboard, err := s.Leaderboard()
	require.NoError(t, err)
	require.Regexp(t, `1\. Bob: 2`, leaderboard)
	require.Regexp(t, `2\. Alice: 0`, leaderboard)
}

func TestEndGameArchivesSession(t *testing.T) {
	s := startedGame(t)
	require.NoError(t, s.SetCommonMatch("arsenal"))
	_, err := s.RecordGoal("arsenal")
	require.NoError(t, err)

	summary, err := s.EndGame(context.Background())
	require.NoError(t, err)
	require.Contains(t, summary, "Game Over")
	require.Contains(t, summary, "Arsenal 1 - 0 Chelsea")

	require.Nil(t, s.CurrentGame())

	history, err := s.History(context.Background())
	require.NoError(t, err)
	require.Contains(t, history, "2 matches, 3 players, 3 drinks")
}

func playerByName(t *testing.T, game *models.Game, name string) models.Player {
	t.Helper()
	for _, player := range game.Players {
		if player.Name == name {
			return player
		}
	}
	t.Fatalf("player %s not found", name)
	return models.Player{}
}

func matchByID(t *testing.T, game *models.Game, id string) models.Match {
	t.Helper()
	for _, match := range game.Matches {
		if match.ID == id {
			return match
		}
	}
	t.Fatalf("match %s not found", id)
	return models.Match{}
}
