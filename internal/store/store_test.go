package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/golazobot/golazo/internal/models"
	"github.com/golazobot/golazo/internal/store"
	"github.com/stretchr/testify/require"
)

func testGame() *models.Game {
	return &models.Game{
		ID:            "game-1",
		CreatedAt:     time.Date(2026, 5, 9, 14, 0, 0, 0, time.UTC),
		CommonMatchID: "m1",
		Matches: []models.Match{
			{ID: "m1", League: "eng.1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", HomeGoals: 2, AwayGoals: 1},
			{ID: "m2", League: "esp.1", HomeTeam: "Barcelona", AwayTeam: "Real Madrid"},
		},
		Players: []models.Player{
			{ID: "p1", Name: "Alice", Drinks: 3},
			{ID: "p2", Name: "Bob", Drinks: 1},
		},
	}
}

func TestArchiveAndHistory(t *testing.T) {
	ctx := context.Background()

	s, err := store.Connect(ctx, "")
	require.NoError(t, err)
	defer s.Close()

	endedAt := time.Date(2026, 5, 9, 18, 0, 0, 0, time.UTC)
	require.NoError(t, s.ArchiveGame(ctx, testGame(), endedAt))

	// Archiving the same session twice violates the primary key.
	require.Error(t, s.ArchiveGame(ctx, testGame(), endedAt))

	summaries, err := s.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "game-1", summaries[0].ID)
	require.Equal(t, 2, summaries[0].MatchCount)
	require.Equal(t, 2, summaries[0].PlayerCount)
	require.Equal(t, 4, summaries[0].TotalDrinks)
	require.True(t, endedAt.Equal(summaries[0].EndedAt))
}

func TestHistoryOrderAndLimit(t *testing.T) {
	ctx := context.Background()

	s, err := store.Connect(ctx, "")
	require.NoError(t, err)
	defer s.Close()

	base := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		game := &models.Game{ID: id, CreatedAt: base}
		require.NoError(t, s.ArchiveGame(ctx, game, base.AddDate(0, 0, i)))
	}

	summaries, err := s.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "c", summaries[0].ID)
	require.Equal(t, "b", summaries[1].ID)
}

func TestHistoryEmpty(t *testing.T) {
	ctx := context.Background()

	s, err := store.Connect(ctx, "")
	require.NoError(t, err)
	defer s.Close()

	summaries, err := s.History(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, summaries)
}
