package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/golazobot/golazo/internal/models"
)

// MatchesReport lists the tracked fixtures with their recorded scores.
func (s *GameService) MatchesReport() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return "", ErrNoGame
	}

	if len(game.Matches) == 0 {
		return "No matches tracked yet. Use /addmatch to add one.", nil
	}

	var sb strings.Builder
	sb.WriteString("📋 *Tracked Matches*\n\n")
	for _, match := range game.Matches {
		marker := ""
		if match.ID == game.CommonMatchID {
			marker = " 🌍"
		}
		sb.WriteString(fmt.Sprintf("*%s* %d - %d *%s*%s\n", match.HomeTeam, match.HomeGoals, match.AwayGoals, match.AwayTeam, marker))
		sb.WriteString(fmt.Sprintf("   %s, id %s\n", match.League, match.ID))
	}

	return sb.String(), nil
}

// ScoresReport renders the tracked matches, preferring the live snapshot
// for a match when one is available from the current poll cycle.
func (s *GameService) ScoresReport(snapshots []models.MatchWithScore) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return "", ErrNoGame
	}

	if len(game.Matches) == 0 {
		return "No matches tracked yet. Use /addmatch to add one.", nil
	}

	live := make(map[string]models.MatchWithScore, len(snapshots))
	for _, snapshot := range snapshots {
		live[snapshot.MatchID] = snapshot
	}

	var sb strings.Builder
	sb.WriteString("⚽ *Scores*\n\n")
	for _, match := range game.Matches {
		snapshot, ok := live[match.ID]
		if !ok {
			sb.WriteString(fmt.Sprintf("*%s* %d - %d *%s*\n\n", match.HomeTeam, match.HomeGoals, match.AwayGoals, match.AwayTeam))
			continue
		}

		sb.WriteString(fmt.Sprintf("*%s* %d - %d *%s* (%s)\n", snapshot.HomeTeam, snapshot.HomeScore, snapshot.AwayScore, snapshot.AwayTeam, snapshot.StatusLabel))
		for _, scorer := range snapshot.Scorers {
			suffix := ""
			if scorer.Penalty {
				suffix = " (pen)"
			}
			if scorer.OwnGoal {
				suffix = " (og)"
			}
			sb.WriteString(fmt.Sprintf("   %s %s%s\n", scorer.Clock, scorer.Name, suffix))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// Leaderboard renders the current drink standings.
func (s *GameService) Leaderboard() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.repo.GetGame()
	if game == nil {
		return "", ErrNoGame
	}

	return leaderboardBody(game), nil
}

// History renders the archived session history.
func (s *GameService) History(ctx context.Context) (string, error) {
	summaries, err := s.store.History(ctx, 10)
	if err != nil {
		return "", fmt.Errorf("loading history: %w", err)
	}

	if len(summaries) == 0 {
		return "No finished games yet.", nil
	}

	var sb strings.Builder
	sb.WriteString("📚 *Past Games*\n\n")
	for _, summary := range summaries {
		sb.WriteString(fmt.Sprintf("%s\n", summary.EndedAt.Format("Mon 02 Jan 2006 15:04")))
		sb.WriteString(fmt.Sprintf("   %d matches, %d players, %d drinks\n", summary.MatchCount, summary.PlayerCount, summary.TotalDrinks))
	}

	return sb.String(), nil
}
