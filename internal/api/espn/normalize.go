package espn

import (
	"strconv"
	"strings"

	"github.com/golazobot/golazo/internal/logos"
	"github.com/golazobot/golazo/internal/models"
)

// NormalizeEvent converts one raw scoreboard event into a live snapshot.
// It returns nil when the event id is missing, when either competitor is
// absent, or when the payload shape is otherwise unusable; it never panics
// on partial data. Team crest URLs found along the way are stored in the
// logo cache as a side effect.
func NormalizeEvent(event models.ScoreboardEvent, logoCache *logos.Cache) *models.MatchWithScore {
	if strings.TrimSpace(event.ID) == "" {
		return nil
	}
	if len(event.Competitions) == 0 {
		return nil
	}

	competition := event.Competitions[0]
	home := findCompetitor(competition.Competitors, "home")
	away := findCompetitor(competition.Competitors, "away")
	if home == nil || away == nil {
		return nil
	}
	if home.Team.ID == "" || away.Team.ID == "" {
		return nil
	}

	if logoCache != nil {
		logoCache.Put(home.Team.ID, home.Team.Logo)
		logoCache.Put(away.Team.ID, away.Team.Logo)
	}

	match := &models.MatchWithScore{
		MatchID:     event.ID,
		HomeTeamID:  home.Team.ID,
		AwayTeamID:  away.Team.ID,
		HomeTeam:    home.Team.DisplayName,
		AwayTeam:    away.Team.DisplayName,
		HomeScore:   parseScore(home.Score),
		AwayScore:   parseScore(away.Score),
		IsLive:      event.Status.Type.State == "in",
		StatusLabel: statusLabel(event.Status),
		Scorers:     extractScorers(competition.Details),
	}

	if len(home.Statistics) > 0 {
		match.HomeStats = teamStatistics(home.Statistics, home.Team.ID, competition.Details)
	}
	if len(away.Statistics) > 0 {
		match.AwayStats = teamStatistics(away.Statistics, away.Team.ID, competition.Details)
	}

	return match
}

func findCompetitor(competitors []models.Competitor, homeAway string) *models.Competitor {
	for i := range competitors {
		if competitors[i].HomeAway == homeAway {
			return &competitors[i]
		}
	}
	return nil
}

// parseScore reads a competitor's score string, defaulting to 0 on anything
// unparsable.
func parseScore(raw string) int {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || score < 0 {
		return 0
	}
	return score
}

// statusLabel picks the display label in priority order: half/full-time
// marker, live clock, any other short status text, "?" placeholder.
func statusLabel(status models.EventStatus) string {
	short := strings.TrimSpace(status.Type.ShortDetail)
	if short == "HT" || short == "FT" {
		return short
	}

	if status.Type.State == "in" && strings.TrimSpace(status.DisplayClock) != "" {
		return strings.TrimSpace(status.DisplayClock)
	}

	if short != "" {
		return short
	}

	return "?"
}

func extractScorers(details []models.EventDetail) []models.GoalScorer {
	var scorers []models.GoalScorer
	for _, detail := range details {
		if !detail.ScoringPlay {
			continue
		}

		scorer := models.GoalScorer{
			Clock:   detail.Clock.DisplayValue,
			TeamID:  detail.Team.ID,
			Penalty: detail.PenaltyKick,
			OwnGoal: detail.OwnGoal,
			Type:    detail.Type.Text,
		}
		if len(detail.AthletesInvolved) > 0 {
			scorer.Name = detail.AthletesInvolved[0].DisplayName
		}
		scorers = append(scorers, scorer)
	}
	return scorers
}

func teamStatistics(stats []models.Statistic, teamID string, details []models.EventDetail) *models.TeamStatistics {
	result := &models.TeamStatistics{
		Shots:         statValue(stats, "totalShots"),
		ShotsOnTarget: statValue(stats, "shotsOnTarget"),
		Fouls:         statValue(stats, "foulsCommitted"),
		Corners:       statValue(stats, "wonCorners"),
		Possession:    statValue(stats, "possessionPct"),
	}

	for _, detail := range details {
		if detail.Team.ID != teamID {
			continue
		}
		if detail.YellowCard {
			result.YellowCards++
		}
		if detail.RedCard {
			result.RedCards++
		}
	}

	return result
}

// statValue looks up a named stat, preferring the structured value and
// falling back to the digits of the display string. Unknown names are 0.
func statValue(stats []models.Statistic, name string) int {
	for _, stat := range stats {
		if stat.Name != name {
			continue
		}
		if stat.Value != nil {
			return int(*stat.Value)
		}
		return parseDisplayValue(stat.DisplayValue)
	}
	return 0
}

func parseDisplayValue(display string) int {
	var digits strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	value, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return value
}
