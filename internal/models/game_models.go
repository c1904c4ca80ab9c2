package models

import "time"

// Side identifies a team within a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// DrinkReason records why a drink was assigned.
type DrinkReason string

const (
	// DrinkReasonGoal is a drink owed for a goal in an assigned match.
	DrinkReasonGoal DrinkReason = "goal"

	// DrinkReasonCommonMatch is a drink owed because the goal fell in the
	// common match, which covers every player.
	DrinkReasonCommonMatch DrinkReason = "common_match"
)

// Match is a locally tracked fixture. Scores here are the application's own
// record and only move forward, either by a manual increment or by the live
// poller catching up to the upstream score.
type Match struct {
	ID         string
	League     string
	HomeTeamID string
	AwayTeamID string
	HomeTeam   string
	AwayTeam   string
	HomeGoals  int
	AwayGoals  int
}

// TotalGoals is the combined score of both sides.
func (m Match) TotalGoals() int {
	return m.HomeGoals + m.AwayGoals
}

type Player struct {
	ID     string
	Name   string
	Drinks int
}

// DrinkEntry is one drink obligation in the session ledger.
type DrinkEntry struct {
	PlayerID  string
	MatchID   string
	Side      Side
	Reason    DrinkReason
	CreatedAt time.Time
}

// Game is the active session. A match is the common match iff its ID equals
// CommonMatchID; the common match covers every player regardless of the
// assignment map.
type Game struct {
	ID            string
	CreatedAt     time.Time
	Matches       []Match
	Players       []Player
	Assignments   map[string][]string // player id -> match ids
	CommonMatchID string
	Drinks        []DrinkEntry
}

// GoalScorer is one scoring play extracted from the upstream event details.
type GoalScorer struct {
	Name    string `json:"name"`
	Clock   string `json:"clock"`
	TeamID  string `json:"teamId"`
	Penalty bool   `json:"penalty"`
	OwnGoal bool   `json:"ownGoal"`
	Type    string `json:"type,omitempty"`
}

// TeamStatistics are per-team match stats from the upstream scoreboard.
// Possession is a whole percentage (53, not 0.53).
type TeamStatistics struct {
	Shots         int `json:"shots"`
	ShotsOnTarget int `json:"shotsOnTarget"`
	Fouls         int `json:"fouls"`
	Corners       int `json:"corners"`
	Possession    int `json:"possession"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
}

// MatchWithScore is the ephemeral live snapshot of one upstream event,
// rebuilt from scratch every poll cycle and never persisted.
type MatchWithScore struct {
	MatchID     string          `json:"matchId"`
	HomeTeamID  string          `json:"homeTeamId"`
	AwayTeamID  string          `json:"awayTeamId"`
	HomeTeam    string          `json:"homeTeam"`
	AwayTeam    string          `json:"awayTeam"`
	HomeScore   int             `json:"homeScore"`
	AwayScore   int             `json:"awayScore"`
	IsLive      bool            `json:"isLive"`
	StatusLabel string          `json:"statusLabel"`
	Scorers     []GoalScorer    `json:"scorers,omitempty"`
	HomeStats   *TeamStatistics `json:"homeStats,omitempty"`
	AwayStats   *TeamStatistics `json:"awayStats,omitempty"`
}

// TotalGoals is the combined score of both sides.
func (m MatchWithScore) TotalGoals() int {
	return m.HomeScore + m.AwayScore
}
