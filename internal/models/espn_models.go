package models

type ScoreboardResponse struct {
	Events []ScoreboardEvent `json:"events"`
}

type ScoreboardEvent struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Date         string        `json:"date"`
	Status       EventStatus   `json:"status"`
	Competitions []Competition `json:"competitions"`
}

type EventStatus struct {
	DisplayClock string     `json:"displayClock"`
	Type         StatusType `json:"type"`
}

type StatusType struct {
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

type Competition struct {
	Competitors []Competitor  `json:"competitors"`
	Details     []EventDetail `json:"details"`
}

type Competitor struct {
	HomeAway   string      `json:"homeAway"`
	Score      string      `json:"score"`
	Team       TeamInfo    `json:"team"`
	Statistics []Statistic `json:"statistics"`
}

type TeamInfo struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

// Statistic carries both a structured value and a display string; the value
// is a pointer so its absence can be told apart from a real zero.
type Statistic struct {
	Name         string   `json:"name"`
	DisplayValue string   `json:"displayValue"`
	Value        *float64 `json:"value"`
}

type EventDetail struct {
	Type             DetailType  `json:"type"`
	Clock            DetailClock `json:"clock"`
	Team             TeamRef     `json:"team"`
	ScoringPlay      bool        `json:"scoringPlay"`
	RedCard          bool        `json:"redCard"`
	YellowCard       bool        `json:"yellowCard"`
	PenaltyKick      bool        `json:"penaltyKick"`
	OwnGoal          bool        `json:"ownGoal"`
	AthletesInvolved []Athlete   `json:"athletesInvolved"`
}

type DetailType struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type DetailClock struct {
	DisplayValue string `json:"displayValue"`
}

type TeamRef struct {
	ID string `json:"id"`
}

type Athlete struct {
	DisplayName string `json:"displayName"`
}
