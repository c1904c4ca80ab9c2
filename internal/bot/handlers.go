package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golazobot/golazo/internal/models"
	"github.com/golazobot/golazo/internal/poller"
	"github.com/golazobot/golazo/internal/service"
)

const helpText = `Available commands:
/newgame - Start a new game session
/addmatch <league> <eventId> <home> vs <away> - Track a match
/addplayer <name> - Add a player
/assign <player> <team> - Assign a player to a team's match
/common <team> - Make that team's match the common match (everyone drinks)
/goal <team> - Record a goal manually
/scores - Current scores (live when polling)
/matches - List tracked matches
/live - Start live score polling
/stoplive - Stop live score polling
/drinks - Drink leaderboard
/history - Past game sessions
/endgame - Finish and archive the game`

type Handler struct {
	gameService *service.GameService
	scorePoller *poller.Poller
}

func NewHandler(gameService *service.GameService, scorePoller *poller.Poller) *Handler {
	return &Handler{gameService: gameService, scorePoller: scorePoller}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to Golazo! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "newgame":
		h.handleNewGame(&msg)
	case "addmatch":
		h.handleAddMatch(&msg, args)
	case "addplayer":
		h.handleAddPlayer(&msg, args)
	case "assign":
		h.handleAssign(&msg, args)
	case "common":
		h.handleCommon(&msg, args)
	case "goal":
		h.handleGoal(&msg, args)
	case "scores":
		h.handleScores(&msg)
	case "matches":
		h.handleMatches(&msg)
	case "live":
		h.handleLive(&msg)
	case "stoplive":
		h.handleStopLive(&msg)
	case "drinks":
		h.handleDrinks(&msg)
	case "history":
		h.handleHistory(ctx, &msg)
	case "endgame":
		h.handleEndGame(ctx, &msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleNewGame(msg *tgbotapi.MessageConfig) {
	if _, err := h.gameService.NewGame(); err != nil {
		msg.Text = fmt.Sprintf("Error starting game: %v", err)
		return
	}
	msg.Text = "🍻 New game started! Add matches with /addmatch and players with /addplayer."
}

func (h *Handler) handleAddMatch(msg *tgbotapi.MessageConfig, args string) {
	match, err := parseAddMatch(args)
	if err != nil {
		msg.Text = err.Error()
		return
	}

	if err := h.gameService.AddMatch(match); err != nil {
		msg.Text = fmt.Sprintf("Error adding match: %v", err)
		return
	}
	msg.Text = fmt.Sprintf("Tracking *%s* vs *%s* (%s).", match.HomeTeam, match.AwayTeam, match.League)
}

// parseAddMatch reads "<league> <eventId> <home> vs <away>".
func parseAddMatch(args string) (models.Match, error) {
	usage := "Usage: /addmatch <league> <eventId> <home team> vs <away team>"

	fields := strings.Fields(args)
	if len(fields) < 3 {
		return models.Match{}, fmt.Errorf("%s", usage)
	}

	league, eventID := fields[0], fields[1]
	teams := strings.Join(fields[2:], " ")
	parts := strings.SplitN(teams, " vs ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return models.Match{}, fmt.Errorf("%s", usage)
	}

	return models.Match{
		ID:       eventID,
		League:   league,
		HomeTeam: strings.TrimSpace(parts[0]),
		AwayTeam: strings.TrimSpace(parts[1]),
	}, nil
}

func (h *Handler) handleAddPlayer(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a name. Usage: /addplayer <name>"
		return
	}

	player, err := h.gameService.AddPlayer(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error adding player: %v", err)
		return
	}
	msg.Text = fmt.Sprintf("*%s* joined the game. Assign matches with /assign %s <team>.", player.Name, player.Name)
}

func (h *Handler) handleAssign(msg *tgbotapi.MessageConfig, args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		msg.Text = "Usage: /assign <player> <team>"
		return
	}

	playerName := fields[0]
	teamQuery := strings.Join(fields[1:], " ")

	if err := h.gameService.AssignPlayer(playerName, teamQuery); err != nil {
		msg.Text = fmt.Sprintf("Error assigning player: %v", err)
		return
	}
	msg.Text = fmt.Sprintf("*%s* now drinks on goals in the %s match.", playerName, teamQuery)
}

func (h *Handler) handleCommon(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Usage: /common <team>"
		return
	}

	if err := h.gameService.SetCommonMatch(args); err != nil {
		msg.Text = fmt.Sprintf("Error setting common match: %v", err)
		return
	}
	msg.Text = "🌍 Common match set. Everyone drinks on its goals!"
}

func (h *Handler) handleGoal(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Usage: /goal <team>"
		return
	}

	announcement, err := h.gameService.RecordGoal(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error recording goal: %v", err)
		return
	}
	msg.Text = announcement
}

func (h *Handler) handleScores(msg *tgbotapi.MessageConfig) {
	snapshots, _ := h.scorePoller.Snapshots()
	report, err := h.gameService.ScoresReport(snapshots)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching scores: %v", err)
		return
	}
	msg.Text = report
}

func (h *Handler) handleMatches(msg *tgbotapi.MessageConfig) {
	report, err := h.gameService.MatchesReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error listing matches: %v", err)
		return
	}
	msg.Text = report
}

func (h *Handler) handleLive(msg *tgbotapi.MessageConfig) {
	if h.scorePoller.Running() {
		msg.Text = "Live polling is already running."
		return
	}
	if err := h.scorePoller.Start(); err != nil {
		msg.Text = fmt.Sprintf("Error starting live polling: %v", err)
		return
	}
	msg.Text = "📡 Live score polling started. Goals will be announced here."
}

func (h *Handler) handleStopLive(msg *tgbotapi.MessageConfig) {
	if err := h.scorePoller.Stop(); err != nil {
		msg.Text = fmt.Sprintf("Error stopping live polling: %v", err)
		return
	}
	msg.Text = "Live score polling stopped."
}

func (h *Handler) handleDrinks(msg *tgbotapi.MessageConfig) {
	leaderboard, err := h.gameService.Leaderboard()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching leaderboard: %v", err)
		return
	}
	msg.Text = leaderboard
}

func (h *Handler) handleHistory(ctx context.Context, msg *tgbotapi.MessageConfig) {
	history, err := h.gameService.History(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching history: %v", err)
		return
	}
	msg.Text = history
}

func (h *Handler) handleEndGame(ctx context.Context, msg *tgbotapi.MessageConfig) {
	summary, err := h.gameService.EndGame(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error ending game: %v", err)
		return
	}

	if h.scorePoller.Running() {
		if err := h.scorePoller.Stop(); err != nil {
			msg.Text = fmt.Sprintf("%s\n(live polling failed to stop: %v)", summary, err)
			return
		}
	}
	msg.Text = summary
}
