package memory

import (
	"sync"

	"github.com/golazobot/golazo/internal/models"
)

type Repository struct {
	game *models.Game
	mu   sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveGame(game *models.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game = game
}

func (r *Repository) GetGame() *models.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game
}

func (r *Repository) ClearGame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game = nil
}
