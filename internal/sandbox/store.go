// Package sandbox serves an in-memory copy of the moderation endpoints. It backs the api tests and the
// sandbox command so moderators can try the tooling without touching real games.
package sandbox

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ogsmod/modtool/internal/api"
	"github.com/ogsmod/modtool/internal/moderation"
)

var ErrGameNotFound = errors.New("game not found")

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

type Store struct {
	mu             sync.RWMutex
	games          map[int64]api.GameDetail
	locked         map[int64]bool
	notes          map[int64][]string
	incidents      []api.Incident
	nextIncidentID int64
}

func NewStore() *Store {
	return &Store{
		games:  map[int64]api.GameDetail{},
		locked: map[int64]bool{},
		notes:  map[int64][]string{},
	}
}

// AddGame inserts or replaces a game.
func (s *Store) AddGame(game api.GameDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[game.ID] = game
}

// Lock marks a game as immutable. Annulling or restoring it will always fail.
func (s *Store) Lock(gameID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locked[gameID] = true
}

func (s *Store) Game(gameID int64) (api.GameDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, found := s.games[gameID]
	if !found {
		return api.GameDetail{}, ErrGameNotFound
	}

	return game, nil
}

// Notes returns the moderation notes recorded against a game, oldest first.
func (s *Store) Notes(gameID int64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.notes[gameID])
}

// Annul applies the request to every known, unlocked game. Unknown and locked games are returned as failed.
func (s *Store) Annul(request moderation.AnnulRequest) moderation.AnnulResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	failed := []int64{}

	for _, gameID := range request.Games {
		game, found := s.games[gameID]
		if !found || s.locked[gameID] {
			failed = append(failed, gameID)

			continue
		}

		game.Annulled = request.Annul
		s.games[gameID] = game
		s.notes[gameID] = append(s.notes[gameID], request.ModerationNote)
	}

	return moderation.AnnulResult{Failed: failed}
}

// AddIncident stores a new incident, assigning its id and creation time.
func (s *Store) AddIncident(incident api.Incident) api.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextIncidentID++
	incident.ID = s.nextIncidentID

	if incident.Created.IsZero() {
		incident.Created = time.Now()
	}

	s.incidents = append(s.incidents, incident)

	return incident
}

// Incidents returns a page of incidents matching the query, newest first.
func (s *Store) Incidents(query api.IncidentQuery) []api.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []api.Incident

	for i := len(s.incidents) - 1; i >= 0; i-- {
		incident := s.incidents[i]
		if query.Type != "" && query.Type != moderation.ReportAll && incident.Type != query.Type {
			continue
		}

		matched = append(matched, incident)
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	pageSize = min(pageSize, maxPageSize)

	page := max(query.Page, 1)

	// Compared in pages so huge page numbers cannot overflow the offset.
	if page-1 >= (len(matched)+pageSize-1)/pageSize {
		return []api.Incident{}
	}

	start := (page - 1) * pageSize

	return matched[start:min(start+pageSize, len(matched))]
}
