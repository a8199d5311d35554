// Package memory is an in-process storage.Provider used for tests, demos and `--config memory`.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/levelup/internal/clock"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

// ConfigPath is the pseudo path reported by the in-memory store
const ConfigPath = "memory"

type Store struct {
	mu          sync.RWMutex
	clock       clock.Clock
	profiles    map[string]models.UserProfile
	plans       map[string][]models.ActiveHabit // userID -> plan
	completions map[string][]models.CompletionRecord
	templates   map[string]models.HabitTemplate
	order       []string // template insertion order
}

func New() *Store {
	return NewWithClock(clock.System)
}

// NewWithClock stamps activations with c instead of the wall clock.
func NewWithClock(c clock.Clock) *Store {
	return &Store{
		clock:       c,
		profiles:    make(map[string]models.UserProfile),
		plans:       make(map[string][]models.ActiveHabit),
		completions: make(map[string][]models.CompletionRecord),
		templates:   make(map[string]models.HabitTemplate),
	}
}

func (s *Store) Init() error           { return nil }
func (s *Store) Load() error           { return nil }
func (s *Store) Close() error          { return nil }
func (s *Store) GetConfigPath() string { return ConfigPath }

// Plans

func (s *Store) GetActiveHabits(_ context.Context, userID string) ([]models.ActiveHabit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ActiveHabit(nil), s.plans[userID]...), nil
}

func (s *Store) ActivateHabits(_ context.Context, userID string, templates []models.HabitTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make(map[string]bool, len(s.plans[userID]))
	for _, h := range s.plans[userID] {
		active[h.HabitID] = true
	}
	now := s.clock.Now()
	for _, t := range templates {
		if active[t.ID] {
			continue
		}
		active[t.ID] = true
		s.plans[userID] = append(s.plans[userID], models.NewActiveHabit(uuid.New().String(), userID, t, now))
	}
	return nil
}

func (s *Store) DeactivateHabit(_ context.Context, activeHabitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, plan := range s.plans {
		for i, h := range plan {
			if h.ID == activeHabitID {
				s.plans[userID] = append(plan[:i:i], plan[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// Completions

func (s *Store) AddCompletion(_ context.Context, rec models.CompletionRecord) error {
	if rec.UserID == "" || rec.HabitID == "" {
		return apperrors.Invalidf("completion requires user and habit ids")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions[rec.UserID] = append(s.completions[rec.UserID], rec)
	return nil
}

func (s *Store) GetRecentCompletions(_ context.Context, userID string, since time.Time) ([]models.CompletionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CompletionRecord
	for _, c := range s.completions[userID] {
		if !c.CompletedAt.Before(since) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.Before(out[j].CompletedAt)
	})
	return out, nil
}

// Profiles

func (s *Store) CreateProfile(_ context.Context, p models.UserProfile) error {
	if p.UserID == "" {
		return apperrors.Invalidf("profile requires a user id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[p.UserID]; exists {
		return apperrors.Invalidf("profile %q already exists", p.UserID)
	}
	s.profiles[p.UserID] = cloneProfile(p)
	return nil
}

func (s *Store) GetProfile(_ context.Context, userID string) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return models.UserProfile{}, apperrors.NotFoundf("profile %q", userID)
	}
	return cloneProfile(p), nil
}

func (s *Store) UpdateProfile(_ context.Context, userID string, update models.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return apperrors.NotFoundf("profile %q", userID)
	}
	update.Apply(&p)
	s.profiles[userID] = p
	return nil
}

// Templates

func (s *Store) SeedTemplates(_ context.Context, templates []models.HabitTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range templates {
		if _, exists := s.templates[t.ID]; exists {
			continue
		}
		s.templates[t.ID] = t
		s.order = append(s.order, t.ID)
	}
	return nil
}

func (s *Store) GetTemplates(_ context.Context) ([]models.HabitTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HabitTemplate, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.templates[id])
	}
	return out, nil
}

func cloneProfile(p models.UserProfile) models.UserProfile {
	p.SelectedGoals = append([]string(nil), p.SelectedGoals...)
	if p.SuggestionDismissedAt != nil {
		t := *p.SuggestionDismissedAt
		p.SuggestionDismissedAt = &t
	}
	return p
}
