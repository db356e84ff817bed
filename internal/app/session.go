// Package service holds the editing session: the loaded save, the current
// snapshot and the transforms that produce new snapshots.
package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/rostra/internal/adapters/repository"
	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/salary"
	"github.com/okian/rostra/pkg/logger"
	"github.com/okian/rostra/pkg/metrics"
)

// Session owns the tables of one save. Transforms never change the session;
// their output becomes current only through Commit.
type Session struct {
	mu sync.RWMutex

	id      string
	initial model.Tables
	current model.Tables
	schemas model.Schemas

	store  repository.Store
	inputs Inputs

	contractYears     int
	strictLongSnapper bool
	dryRun            bool

	logger logger.Logger
}

// New creates a session over loaded tables. The tables are copied.
func New(tables model.Tables, schemas model.Schemas, opts ...Option) *Session {
	s := &Session{
		id:            uuid.NewString(),
		initial:       tables.Clone(),
		current:       tables.Clone(),
		schemas:       schemas.Clone(),
		contractYears: salary.DefaultContractYears,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.With(logger.String("session", s.id))
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Schemas returns a copy of the table layouts the save was loaded with.
func (s *Session) Schemas() model.Schemas { return s.schemas.Clone() }

// Current returns a copy of the current snapshot.
func (s *Session) Current() model.Tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Commit replaces the current snapshot.
func (s *Session) Commit(ctx context.Context, t model.Tables) {
	s.mu.Lock()
	s.current = t.Clone()
	s.mu.Unlock()

	recordTables(t)
	metrics.RecordCommit()
	s.logger.Debug(ctx, "snapshot committed", logger.Int("players", len(t.Players)))
}

// Reset restores the snapshot the session was created with.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	s.current = s.initial.Clone()
	s.mu.Unlock()

	metrics.RecordReset()
	s.logger.Info(ctx, "session reset")
}

func recordTables(t model.Tables) {
	metrics.UpdateTableRows(string(model.TablePlayers), len(t.Players))
	metrics.UpdateTableRows(string(model.TableTeams), len(t.Teams))
	metrics.UpdateTableRows(string(model.TableDepth), len(t.Depth))
	metrics.UpdateTableRows(string(model.TableInjuries), len(t.Injuries))
}
