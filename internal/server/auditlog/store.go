// Package auditlog is the append-only store of recurring-generation runs.
// Entries are immutable once appended; administrators page through them
// newest first.
package auditlog

import (
	"context"

	"github.com/dmitrijs2005/billgate/internal/server/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// QueryResult is one page of the (possibly filtered) log. Total and Pages
// reflect the filtered set, not the whole store.
type QueryResult struct {
	Entries []*models.GenerationLogEntry
	Page    int
	Limit   int
	Total   int
	Pages   int
}

type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Append persists a run entry.
func (s *Store) Append(ctx context.Context, entry *models.GenerationLogEntry) error {
	return s.repo.Insert(ctx, entry)
}

// Query returns one page of entries, newest first, optionally restricted to
// one run mode. Page and limit are clamped to sane values.
func (s *Store) Query(ctx context.Context, page, limit int, typeFilter models.RunMode) (*QueryResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	total, err := s.repo.Count(ctx, typeFilter)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Select(ctx, (page-1)*limit, limit, typeFilter)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Entries: entries,
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   (total + limit - 1) / limit,
	}, nil
}
