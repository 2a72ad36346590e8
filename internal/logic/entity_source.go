package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openmohaa/forecast-api/internal/models"
)

const teamsDDL = `
	CREATE TABLE IF NOT EXISTS teams (
		id         BIGINT PRIMARY KEY,
		name       TEXT NOT NULL,
		short_name TEXT,
		aliases    TEXT[]
	)
`

// EnsureRegistrySchema creates the teams table if it does not exist
func EnsureRegistrySchema(ctx context.Context, pg PgPool) error {
	if _, err := pg.Exec(ctx, teamsDDL); err != nil {
		return fmt.Errorf("create teams: %w", err)
	}
	return nil
}

type pgEntitySource struct {
	pg PgPool
}

// NewPgEntitySource reads the team registry from Postgres:
//
//	teams(id BIGINT PRIMARY KEY, name TEXT, short_name TEXT, aliases TEXT[])
func NewPgEntitySource(pg PgPool) EntitySource {
	return &pgEntitySource{pg: pg}
}

func (s *pgEntitySource) ListEntities(ctx context.Context) ([]models.CanonicalEntity, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id::text, name, COALESCE(short_name, ''), COALESCE(aliases, '{}')
		FROM teams
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var entities []models.CanonicalEntity
	for rows.Next() {
		var e models.CanonicalEntity
		if err := rows.Scan(&e.ID, &e.Name, &e.ShortName, &e.AliasesKnown); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

func (s *pgEntitySource) FindEntity(ctx context.Context, name string) (*models.CanonicalEntity, error) {
	var e models.CanonicalEntity
	err := s.pg.QueryRow(ctx, `
		SELECT id::text, name, COALESCE(short_name, ''), COALESCE(aliases, '{}')
		FROM teams
		WHERE lower(name) = lower($1)
		LIMIT 1
	`, name).Scan(&e.ID, &e.Name, &e.ShortName, &e.AliasesKnown)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query team %q: %w", name, err)
	}
	return &e, nil
}

// chainedEntitySource consults each source in order. A listing comes from the
// first source that returns entities; a lookup from the first that finds one.
type chainedEntitySource struct {
	sources []EntitySource
}

// NewChainedEntitySource combines registries, e.g. Postgres first and the
// statistics provider as a fallback. Nil sources are skipped.
func NewChainedEntitySource(sources ...EntitySource) EntitySource {
	c := &chainedEntitySource{}
	for _, s := range sources {
		if s != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

func (c *chainedEntitySource) ListEntities(ctx context.Context) ([]models.CanonicalEntity, error) {
	var errs []error
	for _, s := range c.sources {
		entities, err := s.ListEntities(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(entities) > 0 {
			return entities, nil
		}
	}
	return nil, errors.Join(errs...)
}

func (c *chainedEntitySource) FindEntity(ctx context.Context, name string) (*models.CanonicalEntity, error) {
	var errs []error
	for _, s := range c.sources {
		e, err := s.FindEntity(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if e != nil {
			return e, nil
		}
	}
	return nil, errors.Join(errs...)
}
