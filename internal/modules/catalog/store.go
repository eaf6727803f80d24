// README: Catalog store backed by PostgreSQL.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("catalog: not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// GetCity matches a cleaned query against city names, exact first, then prefix.
func (s *Store) GetCity(ctx context.Context, query string) (City, error) {
	var c City
	err := s.db.QueryRow(ctx,
		`SELECT name, country FROM cities
		 WHERE LOWER(name) = LOWER($1)
		 LIMIT 1`, query).Scan(&c.Name, &c.Country)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return City{}, fmt.Errorf("catalog: get city: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT name, country FROM cities
		 WHERE LOWER(name) LIKE LOWER($1) || '%'
		 ORDER BY LENGTH(name)
		 LIMIT 1`, query).Scan(&c.Name, &c.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return City{}, ErrNotFound
	}
	if err != nil {
		return City{}, fmt.Errorf("catalog: get city: %w", err)
	}
	return c, nil
}

// FindCityInText returns the longest catalog city name mentioned anywhere in
// the given text. Used as a last-resort scan over the whole conversation.
func (s *Store) FindCityInText(ctx context.Context, text string) (City, error) {
	var c City
	err := s.db.QueryRow(ctx,
		`SELECT name, country FROM cities
		 WHERE POSITION(LOWER(name) IN LOWER($1)) > 0
		 ORDER BY LENGTH(name) DESC
		 LIMIT 1`, text).Scan(&c.Name, &c.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return City{}, ErrNotFound
	}
	if err != nil {
		return City{}, fmt.Errorf("catalog: find city in text: %w", err)
	}
	return c, nil
}

// ListActivities returns up to limit activities for the city, cheapest-tier first.
func (s *Store) ListActivities(ctx context.Context, cityName string, limit int) ([]Activity, error) {
	rows, err := s.db.Query(ctx,
		`SELECT a.name, a.category, a.price_range, a.duration_hours
		 FROM activities a
		 JOIN cities c ON c.id = a.city_id
		 WHERE LOWER(c.name) = LOWER($1)
		 ORDER BY LENGTH(a.price_range), a.name
		 LIMIT $2`, cityName, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: list activities: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.Name, &a.Category, &a.PriceRange, &a.DurationHours); err != nil {
			return nil, fmt.Errorf("catalog: scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
