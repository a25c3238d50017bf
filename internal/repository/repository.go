package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repository aggregates every repository behind one handle.
type Repository struct {
	User       UserRepository
	Token      TokenRepository
	Coordinate CoordinateRepository
	Plane      PlaneRepository
	News       NewsRepository
	Terms      TermsRepository

	db *gorm.DB
}

// NewRepository creates the aggregate on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Token:      NewTokenRepo(db),
		Coordinate: NewCoordinateRepo(db),
		Plane:      NewPlaneRepo(db),
		News:       NewNewsRepo(db),
		Terms:      NewTermsRepo(db),
		db:         db,
	}
}

// BeginTx starts a transaction. A Repository assembled without a database
// (unit tests) returns a nil transaction, which WithTx ignores.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns a Repository whose repositories run on tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
