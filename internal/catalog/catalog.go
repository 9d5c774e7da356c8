// Package catalog resolves activity types: the categories official reports are
// filed under. Each type carries a sigla, the short alphabetic prefix stamped
// on issued correlative codes.
package catalog

import "context"

// ActivityType describes one category of official activity.
type ActivityType struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Sigla string `json:"siglaInforme"`
}

// HasSigla reports whether the type is configured for correlative issuance.
func (a *ActivityType) HasSigla() bool {
	return a != nil && a.Sigla != ""
}

// Store looks up activity types.
type Store interface {
	// GetByID returns the activity type, or sentinel.ErrNotFound (wrapped)
	// when no such type exists.
	GetByID(ctx context.Context, id int64) (*ActivityType, error)

	// List returns all activity types ordered by id.
	List(ctx context.Context) ([]*ActivityType, error)
}
