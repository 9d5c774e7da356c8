package catalog

import "context"

// Seeder is the write surface needed to bootstrap a catalog.
type Seeder interface {
	Put(ctx context.Context, at ActivityType) error
}

// DefaultTypes mirrors the activity types the dashboard ships with.
func DefaultTypes() []ActivityType {
	return []ActivityType{
		{ID: 1, Name: "Allanamiento", Sigla: "ALL"},
		{ID: 2, Name: "Vigilancia", Sigla: "VIG"},
		{ID: 3, Name: "Informe", Sigla: "INF"},
		{ID: 4, Name: "Operativo", Sigla: "OPE"},
	}
}

// Seed loads the given activity types into a store. Existing entries with the
// same id are overwritten, so seeding is idempotent.
func Seed(ctx context.Context, store Seeder, types []ActivityType) error {
	for _, at := range types {
		if err := store.Put(ctx, at); err != nil {
			return err
		}
	}
	return nil
}
