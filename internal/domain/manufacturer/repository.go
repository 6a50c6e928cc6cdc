package manufacturer

import "context"

// Repository is read-only: manufacturers are seeded by migrations.
type Repository interface {
	List(ctx context.Context) ([]Manufacturer, error)
	Get(ctx context.Context, id int) (Manufacturer, error)
}
