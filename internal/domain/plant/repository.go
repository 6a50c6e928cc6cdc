package plant

import "context"

type Repository interface {
	// Upsert inserts the plant or, when the (user, manufacturer, external id)
	// key already exists, updates its metadata. Returns the row ID.
	Upsert(ctx context.Context, p *Plant) (int, error)
	List(ctx context.Context, userID int) ([]Plant, error)
}
