package lead

import "context"

// Store defines the record store operations the lead service depends on.
// *Repository is the production implementation.
type Store interface {
	List(ctx context.Context, search string, limit, offset int) ([]*Lead, int64, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, l *Lead) error
	Update(ctx context.Context, l *Lead) error
	Delete(ctx context.Context, id string) error
	BulkInsert(ctx context.Context, leads []*Lead) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

// Notifier broadcasts lead-change events to connected clients.
type Notifier interface {
	Publish(event string, payload any)
}
