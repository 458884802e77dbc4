package attendance

import (
	"context"

	"storeops/internal/domain/org"
)

type StoreAPI interface {
	Create(ctx context.Context, record Record) (string, error)
	Get(ctx context.Context, recordID string) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, recordID string) error
}

// Directory is the slice of the org repository the attendance service needs.
type Directory interface {
	GetStore(ctx context.Context, storeID string) (org.Store, error)
	GetEmployee(ctx context.Context, employeeID string) (org.Employee, error)
}
