package credential

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, cred *Credential) (int, error)
	Update(ctx context.Context, cred *Credential) error
	Get(ctx context.Context, userID, credentialID int) (*Credential, error)
	GetByManufacturer(ctx context.Context, userID, manufacturerID int) (*Credential, error)
	List(ctx context.Context, userID int) ([]Credential, error)
	Delete(ctx context.Context, userID, credentialID int) error
	SetStatus(ctx context.Context, credentialID int, status Status, validatedAt time.Time) error
}
