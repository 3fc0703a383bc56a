package repositories

import (
	"context"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// ClientReader defines read operations for client data.
type ClientReader interface {
	// FindClients retrieves every client. Callers filter in memory.
	FindClients(ctx context.Context) ([]domain.Client, error)

	// FindClientByID retrieves a specific client, or apperrors.ErrNotFound.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
}

// ClientWriter defines write operations for client data.
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient overwrites an existing client's row.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client's row.
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientRepositoryFacade combines all client repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
