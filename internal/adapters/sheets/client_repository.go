package sheets

import (
	"context"
	"fmt"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// SheetClientRepository stores clients one row per client in the Clients
// sheet.
type SheetClientRepository struct {
	store *Store
	cache *Cache[[]domain.Client]
}

func newSheetClientRepository(store *Store) *SheetClientRepository {
	return &SheetClientRepository{
		store: store,
		cache: NewCache[[]domain.Client](ttlDefault, cacheMaxEntries),
	}
}

var _ portsrepo.ClientRepositoryFacade = (*SheetClientRepository)(nil)

func (r *SheetClientRepository) FindClients(ctx context.Context) ([]domain.Client, error) {
	if cached, ok := r.cache.Get(cacheKeyAll); ok {
		return cached, nil
	}
	rows, err := r.store.readRows(ctx, tableClients)
	if err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}
	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, rowToClient(row))
	}
	r.cache.Set(cacheKeyAll, clients)
	return clients, nil
}

func (r *SheetClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	clients, err := r.FindClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == clientID {
			client := clients[i]
			return &client, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *SheetClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	if err := r.store.appendRow(ctx, tableClients, clientToRow(client)); err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	rows, err := r.store.readRows(ctx, tableClients)
	if err != nil {
		return fmt.Errorf("failed to read clients for update: %w", err)
	}
	idx := findRowIndex(rows, client.ID)
	if idx < 0 {
		return fmt.Errorf("client %s: %w", client.ID, apperrors.ErrNotFound)
	}
	if err := r.store.updateRow(ctx, tableClients, idx, clientToRow(client)); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	rows, err := r.store.readRows(ctx, tableClients)
	if err != nil {
		return fmt.Errorf("failed to read clients for delete: %w", err)
	}
	idx := findRowIndex(rows, clientID)
	if idx < 0 {
		return fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
	}
	if err := r.store.deleteRow(ctx, tableClients, idx); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	r.InvalidateCache()
	return nil
}

// InvalidateCache drops the cached client listing.
func (r *SheetClientRepository) InvalidateCache() {
	r.cache.Delete(cacheKeyAll)
}
