package sheets

import (
	"context"
	"fmt"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// SheetTemplateRepository stores invoice templates in the Templates sheet
// and their line items in TemplateLineItems, keyed by the template ID.
type SheetTemplateRepository struct {
	store *Store
	cache *Cache[[]domain.Template]
}

func newSheetTemplateRepository(store *Store) *SheetTemplateRepository {
	return &SheetTemplateRepository{
		store: store,
		cache: NewCache[[]domain.Template](ttlTemplates, cacheMaxEntries),
	}
}

var _ portsrepo.TemplateRepositoryFacade = (*SheetTemplateRepository)(nil)

func (r *SheetTemplateRepository) FindTemplates(ctx context.Context) ([]domain.Template, error) {
	if cached, ok := r.cache.Get(cacheKeyAll); ok {
		return cached, nil
	}

	rows, err := r.store.readRows(ctx, tableTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}
	itemRows, err := r.store.readRows(ctx, tableTemplateItems)
	if err != nil {
		return nil, fmt.Errorf("failed to read template line items: %w", err)
	}

	itemsByTemplate := make(map[string][]domain.LineItem)
	for _, row := range itemRows {
		templateID, item := rowToLineItem(row)
		itemsByTemplate[templateID] = append(itemsByTemplate[templateID], item)
	}

	templates := make([]domain.Template, 0, len(rows))
	for _, row := range rows {
		t := rowToTemplate(row)
		t.LineItems = itemsByTemplate[t.ID]
		templates = append(templates, t)
	}
	r.cache.Set(cacheKeyAll, templates)
	return templates, nil
}

func (r *SheetTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.Template, error) {
	templates, err := r.FindTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == templateID {
			t := templates[i]
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *SheetTemplateRepository) SaveTemplate(ctx context.Context, template domain.Template) error {
	if err := r.store.appendRow(ctx, tableTemplates, templateToRow(template)); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	if err := r.appendLineItems(ctx, template); err != nil {
		return err
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetTemplateRepository) UpdateTemplate(ctx context.Context, template domain.Template) error {
	rows, err := r.store.readRows(ctx, tableTemplates)
	if err != nil {
		return fmt.Errorf("failed to read templates for update: %w", err)
	}
	idx := findRowIndex(rows, template.ID)
	if idx < 0 {
		return fmt.Errorf("template %s: %w", template.ID, apperrors.ErrNotFound)
	}
	if err := r.store.updateRow(ctx, tableTemplates, idx, templateToRow(template)); err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if _, err := r.deleteLineItems(ctx, template.ID); err != nil {
		return err
	}
	if err := r.appendLineItems(ctx, template); err != nil {
		return err
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetTemplateRepository) DeleteTemplate(ctx context.Context, templateID string) error {
	if _, err := r.deleteLineItems(ctx, templateID); err != nil {
		return err
	}

	rows, err := r.store.readRows(ctx, tableTemplates)
	if err != nil {
		return fmt.Errorf("failed to read templates for delete: %w", err)
	}
	idx := findRowIndex(rows, templateID)
	if idx < 0 {
		return fmt.Errorf("template %s: %w", templateID, apperrors.ErrNotFound)
	}
	if err := r.store.deleteRow(ctx, tableTemplates, idx); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	r.InvalidateCache()
	return nil
}

// InvalidateCache drops the cached template listing.
func (r *SheetTemplateRepository) InvalidateCache() {
	r.cache.Delete(cacheKeyAll)
}

func (r *SheetTemplateRepository) appendLineItems(ctx context.Context, template domain.Template) error {
	if len(template.LineItems) == 0 {
		return nil
	}
	itemRows := make([][]string, 0, len(template.LineItems))
	for _, li := range template.LineItems {
		itemRows = append(itemRows, lineItemToRow(template.ID, li))
	}
	if err := r.store.appendRows(ctx, tableTemplateItems, itemRows); err != nil {
		return fmt.Errorf("failed to save template line items: %w", err)
	}
	return nil
}

func (r *SheetTemplateRepository) deleteLineItems(ctx context.Context, templateID string) (int, error) {
	n, err := r.store.deleteMatchingRows(ctx, tableTemplateItems, func(row []string) bool {
		parentID, _ := rowToLineItem(row)
		return parentID == templateID
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete template line items: %w", err)
	}
	return n, nil
}
