package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidystash/inventory-system/internal/core/domain"
	"github.com/tidystash/inventory-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// dateLayout is the ISO 8601 date format used for created_date throughout.
const dateLayout = "2006-01-02"

// ItemService implements the CRUD + search surface over one account's item
// store, composing the image normalizer on writes that carry a photo.
type ItemService struct {
	repo       ports.ItemRepository
	normalizer ports.ImageNormalizer
	logger     zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, normalizer ports.ImageNormalizer, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, normalizer: normalizer, logger: logger}
}

// Create records a new item. The raw image, when present, is normalized before
// persisting; created_date defaults to today.
func (s *ItemService) Create(ctx context.Context, owner string, input ports.CreateItemInput) (*ports.ItemDetail, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	parent := domain.ParentLabel(input.ParentLabel)
	if !parent.Valid() {
		return nil, domain.ErrInvalidParent
	}

	image, err := s.normalizer.Normalize(input.RawImage)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	createdDate := truncateToDate(now)
	if input.CreatedDate != nil {
		createdDate = truncateToDate(input.CreatedDate.UTC())
	}

	item := &domain.Item{
		Owner:       owner,
		ParentLabel: parent,
		ChildLabel:  strings.TrimSpace(input.ChildLabel),
		Name:        name,
		Note:        input.Note,
		Suggestion:  input.Suggestion,
		NamingRule:  input.NamingRule,
		Image:       image,
		HasImage:    len(image) > 0,
		CreatedDate: createdDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", owner).Msg("failed to create item")
		return nil, err
	}

	s.logger.Info().Str("owner", owner).Str("item_id", created.ID).Str("name", created.Name).Msg("item created")
	return toDetail(created, now), nil
}

// Get returns one item without its image bytes.
func (s *ItemService) Get(ctx context.Context, owner, id string) (*ports.ItemDetail, error) {
	item, err := s.repo.FindByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return toDetail(item, time.Now().UTC()), nil
}

// GetImage returns the normalized JPEG bytes, or ErrItemNotFound when the item
// is absent or carries no photo.
func (s *ItemService) GetImage(ctx context.Context, owner, id string) ([]byte, error) {
	return s.repo.FindImage(ctx, owner, id)
}

// List returns a page of the owner's items, newest-first. A non-empty Query
// matches as a case-insensitive substring across all textual fields.
func (s *ItemService) List(ctx context.Context, owner string, input ports.ListItemsInput) (*ports.ListItemsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if input.ParentLabel != "" && !domain.ParentLabel(input.ParentLabel).Valid() {
		return nil, domain.ErrInvalidParent
	}

	items, total, err := s.repo.List(ctx, ports.ListItemsFilter{
		Owner:       owner,
		Query:       input.Query,
		ParentLabel: input.ParentLabel,
		ChildLabel:  input.ChildLabel,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	details := make([]ports.ItemDetail, len(items))
	for i, item := range items {
		details[i] = *toDetail(item, now)
	}

	return &ports.ListItemsResult{
		Items:      details,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Update applies a partial edit. Only supplied fields change; a request with
// no new image keeps the stored one.
func (s *ItemService) Update(ctx context.Context, owner, id string, input ports.UpdateItemInput) (*ports.ItemDetail, error) {
	item, err := s.repo.FindByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrEmptyName
		}
		item.Name = name
	}
	if input.ParentLabel != nil {
		parent := domain.ParentLabel(*input.ParentLabel)
		if !parent.Valid() {
			return nil, domain.ErrInvalidParent
		}
		item.ParentLabel = parent
	}
	if input.ChildLabel != nil {
		item.ChildLabel = strings.TrimSpace(*input.ChildLabel)
	}
	if input.Note != nil {
		item.Note = *input.Note
	}
	if input.Suggestion != nil {
		item.Suggestion = *input.Suggestion
	}
	if input.NamingRule != nil {
		item.NamingRule = *input.NamingRule
	}
	if input.CreatedDate != nil {
		item.CreatedDate = truncateToDate(input.CreatedDate.UTC())
	}

	setImage := false
	if input.RawImage != nil {
		image, err := s.normalizer.Normalize(input.RawImage)
		if err != nil {
			return nil, err
		}
		item.Image = image
		item.HasImage = len(image) > 0
		setImage = true
	}

	now := time.Now().UTC()
	item.UpdatedAt = now
	if err := s.repo.Update(ctx, item, setImage); err != nil {
		s.logger.Error().Err(err).Str("owner", owner).Str("item_id", id).Msg("failed to update item")
		return nil, err
	}

	return toDetail(item, now), nil
}

// Delete permanently removes one item. Irreversible.
func (s *ItemService) Delete(ctx context.Context, owner, id string) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return err
	}
	s.logger.Info().Str("owner", owner).Str("item_id", id).Msg("item deleted")
	return nil
}

// ExportCSV writes every item's non-binary fields to w as UTF-8 CSV with a
// leading byte-order mark so spreadsheet applications detect the encoding.
func (s *ItemService) ExportCSV(ctx context.Context, owner string, w io.Writer) error {
	items, _, err := s.repo.List(ctx, ports.ListItemsFilter{Owner: owner})
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "parent_label", "child_label", "name", "note",
		"suggestion", "naming_rule", "created_date", "days_held",
	}); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, item := range items {
		record := []string{
			item.ID,
			string(item.ParentLabel),
			item.ChildLabel,
			item.Name,
			item.Note,
			item.Suggestion,
			item.NamingRule,
			item.CreatedDate.Format(dateLayout),
			strconv.Itoa(item.DaysHeld(now)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func toDetail(item *domain.Item, ref time.Time) *ports.ItemDetail {
	return &ports.ItemDetail{
		ID:          item.ID,
		ParentLabel: string(item.ParentLabel),
		ChildLabel:  item.ChildLabel,
		Name:        item.Name,
		Note:        item.Note,
		Suggestion:  item.Suggestion,
		NamingRule:  item.NamingRule,
		HasImage:    item.HasImage,
		CreatedDate: item.CreatedDate,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		DaysHeld:    item.DaysHeld(ref),
		LongHeld:    item.LongHeld(ref),
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
