package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidystash/inventory-system/internal/core/domain"
	"github.com/tidystash/inventory-system/internal/core/ports"
)

type stubItemRepo struct {
	items  map[string]*domain.Item
	nextID int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*domain.Item)}
}

func cloneItem(it *domain.Item) *domain.Item {
	if it == nil {
		return nil
	}
	clone := *it
	clone.Image = append([]byte(nil), it.Image...)
	return &clone
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.nextID++
	copy := cloneItem(item)
	copy.ID = fmt.Sprintf("item-%d", r.nextID)
	r.items[copy.ID] = cloneItem(copy)
	return cloneItem(copy), nil
}

func (r *stubItemRepo) FindByID(_ context.Context, owner, id string) (*domain.Item, error) {
	it, ok := r.items[id]
	if !ok || it.Owner != owner {
		return nil, domain.ErrItemNotFound
	}
	found := cloneItem(it)
	found.Image = nil
	return found, nil
}

func (r *stubItemRepo) FindImage(_ context.Context, owner, id string) ([]byte, error) {
	it, ok := r.items[id]
	if !ok || it.Owner != owner || !it.HasImage {
		return nil, domain.ErrItemNotFound
	}
	return append([]byte(nil), it.Image...), nil
}

func itemMatches(it *domain.Item, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{
		it.Name, it.ChildLabel, string(it.ParentLabel), it.Note, it.Suggestion, it.NamingRule,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *stubItemRepo) List(_ context.Context, filter ports.ListItemsFilter) ([]*domain.Item, int64, error) {
	var matched []*domain.Item
	for _, it := range r.items {
		if it.Owner != filter.Owner {
			continue
		}
		if filter.ParentLabel != "" && string(it.ParentLabel) != filter.ParentLabel {
			continue
		}
		if filter.ChildLabel != "" && it.ChildLabel != filter.ChildLabel {
			continue
		}
		if filter.Query != "" && !itemMatches(it, filter.Query) {
			continue
		}
		found := cloneItem(it)
		found.Image = nil
		matched = append(matched, found)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if filter.Limit > 0 {
		start := (filter.Page - 1) * filter.Limit
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *stubItemRepo) Update(_ context.Context, item *domain.Item, setImage bool) error {
	stored, ok := r.items[item.ID]
	if !ok || stored.Owner != item.Owner {
		return domain.ErrItemNotFound
	}
	updated := cloneItem(item)
	if !setImage {
		updated.Image = stored.Image
		updated.HasImage = stored.HasImage
	}
	r.items[item.ID] = updated
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, owner, id string) error {
	it, ok := r.items[id]
	if !ok || it.Owner != owner {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) DeleteByOwner(_ context.Context, owner string) error {
	for id, it := range r.items {
		if it.Owner == owner {
			delete(r.items, id)
		}
	}
	return nil
}

// stubNormalizer tags the input so tests can tell the stored bytes passed
// through normalization.
type stubNormalizer struct {
	fail bool
}

func (n *stubNormalizer) Normalize(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if n.fail {
		return nil, domain.ErrUnsupportedImage
	}
	return append([]byte("jpeg:"), raw...), nil
}

func newItemService(repo *stubItemRepo) *ItemService {
	return NewItemService(repo, &stubNormalizer{}, zerolog.Nop())
}

func TestItemService_Create_Defaults(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)

	detail, err := svc.Create(context.Background(), "alice", ports.CreateItemInput{
		ParentLabel: "physical",
		ChildLabel:  "apparel",
		Name:        "  blue jacket  ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if detail.Name != "blue jacket" {
		t.Fatalf("name not trimmed: %q", detail.Name)
	}
	if detail.HasImage {
		t.Fatalf("no image was uploaded")
	}
	if detail.DaysHeld != 0 {
		t.Fatalf("item created today must have days_held 0, got %d", detail.DaysHeld)
	}
	if detail.LongHeld {
		t.Fatalf("new item flagged long-held")
	}
}

func TestItemService_Create_Validation(t *testing.T) {
	svc := newItemService(newStubItemRepo())

	if _, err := svc.Create(context.Background(), "alice", ports.CreateItemInput{
		ParentLabel: "physical",
		Name:        "   ",
	}); !errors.Is(err, domain.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	if _, err := svc.Create(context.Background(), "alice", ports.CreateItemInput{
		ParentLabel: "virtual",
		Name:        "thing",
	}); !errors.Is(err, domain.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
}

func TestItemService_Create_WithImage(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)

	detail, err := svc.Create(context.Background(), "alice", ports.CreateItemInput{
		ParentLabel: "physical",
		Name:        "camera",
		RawImage:    []byte("rawbytes"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !detail.HasImage {
		t.Fatalf("expected has_image true")
	}

	img, err := svc.GetImage(context.Background(), "alice", detail.ID)
	if err != nil {
		t.Fatalf("get image failed: %v", err)
	}
	if string(img) != "jpeg:rawbytes" {
		t.Fatalf("stored image did not pass through normalizer: %q", img)
	}
}

func TestItemService_Create_UnsupportedImage(t *testing.T) {
	svc := NewItemService(newStubItemRepo(), &stubNormalizer{fail: true}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "alice", ports.CreateItemInput{
		ParentLabel: "physical",
		Name:        "camera",
		RawImage:    []byte("not an image"),
	}); !errors.Is(err, domain.ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestItemService_Search_CaseInsensitive(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", ports.CreateItemInput{
		ParentLabel: "physical", ChildLabel: "apparel", Name: "Blue Jacket",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "alice", ports.CreateItemInput{
		ParentLabel: "digital", ChildLabel: "work", Name: "Tax Archive", Note: "purple folder",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, q := range []string{"blue", "JACKET", "jack"} {
		result, err := svc.List(ctx, "alice", ports.ListItemsInput{Query: q})
		if err != nil {
			t.Fatalf("list %q failed: %v", q, err)
		}
		if len(result.Items) != 1 || result.Items[0].Name != "Blue Jacket" {
			t.Fatalf("query %q: expected the jacket, got %+v", q, result.Items)
		}
	}

	// Substring match covers notes too.
	result, err := svc.List(ctx, "alice", ports.ListItemsInput{Query: "purple"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Name != "Tax Archive" {
		t.Fatalf("expected note match, got %+v", result.Items)
	}

	result, err = svc.List(ctx, "alice", ports.ListItemsInput{Query: "zebra"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected no matches, got %d", len(result.Items))
	}
}

func TestItemService_List_TenantIsolation(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", ports.CreateItemInput{ParentLabel: "physical", Name: "hers"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bobItem, err := svc.Create(ctx, "bob", ports.CreateItemInput{ParentLabel: "physical", Name: "his"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, err := svc.List(ctx, "alice", ports.ListItemsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Name != "hers" {
		t.Fatalf("alice must only see her items, got %+v", result.Items)
	}

	if _, err := svc.Get(ctx, "alice", bobItem.ID); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("cross-tenant read must 404, got %v", err)
	}
}

func TestItemService_List_Pagination(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, "alice", ports.CreateItemInput{
			ParentLabel: "physical", Name: fmt.Sprintf("item %d", i),
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	result, err := svc.List(ctx, "alice", ports.ListItemsInput{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("expected total 5, got %d", result.Total)
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.TotalPages)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 rows on page 2, got %d", len(result.Items))
	}
}

func TestItemService_Update_Partial(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", ports.CreateItemInput{
		ParentLabel: "physical",
		ChildLabel:  "apparel",
		Name:        "jacket",
		Note:        "winter",
		RawImage:    []byte("photo"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newNote := "spring"
	updated, err := svc.Update(ctx, "alice", created.ID, ports.UpdateItemInput{Note: &newNote})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Note != "spring" {
		t.Fatalf("note not updated: %q", updated.Note)
	}
	if updated.Name != "jacket" || updated.ChildLabel != "apparel" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.HasImage {
		t.Fatalf("update without a new image must keep the stored one")
	}
	if _, err := svc.GetImage(ctx, "alice", created.ID); err != nil {
		t.Fatalf("stored image lost after partial update: %v", err)
	}
}

func TestItemService_Update_ReplaceImage(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", ports.CreateItemInput{
		ParentLabel: "physical", Name: "camera", RawImage: []byte("old"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(ctx, "alice", created.ID, ports.UpdateItemInput{RawImage: []byte("new")}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	img, err := svc.GetImage(ctx, "alice", created.ID)
	if err != nil {
		t.Fatalf("get image failed: %v", err)
	}
	if string(img) != "jpeg:new" {
		t.Fatalf("image not replaced: %q", img)
	}
}

func TestItemService_Update_Validation(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", ports.CreateItemInput{ParentLabel: "physical", Name: "thing"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	blank := "   "
	if _, err := svc.Update(ctx, "alice", created.ID, ports.UpdateItemInput{Name: &blank}); !errors.Is(err, domain.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	bad := "virtual"
	if _, err := svc.Update(ctx, "alice", created.ID, ports.UpdateItemInput{ParentLabel: &bad}); !errors.Is(err, domain.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
}

func TestItemService_Delete(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", ports.CreateItemInput{ParentLabel: "physical", Name: "thing"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, "alice", created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, "alice", created.ID); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, "alice", created.ID); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("deleting twice must report not found, got %v", err)
	}
}

func TestItemService_DaysHeld(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	past := time.Now().UTC().AddDate(0, 0, -200)
	detail, err := svc.Create(ctx, "alice", ports.CreateItemInput{
		ParentLabel: "physical", Name: "heirloom", CreatedDate: &past,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if detail.DaysHeld < 199 || detail.DaysHeld > 201 {
		t.Fatalf("expected roughly 200 days held, got %d", detail.DaysHeld)
	}
	if !detail.LongHeld {
		t.Fatalf("200-day item must be flagged long-held")
	}
}

func TestItemService_ExportCSV(t *testing.T) {
	repo := newStubItemRepo()
	svc := newItemService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", ports.CreateItemInput{
		ParentLabel: "physical", ChildLabel: "apparel", Name: "jacket", Note: "has, comma",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "bob", ports.CreateItemInput{ParentLabel: "digital", Name: "other tenant"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, "alice", &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("export must start with a UTF-8 BOM")
	}

	body := string(out[3:])
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,parent_label,child_label,name,note") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"has, comma"`) {
		t.Fatalf("comma-bearing field must be quoted: %q", lines[1])
	}
	if strings.Contains(body, "other tenant") {
		t.Fatalf("export leaked another tenant's rows")
	}
}
