package ports

import (
	"context"
	"io"
	"time"
)

// CreateItemInput carries all data needed to record a new item.
type CreateItemInput struct {
	ParentLabel string
	ChildLabel  string
	Name        string
	Note        string
	Suggestion  string
	NamingRule  string
	RawImage    []byte     // original upload, normalized before persisting; nil = no photo
	CreatedDate *time.Time // nil = today
}

// UpdateItemInput carries a partial edit. Nil fields are left unchanged.
// A nil RawImage keeps the stored image; it is never cleared implicitly.
type UpdateItemInput struct {
	ParentLabel *string
	ChildLabel  *string
	Name        *string
	Note        *string
	Suggestion  *string
	NamingRule  *string
	CreatedDate *time.Time
	RawImage    []byte
}

// ListItemsInput carries all parameters for the list/search endpoint.
type ListItemsInput struct {
	Query       string
	ParentLabel string
	ChildLabel  string
	Page        int
	Limit       int
}

// ItemDetail is the full item view returned by the service, including the
// derived days-held display values.
type ItemDetail struct {
	ID          string
	ParentLabel string
	ChildLabel  string
	Name        string
	Note        string
	Suggestion  string
	NamingRule  string
	HasImage    bool
	CreatedDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DaysHeld    int
	LongHeld    bool
}

// ListItemsResult is returned by List.
type ListItemsResult struct {
	Items      []ItemDetail
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ItemService defines use-case operations over one account's item store.
type ItemService interface {
	Create(ctx context.Context, owner string, input CreateItemInput) (*ItemDetail, error)
	Get(ctx context.Context, owner, id string) (*ItemDetail, error)
	GetImage(ctx context.Context, owner, id string) ([]byte, error)
	List(ctx context.Context, owner string, input ListItemsInput) (*ListItemsResult, error)
	Update(ctx context.Context, owner, id string, input UpdateItemInput) (*ItemDetail, error)
	Delete(ctx context.Context, owner, id string) error
	// ExportCSV writes the backup export (all fields except the image binary)
	// to w as UTF-8 CSV prefixed with a byte-order mark.
	ExportCSV(ctx context.Context, owner string, w io.Writer) error
}
