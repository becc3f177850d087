package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes.

type itemLinks struct {
	Self  string `json:"self"`
	Image string `json:"image,omitempty"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	ParentLabel string    `json:"parent_label"`
	ChildLabel  string    `json:"child_label"`
	Name        string    `json:"name"`
	Note        string    `json:"note,omitempty"`
	Suggestion  string    `json:"suggestion,omitempty"`
	NamingRule  string    `json:"naming_rule,omitempty"`
	HasImage    bool      `json:"has_image"`
	CreatedDate string    `json:"created_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DaysHeld    int       `json:"days_held"`
	LongHeld    bool      `json:"long_held"`
	Links       itemLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listItemsResponse struct {
	Data       []itemResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	ParentLabel string `json:"parent_label"`
	ChildLabel  string `json:"child_label"`
}

type listCategoriesResponse struct {
	Data []categoryResponse `json:"data"`
}

type categoriesRemovedResponse struct {
	Removed int64 `json:"removed"`
}

type accountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type listAccountsResponse struct {
	Data []accountResponse `json:"data"`
}
