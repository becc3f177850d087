package handler

import (
	"github.com/tidystash/inventory-system/internal/core/domain"
	"github.com/tidystash/inventory-system/internal/core/ports"
)

// --- Service result → HTTP response ---

func toItemResponse(d *ports.ItemDetail) itemResponse {
	resp := itemResponse{
		ID:          d.ID,
		ParentLabel: d.ParentLabel,
		ChildLabel:  d.ChildLabel,
		Name:        d.Name,
		Note:        d.Note,
		Suggestion:  d.Suggestion,
		NamingRule:  d.NamingRule,
		HasImage:    d.HasImage,
		CreatedDate: d.CreatedDate.Format("2006-01-02"),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
		DaysHeld:    d.DaysHeld,
		LongHeld:    d.LongHeld,
		Links:       itemLinks{Self: "/v1/items/" + d.ID},
	}
	if d.HasImage {
		resp.Links.Image = "/v1/items/" + d.ID + "/image"
	}
	return resp
}

func toListItemsResponse(r *ports.ListItemsResult) listItemsResponse {
	items := make([]itemResponse, len(r.Items))
	for i := range r.Items {
		items[i] = toItemResponse(&r.Items[i])
	}
	return listItemsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		ParentLabel: string(c.ParentLabel),
		ChildLabel:  c.ChildLabel,
	}
}

func toListCategoriesResponse(categories []*domain.Category) listCategoriesResponse {
	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	return listCategoriesResponse{Data: out}
}

func toListAccountsResponse(accounts []*domain.Account) listAccountsResponse {
	out := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = accountResponse{ID: a.ID, Username: a.Username, CreatedAt: a.CreatedAt.UTC()}
	}
	return listAccountsResponse{Data: out}
}
