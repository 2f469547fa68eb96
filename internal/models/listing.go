package models

// ListMeta is the pagination metadata returned with every listing.
type ListMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}
