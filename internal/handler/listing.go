package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssis-api/internal/querybuilder"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

// listingParams reads the listing query string. page_size/per_page,
// sort_order/order and search_term/q are accepted as aliases.
func listingParams(c *gin.Context, defaultPageSize int) (querybuilder.Params, error) {
	params := querybuilder.Params{
		SearchBy:   strings.TrimSpace(c.Query("search_by")),
		SearchTerm: firstQuery(c, "search_term", "q"),
		SortBy:     strings.TrimSpace(c.Query("sort_by")),
		SortOrder:  firstQuery(c, "sort_order", "order"),
		Page:       1,
		PageSize:   defaultPageSize,
	}

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, appErrors.Clone(appErrors.ErrInvalidPagination, "page must be an integer")
		}
		params.Page = page
	}
	if raw := strings.TrimSpace(firstQuery(c, "page_size", "per_page")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return params, appErrors.Clone(appErrors.ErrInvalidPagination, "page_size must be an integer")
		}
		params.PageSize = size
	}
	return params, nil
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v, ok := c.GetQuery(key); ok {
			return v
		}
	}
	return ""
}
