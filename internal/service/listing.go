package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
	"github.com/noah-isme/ssis-api/pkg/export"
)

// lister is the read half shared by every entity repository.
type lister[T any] interface {
	List(ctx context.Context, params querybuilder.Params) ([]T, error)
	Count(ctx context.Context, params querybuilder.Params) (int, error)
}

type cachedPage[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// listPage runs the list and count statements for params and, when a cache
// is configured, serves repeated requests for the same page from it.
func listPage[T any](ctx context.Context, repo lister[T], cache *CacheService, entity string, params querybuilder.Params, logger *zap.Logger) ([]T, *models.ListMeta, error) {
	page := querybuilder.NormalizePage(params.Page, params.PageSize)
	params.Page, params.PageSize = page.Number, page.Size
	meta := &models.ListMeta{Page: page.Number, PerPage: page.Size}

	key := cache.Key(entity, "list", fingerprint(params))
	var cached cachedPage[T]
	if cache.Get(ctx, key, &cached) {
		meta.Total = cached.Total
		return cached.Items, meta, nil
	}

	items, err := repo.List(ctx, params)
	if err != nil {
		logger.Error("list failed", zap.String("entity", entity), zap.Error(err))
		return nil, nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to list "+entity)
	}
	total, err := repo.Count(ctx, params)
	if err != nil {
		logger.Error("count failed", zap.String("entity", entity), zap.Error(err))
		return nil, nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to count "+entity)
	}

	meta.Total = total
	cache.Set(ctx, key, cachedPage[T]{Items: items, Total: total})
	return items, meta, nil
}

// collectAll walks every page of the listing for params.
func collectAll[T any](ctx context.Context, repo lister[T], params querybuilder.Params) ([]T, error) {
	params.PageSize = querybuilder.MaxPageSize
	var all []T
	for params.Page = 1; ; params.Page++ {
		items, err := repo.List(ctx, params)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to read export rows")
		}
		all = append(all, items...)
		if len(items) < querybuilder.MaxPageSize {
			return all, nil
		}
	}
}

// fingerprint identifies a normalised listing request inside a cache key.
func fingerprint(p querybuilder.Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q|%q|%q|%q|%d|%d", p.SearchBy, p.SearchTerm, p.SortBy, p.SortOrder, p.Page, p.PageSize)
	for _, s := range p.Scopes {
		fmt.Fprintf(&b, "|%s=%v", s.Column, s.Value)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:12])
}

// dataset turns rows into an export.Dataset using headers as column order.
func dataset[T any](headers []string, rows []T, cells func(T) []string) export.Dataset {
	out := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		values := cells(row)
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			record[h] = values[i]
		}
		out.Rows = append(out.Rows, record)
	}
	return out
}
