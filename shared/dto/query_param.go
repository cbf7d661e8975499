package dto

import (
	"net/http"
	"strconv"
	"strings"

	"cheapticket/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
	Search  string `json:"search"   validate:"omitempty"`
}

// FromRequest reads paging, sorting and search from the query string. Invalid
// or non-positive numbers are ignored. With withDefaults, an unset page or
// limit falls back to page 1 of 10 rows.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if search := queryParams.Get(constant.RequestParamSearch); search != "" {
		q.Search = strings.TrimSpace(search)
	}

	if withDefaults {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// SortColumn qualifies SortBy with table when it is in allowed and replaces it
// with fallback otherwise, so user input never reaches ORDER BY unchecked.
func (q *QueryParams) SortColumn(table string, allowed []string, fallback string) {
	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}

	for _, field := range allowed {
		if q.SortBy == field {
			q.SortBy = table + "." + field

			return
		}
	}

	q.SortBy = table + "." + fallback
}
