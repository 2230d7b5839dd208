package utils

import (
	"net/url"
	"strconv"
	"strings"

	"maintenance-system/pkg/types"
)

const (
	DefaultLimit uint64 = 20
	MaxLimit     uint64 = 100
)

// ParseFilterFromQuery разбирает стандартные параметры списочных
// эндпоинтов: limit, page, offset, search и filter[ключ]=значение.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filter := types.Filter{
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
	}

	page := uint64(1)
	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.ParseUint(pageStr, 10, 64); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 {
			if l > MaxLimit {
				filter.Limit = MaxLimit
			} else {
				filter.Limit = l
			}
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.ParseUint(offsetStr, 10, 64); err == nil {
			filter.Offset = o
		}
	} else {
		filter.Offset = (page - 1) * filter.Limit
	}

	filter.WithPagination = values.Get("withPagination") != "false"
	filter.Search = values.Get("search")

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			name := key[len("filter[") : len(key)-1]
			filter.Filter[name] = vals[0]
		}
	}
	return filter
}

// ParseIDParam читает числовой path-параметр, обычно ":id".
func ParseIDParam(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
