package content

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/emellab/campus/core"
)

const (
	limitParam   = "limit"
	MaxListLimit = 1000
)

var limitText = fmt.Sprintf("limit must be a positive integer no greater than %d", MaxListLimit)

// ListQuery is the equality filter and result cap of a list request.
type ListQuery struct {
	Filter core.Filter
	Limit  int64
}

// NewListQuery builds the ListQuery of T from request query params.
// Only the filter params of T that are actually supplied (non-blank) end up in the filter;
// their values are not validated, an unknown value simply matches nothing.
func NewListQuery[T Entity[T]](params url.Values) (ListQuery, error) {
	var zero T
	q := ListQuery{Limit: zero.DefaultLimit()}

	for _, name := range zero.FilterParams() {
		if val := core.CleanString(params.Get(name)); val != "" {
			if q.Filter == nil {
				q.Filter = make(core.Filter)
			}
			q.Filter[name] = val
		}
	}

	if raw := core.CleanString(params.Get(limitParam)); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 || limit > MaxListLimit {
			return ListQuery{}, core.NewValidationError(nil, core.FieldError{Field: limitParam, Error: limitText})
		}
		q.Limit = limit
	}
	return q, nil
}
