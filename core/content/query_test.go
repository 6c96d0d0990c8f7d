package content_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emellab/campus/core"
	"github.com/emellab/campus/core/content"
)

func TestNewListQuery(t *testing.T) {
	tests := []struct {
		name       string
		params     url.Values
		build      func(url.Values) (content.ListQuery, error)
		wantFilter core.Filter
		wantLimit  int64
		wantErr    bool
	}{
		{
			name:      "notices defaults",
			build:     content.NewListQuery[content.Notice],
			wantLimit: 50,
		},
		{
			name:      "faculty defaults",
			build:     content.NewListQuery[content.Faculty],
			wantLimit: 100,
		},
		{
			name:       "notices audience",
			params:     url.Values{"audience": {"school"}},
			build:      content.NewListQuery[content.Notice],
			wantFilter: core.Filter{"audience": "school"},
			wantLimit:  50,
		},
		{
			name:       "faculty level and department",
			params:     url.Values{"level": {"college"}, "department": {" Physics "}, "limit": {"5"}},
			build:      content.NewListQuery[content.Faculty],
			wantFilter: core.Filter{"level": "college", "department": "Physics"},
			wantLimit:  5,
		},
		{
			name:       "admissions level and status",
			params:     url.Values{"level": {"school"}, "status": {"accepted"}},
			build:      content.NewListQuery[content.Admission],
			wantFilter: core.Filter{"level": "school", "status": "accepted"},
			wantLimit:  100,
		},
		{
			name:       "gallery album",
			params:     url.Values{"album": {"Sports Day"}},
			build:      content.NewListQuery[content.GalleryImage],
			wantFilter: core.Filter{"album": "Sports Day"},
			wantLimit:  100,
		},
		{
			name:      "params of other entities are ignored",
			params:    url.Values{"status": {"accepted"}, "album": {"x"}},
			build:     content.NewListQuery[content.Department],
			wantLimit: 100,
		},
		{
			name:      "blank filter is not applied",
			params:    url.Values{"audience": {"  "}},
			build:     content.NewListQuery[content.Event],
			wantLimit: 50,
		},
		{
			name:       "unknown enum value is passed through",
			params:     url.Values{"audience": {"alumni"}},
			build:      content.NewListQuery[content.Event],
			wantFilter: core.Filter{"audience": "alumni"},
			wantLimit:  50,
		},
		{name: "max limit", params: url.Values{"limit": {"1000"}}, build: content.NewListQuery[content.Notice], wantLimit: 1000},
		{name: "zero limit", params: url.Values{"limit": {"0"}}, build: content.NewListQuery[content.Notice], wantErr: true},
		{name: "negative limit", params: url.Values{"limit": {"-1"}}, build: content.NewListQuery[content.Notice], wantErr: true},
		{name: "limit too big", params: url.Values{"limit": {"1001"}}, build: content.NewListQuery[content.Notice], wantErr: true},
		{name: "limit not a number", params: url.Values{"limit": {"ten"}}, build: content.NewListQuery[content.Notice], wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.build(tt.params)
			if tt.wantErr {
				var vErr *core.ValidationError
				require.ErrorAs(t, err, &vErr)
				require.Len(t, vErr.Fields, 1)
				assert.Equal(t, "limit", vErr.Fields[0].Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFilter, q.Filter)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}
