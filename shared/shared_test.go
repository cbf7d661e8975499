package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cheapticket/shared"
	cacheMocks "cheapticket/shared/cache/mocks"
	"cheapticket/shared/constant"
	"cheapticket/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "true", want: &yes},
		{input: "1", want: &yes},
		{input: "T", want: &yes},
		{input: "false", want: &no},
		{input: "0", want: &no},
		{input: "FALSE", want: &no},
		{input: "yes", want: nil},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no rows", total: 0, limit: 10, want: 1},
		{name: "unpaginated", total: 25, limit: 0, want: 1},
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "single row", total: 1, limit: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type profile struct {
		FirstName   string  `db:"first_name"`
		LastName    string  `db:"last_name"`
		PhoneNumber *string `db:"phone_number"`
		IsStaff     *bool   `db:"is_staff"`
		Note        string
		Legs        []int `db:"-"`
	}

	phone := "+628123456789"
	staff := false

	tests := []struct {
		name string
		data profile
		want map[string]any
	}{
		{
			name: "only set columns are written",
			data: profile{FirstName: "Ayu", Note: "skipped", Legs: []int{1}},
			want: map[string]any{"first_name": "Ayu"},
		},
		{
			name: "pointers to zero values still count",
			data: profile{PhoneNumber: &phone, IsStaff: &staff},
			want: map[string]any{"phone_number": &phone, "is_staff": &staff},
		},
		{
			name: "empty request only touches audit columns",
			data: profile{},
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.TransformFields(tt.data, "staff@cheapticket.test")

			assert.Equal(t, "staff@cheapticket.test", got[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, got[constant.FieldModifiedAt])

			delete(got, constant.FieldModifiedBy)
			delete(got, constant.FieldModifiedAt)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("booking-1", "id", "hotels")

	where, args := group.GetWhereClause()

	assert.Len(t, group.Filters, 1)
	assert.Contains(t, where, "hotels.id")
	assert.Contains(t, args, "id")
	assert.Equal(t, "booking-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:gets", shared.BuildCacheKey("booking:gets"))
	assert.Equal(t, "booking:get:hotel:42", shared.BuildCacheKey("booking:get", "hotel", "42"))
	assert.Equal(t, "limiter:10.0.0.1:curl", shared.BuildCacheKey("limiter", "10.0.0.1", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("user-1", "user_id", "hotels")

	first := shared.BuildCacheKeyWithQuery("booking:gets:hotel", params, filter)
	second := shared.BuildCacheKeyWithQuery("booking:gets:hotel", params, filter)
	nextPage := shared.BuildCacheKeyWithQuery("booking:gets:hotel", dto.QueryParams{Page: 2, Limit: 10}, filter)
	otherOwner := shared.BuildCacheKeyWithQuery("booking:gets:hotel", params, shared.FilterByID("user-2", "user_id", "hotels"))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, nextPage)
	assert.NotEqual(t, first, otherOwner)
	assert.True(t, strings.HasPrefix(first, "booking:gets:hotel:"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets:hotel*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets:hotel")

	mockCache.EXPECT().Clear(gomock.Any(), "user:gets*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "user:gets")
}
