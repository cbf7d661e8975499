package coupon_test

import (
	"context"
	"errors"
	"testing"

	"cheapticket/internal/domains/booking/coupon"

	"github.com/stretchr/testify/assert"
)

type counterFunc func(ctx context.Context) (int, error)

func (f counterFunc) CountCouponRows(ctx context.Context) (int, error) {
	return f(ctx)
}

func TestCode(t *testing.T) {
	assert.Equal(t, "CTH00261201", coupon.Code("CTH0026", 1201, 0))
	assert.Equal(t, "CTH00261243", coupon.Code("CTH0026", 1201, 42))
}

func TestNeedsCode(t *testing.T) {
	tests := []struct {
		supplied string
		want     bool
	}{
		{"", true},
		{"string", true},
		{"STRING", true},
		{"String", true},
		{"SUMMER10", false},
		{"strings", false},
	}

	for _, tt := range tests {
		t.Run(tt.supplied, func(t *testing.T) {
			assert.Equal(t, tt.want, coupon.NeedsCode(tt.supplied))
		})
	}
}

func TestGenerator_Resolve(t *testing.T) {
	calls := 0
	gen := coupon.NewGenerator("CTH0026", 1201, counterFunc(func(context.Context) (int, error) {
		calls++

		return 7, nil
	}))

	code, err := gen.Resolve(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, "CTH00261208", code)

	code, err = gen.Resolve(context.Background(), "String")
	assert.NoError(t, err)
	assert.Equal(t, "CTH00261208", code)

	code, err = gen.Resolve(context.Background(), "SUMMER10")
	assert.NoError(t, err)
	assert.Equal(t, "SUMMER10", code)
	assert.Equal(t, 2, calls)

	failing := coupon.NewGenerator("CTH0026", 1201, counterFunc(func(context.Context) (int, error) {
		return 0, errors.New("db down")
	}))

	_, err = failing.Resolve(context.Background(), "")
	assert.Error(t, err)
}
