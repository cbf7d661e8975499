package coupon

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Placeholder is the sample value API explorers submit; it is treated as absent.
const Placeholder = "string"

// Counter reports how many rows currently feed the coupon sequence.
type Counter interface {
	CountCouponRows(ctx context.Context) (int, error)
}

// Generator derives codes from the running booking total. The count and the
// insert that follows are not serialized, so concurrent saves can share a code.
type Generator struct {
	prefix  string
	base    int
	counter Counter
}

func NewGenerator(prefix string, base int, counter Counter) Generator {
	return Generator{prefix: prefix, base: base, counter: counter}
}

// Code renders prefix followed by base+total.
func Code(prefix string, base, total int) string {
	return prefix + strconv.Itoa(base+total)
}

// NeedsCode reports whether a supplied value must be replaced.
func NeedsCode(supplied string) bool {
	return supplied == "" || strings.EqualFold(supplied, Placeholder)
}

// Resolve keeps a real supplied code and otherwise generates one.
func (g Generator) Resolve(ctx context.Context, supplied string) (string, error) {
	if !NeedsCode(supplied) {
		return supplied, nil
	}

	total, err := g.counter.CountCouponRows(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count coupon rows: %w", err)
	}

	return Code(g.prefix, g.base, total), nil
}
