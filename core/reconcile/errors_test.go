package reconcile

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureClass
	}{
		{"Nil", nil, ""},
		{"Network sentinel", fmt.Errorf("create: %w", ErrNetwork), ClassNetwork},
		{"Deadline", fmt.Errorf("create: %w", context.DeadlineExceeded), ClassNetwork},
		{"Bad connection", fmt.Errorf("exec: %w", driver.ErrBadConn), ClassNetwork},
		{"Net error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, ClassNetwork},
		{"Conflict", fmt.Errorf("hotel 1 amenity 2: %w", ErrConflict), ClassConflict},
		{"Not found", fmt.Errorf("hotel 1 amenity 2: %w", ErrNotFound), ClassNotFound},
		{"Canceled sentinel", fmt.Errorf("%w: context canceled", ErrCanceled), ClassCanceled},
		{"Context canceled", context.Canceled, ClassCanceled},
		{"Unknown", errors.New("syntax error"), ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{MaxConcurrency: 3, OperationTimeoutSeconds: 2, CacheTTLSeconds: 5}

	o := newOptions(cfg.Options())

	assert.Equal(t, 3, o.concurrency)
	assert.Equal(t, "2s", o.timeout.String())
	assert.Equal(t, "5s", cfg.CacheTTL().String())
}

func TestNewOptions_SkipsNil(t *testing.T) {
	o := newOptions([]Option{nil, WithConcurrency(4), nil})
	assert.Equal(t, 4, o.concurrency)
	assert.Zero(t, o.timeout)
}
