package power

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeProbe(out string, err error) *Probe {
	return &Probe{run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(out), err
	}}
}

func TestIsAsleep(t *testing.T) {
	cases := []struct {
		name string
		out  string
		err  error
		want bool
	}{
		{"asleep", "mWakefulness=Asleep\nmIsPowered=false\n", nil, true},
		{"awake", "mWakefulness=Awake\n", nil, false},
		{"spawn error", "", errors.New("no such command"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := fakeProbe(tc.out, tc.err)
			assert.Equal(t, tc.want, p.IsAsleep(context.Background()))
		})
	}
}

func TestIsDeepIdle(t *testing.T) {
	cases := []struct {
		name string
		out  string
		err  error
		want bool
	}{
		{"idle exact", "IDLE", nil, true},
		{"idle with whitespace", "  IDLE\n", nil, true},
		{"not idle", "ACTIVE", nil, false},
		{"substring doesn't count", "NOT_IDLE", nil, false},
		{"spawn error", "", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := fakeProbe(tc.out, tc.err)
			assert.Equal(t, tc.want, p.IsDeepIdle(context.Background()))
		})
	}
}
