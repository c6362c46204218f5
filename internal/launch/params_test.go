package launch

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsValidate(t *testing.T) {
	base := Params{Name: "Cat", Symbol: "CAT", Platform: PlatformPump}

	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr string
	}{
		{"valid", func(p *Params) {}, ""},
		{"zero amount", func(p *Params) { p.SolAmount = 0 }, ""},
		{"missing name", func(p *Params) { p.Name = "" }, "missing required parameters"},
		{"missing symbol", func(p *Params) { p.Symbol = "" }, "missing required parameters"},
		{"long name", func(p *Params) { p.Name = strings.Repeat("a", 33) }, "name exceeds 32 characters"},
		{"32 runes ok", func(p *Params) { p.Name = strings.Repeat("ж", 32) }, ""},
		{"long symbol", func(p *Params) { p.Symbol = "ABCDEFGHIJK" }, "symbol exceeds 10 characters"},
		{"long description", func(p *Params) { p.Description = strings.Repeat("d", 501) }, "description exceeds 500 characters"},
		{"negative", func(p *Params) { p.SolAmount = -1 }, ErrInvalidAmount.Error()},
		{"nan", func(p *Params) { p.SolAmount = math.NaN() }, ErrInvalidAmount.Error()},
		{"inf", func(p *Params) { p.SolAmount = math.Inf(1) }, ErrInvalidAmount.Error()},
		{"overflows lamports", func(p *Params) { p.SolAmount = 1e11 }, "overflows lamports"},
		{"largest representable", func(p *Params) { p.SolAmount = 1.8e10 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSolToLamports(t *testing.T) {
	assert.Equal(t, uint64(1_000_000_000), SolToLamports(1))
	assert.Equal(t, uint64(3_000_000_000), SolToLamports(3))
	assert.Equal(t, uint64(100_000_000), SolToLamports(0.1))
	assert.Equal(t, uint64(0), SolToLamports(0))

	assert.Equal(t, uint64(18_000_000_000_000_000_000), SolToLamports(1.8e10))
	assert.Equal(t, uint64(math.MaxUint64), SolToLamports(1e11))
	assert.Equal(t, uint64(math.MaxUint64), SolToLamports(math.Inf(1)))
	assert.Equal(t, uint64(0), SolToLamports(-1))
	assert.Equal(t, uint64(0), SolToLamports(math.NaN()))
}

func TestResult(t *testing.T) {
	ok := Ok(42)
	v, isOk := ok.Unwrap()
	assert.True(t, isOk)
	assert.Equal(t, 42, v)
	assert.Empty(t, ok.Reason())

	bad := ErrFrom[int](errors.New(""), "Unknown error")
	assert.False(t, bad.IsOk())
	assert.Equal(t, "Unknown error", bad.Reason())

	assert.Equal(t, "boom", ErrFrom[int](errors.New("boom"), "Unknown error").Reason())
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "registering_with_platform", RegisteringWithPlatform.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.True(t, Done.Terminal())
	assert.True(t, Failed.Terminal())
	assert.False(t, Broadcasting.Terminal())
}
