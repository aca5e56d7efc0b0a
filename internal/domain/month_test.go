package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseme/esusu/internal/domain"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.Month
		wantErr bool
	}{
		{input: "2024-01", want: domain.Month{Year: 2024, Month: time.January}},
		{input: "2024-12", want: domain.Month{Year: 2024, Month: time.December}},
		{input: " 2025-06 ", want: domain.Month{Year: 2025, Month: time.June}},
		{input: "2024-13", wantErr: true},
		{input: "2024-00", wantErr: true},
		{input: "2024", wantErr: true},
		{input: "not-a-month", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseMonth(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidMonth)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonth_Ordering(t *testing.T) {
	jan := domain.Month{Year: 2024, Month: time.January}
	feb := domain.Month{Year: 2024, Month: time.February}
	decPrev := domain.Month{Year: 2023, Month: time.December}

	assert.True(t, jan.Before(feb))
	assert.True(t, feb.After(jan))
	assert.True(t, decPrev.Before(jan))
	assert.True(t, jan.Equal(jan))
	assert.Equal(t, 0, jan.Compare(jan))
	assert.Equal(t, -1, decPrev.Compare(feb))
	assert.Equal(t, 1, feb.Compare(decPrev))
}

func TestMonth_Next(t *testing.T) {
	nov := domain.Month{Year: 2024, Month: time.November}
	dec := nov.Next()
	assert.Equal(t, domain.Month{Year: 2024, Month: time.December}, dec)

	// Year rollover
	jan := dec.Next()
	assert.Equal(t, domain.Month{Year: 2025, Month: time.January}, jan)
}

func TestMonth_Days(t *testing.T) {
	assert.Equal(t, 31, domain.Month{Year: 2024, Month: time.January}.Days())
	assert.Equal(t, 29, domain.Month{Year: 2024, Month: time.February}.Days())
	assert.Equal(t, 28, domain.Month{Year: 2025, Month: time.February}.Days())
	assert.Equal(t, 30, domain.Month{Year: 2024, Month: time.April}.Days())
}

func TestMonth_JSON(t *testing.T) {
	m := domain.Month{Year: 2024, Month: time.March}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03"`, string(data))

	var decoded domain.Month
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))

	var bad domain.Month
	assert.Error(t, json.Unmarshal([]byte(`"2024/03"`), &bad))
}

func TestMonth_StringOrderMatchesChronology(t *testing.T) {
	// The DB stores months as text and compares lexicographically, so
	// string order must match chronological order.
	m := domain.Month{Year: 2023, Month: time.September}
	for i := 0; i < 40; i++ {
		next := m.Next()
		assert.Less(t, m.String(), next.String())
		m = next
	}
}
