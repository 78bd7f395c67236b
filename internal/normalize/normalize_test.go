package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadplanner/internal/domain"
	"loadplanner/internal/ports"
)

func TestRow(t *testing.T) {
	today := Today(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))

	cases := []struct {
		name    string
		row     ports.RawRow
		wantErr bool
		check   func(t *testing.T, l domain.OrderLine)
	}{
		{
			name:    "missing SO is invalid",
			row:     ports.RawRow{"Line": "1", "ReadyPieces": "1", "ReadyWeight": "100"},
			wantErr: true,
		},
		{
			name:    "missing ReadyPieces is invalid",
			row:     ports.RawRow{"SO": "SO1", "Line": "1", "ReadyWeight": "100"},
			wantErr: true,
		},
		{
			name: "weight per piece derives from ready weight / ready pieces",
			row: ports.RawRow{
				"SO": "SO1", "Line": "1", "ReadyPieces": "10", "ReadyWeight": "2000",
				"ShippingState": "tx", "Width": "10",
			},
			check: func(t *testing.T, l domain.OrderLine) {
				assert.Equal(t, 200.0, l.WeightPerPiece)
				assert.Equal(t, "TX", l.State)
				assert.Equal(t, "USA", l.Country)
				assert.False(t, l.IsOverwidth)
			},
		},
		{
			name: "width above threshold is overwidth",
			row: ports.RawRow{
				"SO": "SO1", "Line": "1", "ReadyPieces": "1", "ReadyWeight": "100", "Width": "100",
			},
			check: func(t *testing.T, l domain.OrderLine) {
				assert.True(t, l.IsOverwidth)
			},
		},
		{
			name: "mexico state code sets country",
			row: ports.RawRow{
				"SO": "SO1", "Line": "1", "ReadyPieces": "1", "ReadyWeight": "100", "ShippingState": "JAL",
			},
			check: func(t *testing.T, l domain.OrderLine) {
				assert.Equal(t, "Mexico", l.Country)
			},
		},
		{
			name: "latest due in the past is late",
			row: ports.RawRow{
				"SO": "SO1", "Line": "1", "ReadyPieces": "1", "ReadyWeight": "100", "LatestDue": "2026-03-01",
			},
			check: func(t *testing.T, l domain.OrderLine) {
				assert.True(t, l.IsLate)
				assert.Equal(t, domain.Late, l.Priority)
			},
		},
		{
			name: "latest due within three days is near due",
			row: ports.RawRow{
				"SO": "SO1", "Line": "1", "ReadyPieces": "1", "ReadyWeight": "100", "LatestDue": "2026-03-12",
			},
			check: func(t *testing.T, l domain.OrderLine) {
				assert.False(t, l.IsLate)
				assert.Equal(t, domain.NearDue, l.Priority)
			},
		},
		{
			name: "no latest due is not due",
			row: ports.RawRow{
				"SO": "SO1", "Line": "1", "ReadyPieces": "1", "ReadyWeight": "100",
			},
			check: func(t *testing.T, l domain.OrderLine) {
				assert.Equal(t, domain.NotDue, l.Priority)
				assert.Nil(t, l.LatestDue)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, err := Row(tc.row, today)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, line)
		})
	}
}

func TestToday(t *testing.T) {
	got := Today(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC))
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want))
}
