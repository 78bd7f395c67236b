package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loadplanner/internal/ports"
)

func TestApply(t *testing.T) {
	rows := []ports.RawRow{
		{"SO": "1", "Credit": "H", "ReadyPieces": "5"},
		{"SO": "2", "ShipHold": "H", "ReadyPieces": "5"},
		{"SO": "3", "ReadyPieces": "0"},
		{"SO": "4", "ReadyPieces": "5"},
		{"SO": "5", "yes_no": "yes", "BalancePieces": "7", "BalanceWeight": "700", "ReadyPieces": "", "ReadyWeight": ""},
	}

	out, counts := Apply(rows, Options{})

	assert.Equal(t, 1, counts.DroppedCreditHold)
	assert.Equal(t, 1, counts.DroppedShipHold)
	assert.Equal(t, 1, counts.DroppedNoPieces)
	assert.Equal(t, 1, counts.Transformed)

	assert.Len(t, out, 2)
	assert.Equal(t, "4", out[0]["SO"])
	assert.Equal(t, "5", out[1]["SO"])
	assert.Equal(t, "7", out[1]["ReadyPieces"])
	assert.Equal(t, "700", out[1]["ReadyWeight"])
}

func TestApplyPlanningWhseAllowList(t *testing.T) {
	rows := []ports.RawRow{
		{"SO": "1", "ReadyPieces": "5", "PlanningWhse": "dal"},
		{"SO": "2", "ReadyPieces": "5", "PlanningWhse": "hou"},
		{"SO": "3", "ReadyPieces": "5"}, // no PlanningWhse column: not gated
	}

	out, counts := Apply(rows, Options{AllowedPlanningWhse: []string{"DAL"}})

	assert.Equal(t, 1, counts.DroppedPlanningWhse)
	assert.Len(t, out, 2)
	assert.Equal(t, "1", out[0]["SO"])
	assert.Equal(t, "3", out[1]["SO"])
}
