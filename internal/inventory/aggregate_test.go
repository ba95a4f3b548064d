package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

func outRec(division, teamCategory, product, spec string, qty int64) models.OutgoingRecord {
	return models.OutgoingRecord{
		Division:      division,
		TeamCategory:  teamCategory,
		ProductName:   product,
		Specification: spec,
		Quantity:      decimal.NewFromInt(qty),
	}
}

func useRec(division, teamCategory, product, spec string, qty int64) models.UsageRecord {
	return models.UsageRecord{
		Division:      division,
		TeamCategory:  teamCategory,
		ProductName:   product,
		Specification: spec,
		Quantity:      decimal.NewFromInt(qty),
	}
}

func TestFoldTeamStockSumsOutgoingMinusUsage(t *testing.T) {
	outgoing := []models.OutgoingRecord{
		outRec("KT", "Crew A", "Conduit", "30mm", 100),
		outRec("KT", "Crew A", "Conduit", "30mm", 50),
		outRec("KT", "Crew B", "Conduit", "30mm", 20),
	}
	usage := []models.UsageRecord{
		useRec("KT", "Crew A", "Conduit", "30mm", 60),
	}

	entries := FoldTeamStock(outgoing, usage)
	require.Len(t, entries, 2)
	require.Equal(t, "Crew A", entries[0].TeamCategory)
	require.True(t, entries[0].Quantity.Equal(decimal.NewFromInt(90)))
	require.Equal(t, "Crew B", entries[1].TeamCategory)
	require.True(t, entries[1].Quantity.Equal(decimal.NewFromInt(20)))
}

func TestFoldTeamStockDropsNonPositiveBuckets(t *testing.T) {
	outgoing := []models.OutgoingRecord{
		outRec("KT", "Crew A", "Conduit", "30mm", 40),
		outRec("KT", "Crew B", "Closure", "48C", 10),
	}
	usage := []models.UsageRecord{
		useRec("KT", "Crew A", "Conduit", "30mm", 40),
		useRec("KT", "Crew B", "Closure", "48C", 15),
	}

	entries := FoldTeamStock(outgoing, usage)
	require.Empty(t, entries, "zero and negative buckets must be excluded")
}

func TestFoldTeamStockKeysAreIndependent(t *testing.T) {
	outgoing := []models.OutgoingRecord{
		outRec("KT", "Crew A", "Conduit", "30mm", 10),
		outRec("LGU", "Crew A", "Conduit", "30mm", 5),
		outRec("KT", "Crew A", "Conduit", "40mm", 7),
	}

	entries := FoldTeamStock(outgoing, nil)
	require.Len(t, entries, 3)
}

func TestRecalculateDerivesRemainingAndAmount(t *testing.T) {
	item := &models.InventoryItem{
		CarriedOver: decimal.NewFromInt(100),
		UnitPrice:   decimal.NewFromInt(2500),
	}
	Recalculate(item, ItemTotals{
		TotalIncoming: decimal.NewFromInt(400),
		TotalOutgoing: decimal.NewFromInt(150),
		TotalUsage:    decimal.NewFromInt(90),
	})

	require.True(t, item.Remaining.Equal(decimal.NewFromInt(350)), "remaining = carried + incoming - outgoing")
	require.True(t, item.TotalAmount.Equal(decimal.NewFromInt(875000)))
	require.True(t, item.TotalUsage.Equal(decimal.NewFromInt(90)))
}
