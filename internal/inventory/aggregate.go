package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// StockKey identifies a held-stock bucket. TeamCategory is the crew
// grouping recorded on outgoing/usage rows, not a team ID, because
// paper records travel by crew name.
type StockKey struct {
	Division      string
	TeamCategory  string
	ProductName   string
	Specification string
}

// TeamStockEntry is one positive held-stock result.
type TeamStockEntry struct {
	StockKey
	Quantity decimal.Decimal
}

// FoldTeamStock computes who holds how much: outgoing counts positive,
// usage counts negative, buckets at or below zero are dropped. It is a
// pure function over the two record slices so it can be recomputed on
// every request.
func FoldTeamStock(outgoing []models.OutgoingRecord, usage []models.UsageRecord) []TeamStockEntry {
	totals := map[StockKey]decimal.Decimal{}

	for i := range outgoing {
		key := StockKey{
			Division:      outgoing[i].Division,
			TeamCategory:  outgoing[i].TeamCategory,
			ProductName:   outgoing[i].ProductName,
			Specification: outgoing[i].Specification,
		}
		totals[key] = totals[key].Add(outgoing[i].Quantity)
	}
	for i := range usage {
		key := StockKey{
			Division:      usage[i].Division,
			TeamCategory:  usage[i].TeamCategory,
			ProductName:   usage[i].ProductName,
			Specification: usage[i].Specification,
		}
		totals[key] = totals[key].Sub(usage[i].Quantity)
	}

	entries := make([]TeamStockEntry, 0, len(totals))
	for key, qty := range totals {
		if qty.IsPositive() {
			entries = append(entries, TeamStockEntry{StockKey: key, Quantity: qty})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Division != b.Division {
			return a.Division < b.Division
		}
		if a.TeamCategory != b.TeamCategory {
			return a.TeamCategory < b.TeamCategory
		}
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		return a.Specification < b.Specification
	})
	return entries
}

// ItemTotals holds the sums recomputed from the record tables.
type ItemTotals struct {
	TotalIncoming decimal.Decimal
	TotalOutgoing decimal.Decimal
	TotalUsage    decimal.Decimal
}

// Recalculate derives the item's aggregate columns from its carried-over
// base plus freshly summed record totals. Remaining counts warehouse
// stock, so usage rows (already released to crews) do not reduce it
// twice: remaining = carriedOver + incoming - outgoing.
func Recalculate(item *models.InventoryItem, totals ItemTotals) {
	item.TotalIncoming = totals.TotalIncoming
	item.TotalOutgoing = totals.TotalOutgoing
	item.TotalUsage = totals.TotalUsage
	item.Remaining = item.CarriedOver.Add(totals.TotalIncoming).Sub(totals.TotalOutgoing)
	item.TotalAmount = item.Remaining.Mul(item.UnitPrice)
}
