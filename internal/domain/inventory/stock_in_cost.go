package inventory

import "github.com/shopspring/decimal"

// CostLine una línea recibida con su costo unitario.
type CostLine struct {
	VariationID int64
	Quantity    int
	UnitCost    decimal.Decimal
}

// StockInCost totales de una entrada. UnitCosts guarda por variación el costo promedio
// ponderado cuando la misma variación llega en varias líneas.
type StockInCost struct {
	TotalUnits int
	TotalCost  decimal.Decimal
	UnitCosts  map[int64]decimal.Decimal
}

// WeightedAverageCost costo promedio ponderado de dos lotes:
// ((qtyA * costA) + (qtyB * costB)) / (qtyA + qtyB). Cero si no hay unidades.
func WeightedAverageCost(qtyA int, costA decimal.Decimal, qtyB int, costB decimal.Decimal) decimal.Decimal {
	a, b := decimal.NewFromInt(int64(qtyA)), decimal.NewFromInt(int64(qtyB))
	sum := a.Add(b)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return a.Mul(costA).Add(b.Mul(costB)).Div(sum)
}

// SummarizeStockInCost suma unidades y costo total de las líneas.
func SummarizeStockInCost(lines []CostLine) StockInCost {
	out := StockInCost{TotalCost: decimal.Zero, UnitCosts: make(map[int64]decimal.Decimal, len(lines))}
	units := make(map[int64]int, len(lines))
	for _, l := range lines {
		out.TotalUnits += l.Quantity
		out.TotalCost = out.TotalCost.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
		prev, ok := out.UnitCosts[l.VariationID]
		if !ok {
			out.UnitCosts[l.VariationID] = l.UnitCost
		} else {
			out.UnitCosts[l.VariationID] = WeightedAverageCost(units[l.VariationID], prev, l.Quantity, l.UnitCost)
		}
		units[l.VariationID] += l.Quantity
	}
	return out
}
