// Package mix computes spray-mix (calda) plans: how much water and how much of
// each product go into the sprayer, split across tank loads.
//
// All arithmetic runs on exact decimals and rounds half-up, so a stored
// result always matches a fresh computation of the same request.
package mix

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ComputePlan turns a request into a plan. ok is false when area, spray rate
// or tank volume is not strictly positive, or when the water total or tank
// count is too large to represent; that is a guard condition, not an error.
//
// The tank count is never below one: a plan that needs any water at all needs
// at least one tank load, and the clamp keeps the per-tank division defined
// when the total water rounds down to zero.
func ComputePlan(req PlanRequest) (result PlanResult, ok bool) {
	if !positive(req.Area) || !positive(req.ApplicationRate) || !positive(req.TankCapacity) {
		return PlanResult{}, false
	}

	area := decimal.NewFromFloat(req.Area)
	water, tanks, fits := load(req)
	if !fits {
		return PlanResult{}, false
	}
	perTank := decimal.NewFromInt(tanks)

	plans := make([]ProductPlan, 0, len(req.Products))
	for _, p := range req.Products {
		if strings.TrimSpace(p.Name) == "" || !positive(p.Dose) {
			continue
		}
		total := area.Mul(decimal.NewFromFloat(p.Dose))
		plans = append(plans, ProductPlan{
			Name:            p.Name,
			TotalQuantity:   total.Round(2).InexactFloat64(),
			QuantityPerTank: total.Div(perTank).Round(2).InexactFloat64(),
			Unit:            p.Unit,
		})
	}

	return PlanResult{
		TotalWater:   water.IntPart(),
		TankCount:    int(tanks),
		ProductPlans: plans,
	}, true
}

var (
	maxWater = decimal.NewFromInt(math.MaxInt64)
	maxTanks = decimal.NewFromInt(math.MaxInt32)
)

// load returns the rounded water total and the tank count, clamped to one.
// fits is false when either would overflow the result's integer fields.
func load(req PlanRequest) (water decimal.Decimal, tanks int64, fits bool) {
	water = decimal.NewFromFloat(req.Area).Mul(decimal.NewFromFloat(req.ApplicationRate)).Round(0)
	if water.GreaterThan(maxWater) {
		return decimal.Zero, 0, false
	}
	t := water.Div(decimal.NewFromFloat(req.TankCapacity)).Ceil()
	if t.GreaterThan(maxTanks) {
		return decimal.Zero, 0, false
	}
	tanks = t.IntPart()
	if tanks < 1 {
		tanks = 1
	}
	return water, tanks, true
}
