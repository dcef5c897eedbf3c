package mix

import (
	"fmt"
	"math"
	"strings"
)

// Unit is a dose unit normalized per hectare.
type Unit string

const (
	LitersPerHectare    Unit = "L/ha"
	KilogramsPerHectare Unit = "kg/ha"
)

func (u Unit) Valid() bool {
	return u == LitersPerHectare || u == KilogramsPerHectare
}

// Quantity is the unit without the area part ("L/ha" -> "L").
func (u Unit) Quantity() string {
	s := string(u)
	if i := strings.Index(s, "/"); i >= 0 {
		return s[:i]
	}
	return s
}

type Product struct {
	Name string  `json:"name"`
	Dose float64 `json:"dose"`
	Unit Unit    `json:"unit"`
}

// PlanRequest is built once per "calculate" action and never mutated by the planner.
type PlanRequest struct {
	Area            float64   `json:"area"`        // ha
	ApplicationRate float64   `json:"spray_rate"`  // L/ha
	TankCapacity    float64   `json:"tank_volume"` // L
	Products        []Product `json:"products"`
}

// Problems lists the user-facing reasons the request cannot be computed.
func (r PlanRequest) Problems() []string {
	var out []string
	if !positive(r.Area) {
		out = append(out, "area must be greater than zero")
	}
	if !positive(r.ApplicationRate) {
		out = append(out, "spray rate must be greater than zero")
	}
	if !positive(r.TankCapacity) {
		out = append(out, "tank volume must be greater than zero")
	}
	if len(out) == 0 {
		if _, _, fits := load(r); !fits {
			out = append(out, "area and spray rate are too large for the tank volume")
		}
	}
	return out
}

type ProductPlan struct {
	Name            string  `json:"name"`
	TotalQuantity   float64 `json:"total_quantity"`
	QuantityPerTank float64 `json:"quantity_per_tank"`
	Unit            Unit    `json:"unit"`
}

type PlanResult struct {
	TotalWater   int64         `json:"total_water"`
	TankCount    int           `json:"tank_count"`
	ProductPlans []ProductPlan `json:"product_plans"`
}

func (r PlanResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "water %d L in %d tank(s)", r.TotalWater, r.TankCount)
	for _, p := range r.ProductPlans {
		q := p.Unit.Quantity()
		fmt.Fprintf(&sb, "\n  %s: %.2f %s total, %.2f %s per tank", p.Name, p.TotalQuantity, q, p.QuantityPerTank, q)
	}
	return sb.String()
}

// positive is false for NaN and infinities as well as for values <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
