package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"agrocrm/pkg/mix"
)

type PlanCmd struct {
	Area     float64  `short:"a" required:"" help:"Field area in hectares."`
	Rate     float64  `short:"r" required:"" help:"Application rate in L/ha."`
	Tank     float64  `short:"t" required:"" help:"Sprayer tank capacity in liters."`
	Products []string `short:"p" name:"product" sep:"none" placeholder:"NAME=DOSE[:UNIT]" help:"Product and dose per hectare; unit is L/ha (default) or kg/ha. Repeatable."`
	JSON     bool     `name:"json" help:"Print the plan as JSON."`
}

func (c *PlanCmd) Run(ctx *context) error {
	req := mix.PlanRequest{Area: c.Area, ApplicationRate: c.Rate, TankCapacity: c.Tank}
	for _, s := range c.Products {
		p, err := parseProduct(s)
		if err != nil {
			return err
		}
		req.Products = append(req.Products, p)
	}

	res, ok := mix.ComputePlan(req)
	if !ok {
		return errors.Errorf("cannot compute plan: %s", strings.Join(req.Problems(), "; "))
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err := fmt.Fprintln(ctx.out, res.String())
	return err
}

// parseProduct reads "Name=dose" or "Name=dose:unit".
func parseProduct(s string) (mix.Product, error) {
	name, rest, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return mix.Product{}, errors.Errorf("product %q: expected NAME=DOSE[:UNIT]", s)
	}
	dose, unit, _ := strings.Cut(rest, ":")
	v, err := strconv.ParseFloat(strings.TrimSpace(dose), 64)
	if err != nil {
		return mix.Product{}, errors.Wrapf(err, "product %q: dose", s)
	}
	p := mix.Product{Name: name, Dose: v, Unit: mix.LitersPerHectare}
	if u := strings.TrimSpace(unit); u != "" {
		p.Unit = mix.Unit(u)
	}
	if !p.Unit.Valid() {
		return mix.Product{}, errors.Errorf("product %q: unit must be L/ha or kg/ha", s)
	}
	return p, nil
}
