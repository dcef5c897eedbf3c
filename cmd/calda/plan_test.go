package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocrm/pkg/mix"
)

func TestParseProduct(t *testing.T) {
	t.Parallel()

	p, err := parseProduct("Herbicida=2")
	require.NoError(t, err)
	assert.Equal(t, mix.Product{Name: "Herbicida", Dose: 2, Unit: mix.LitersPerHectare}, p)

	p, err = parseProduct(" Adubo foliar = 1.5:kg/ha")
	require.NoError(t, err)
	assert.Equal(t, mix.Product{Name: "Adubo foliar", Dose: 1.5, Unit: mix.KilogramsPerHectare}, p)

	for _, bad := range []string{"", "=2", "Herbicida", "Herbicida=x", "Herbicida=2:gal/ac"} {
		_, err := parseProduct(bad)
		assert.Error(t, err, bad)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var cli struct {
		Plan PlanCmd `cmd:""`
	}
	parser, err := kong.New(&cli, kong.Name("calda"))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = kctx.Run(&context{out: &out})
	return out.String(), err
}

func TestPlanText(t *testing.T) {
	t.Parallel()

	out, err := run(t, "plan", "--area", "50", "--rate", "200", "--tank", "2000", "--product", "Herbicide=2:L/ha")
	require.NoError(t, err)
	assert.Equal(t, "water 10000 L in 5 tank(s)\n  Herbicide: 100.00 L total, 20.00 L per tank\n", out)
}

func TestPlanJSON(t *testing.T) {
	t.Parallel()

	out, err := run(t, "plan", "-a", "12.5", "-r", "110", "-t", "600", "-p", "Fungicida=0.6", "--json")
	require.NoError(t, err)

	var res mix.PlanResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(1375), res.TotalWater)
	assert.Equal(t, 3, res.TankCount)
	assert.Equal(t, 7.5, res.ProductPlans[0].TotalQuantity)
	assert.Equal(t, 2.5, res.ProductPlans[0].QuantityPerTank)
}

func TestPlanNotComputable(t *testing.T) {
	t.Parallel()

	_, err := run(t, "plan", "--area", "0", "--rate", "200", "--tank", "2000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot compute plan")
}
