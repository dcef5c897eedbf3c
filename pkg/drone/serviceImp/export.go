package serviceImp

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"agrocrm/entities"
	"agrocrm/pkg/apperr"
	svc "agrocrm/pkg/drone/service"
)

var exportHeader = []string{
	"Data",
	"Cultura",
	"Altura (m)",
	"Velocidade (m/s)",
	"Faixa (m)",
	"Tipo de Gota",
	"Vazão (L/min)",
	"Área (ha)",
	"Volume Total (L)",
	"Produtos Líquidos",
	"Produtos Sólidos",
	"Condições Climáticas",
	"Observações",
}

// Render writes the flight history as csv (default) or xlsx.
func Render(list []entities.DroneFlight, format string, now time.Time) (*svc.Document, error) {
	stamp := now.Format("2006-01-02")
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		b, err := flightsCSV(list)
		if err != nil {
			return nil, errors.Wrap(err, "render csv")
		}
		return &svc.Document{Filename: "historico-voos-" + stamp + ".csv", ContentType: "text/csv; charset=utf-8", Body: b}, nil
	case "xlsx":
		b, err := flightsXLSX(list)
		if err != nil {
			return nil, errors.Wrap(err, "render xlsx")
		}
		return &svc.Document{
			Filename:    "historico-voos-" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        b,
		}, nil
	}
	return nil, apperr.Invalid(fmt.Sprintf("unsupported export format %q", format))
}

func flightRow(f entities.DroneFlight) []string {
	return []string{
		f.FlightDate.Format("02/01/2006"),
		f.Culture,
		num(f.FlightHeight),
		num(f.Speed),
		num(f.ApplicationWidth),
		f.DropletType,
		num(f.FlowRate),
		optNum(f.AreaCovered),
		optNum(f.TotalVolume),
		productsCell(f.Products),
		productsCell(f.SolidProducts),
		f.WeatherConditions,
		f.Notes,
	}
}

func flightsCSV(list []entities.DroneFlight) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, f := range list {
		if err := w.Write(flightRow(f)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func flightsXLSX(list []entities.DroneFlight) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "voos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	header := lo.Map(exportHeader, func(h string, _ int) any { return h })
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, fl := range list {
		row := lo.Map(flightRow(fl), func(v string, _ int) any { return v })
		// numeric columns keep their type so spreadsheets can sum them
		row[2], row[3], row[4], row[6] = fl.FlightHeight, fl.Speed, fl.ApplicationWidth, fl.FlowRate
		if fl.AreaCovered != nil {
			row[7] = *fl.AreaCovered
		}
		if fl.TotalVolume != nil {
			row[8] = *fl.TotalVolume
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func productsCell(ps []entities.FlightProduct) string {
	return strings.Join(lo.Map(ps, func(p entities.FlightProduct, _ int) string {
		return fmt.Sprintf("%s (%s%s)", p.Name, num(p.Dosage), p.Unit)
	}), "; ")
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func optNum(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}
