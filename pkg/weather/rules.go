package weather

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Thresholds decide when conditions are unsuitable for spraying.
type Thresholds struct {
	MaxWindKmh     int `yaml:"max_wind_kmh" json:"max_wind_kmh"`
	MinHumidity    int `yaml:"min_humidity" json:"min_humidity"`
	MaxTemperature int `yaml:"max_temperature" json:"max_temperature"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{MaxWindKmh: 15, MinHumidity: 40, MaxTemperature: 30}
}

// LoadThresholds reads a YAML file; keys left out keep their defaults.
// An empty path returns the defaults.
func LoadThresholds(path string) (Thresholds, error) {
	th := DefaultThresholds()
	if path == "" {
		return th, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return th, errors.Wrapf(err, "read %s", path)
	}
	if err := yaml.Unmarshal(b, &th); err != nil {
		return th, errors.Wrapf(err, "parse %s", path)
	}
	if th.MaxWindKmh <= 0 || th.MinHumidity < 0 || th.MinHumidity > 100 {
		return th, fmt.Errorf("%s: thresholds out of range: %+v", path, th)
	}
	return th, nil
}

type Advisory struct {
	Kind    string `json:"kind"` // wind|humidity|temperature|ideal
	Title   string `json:"title"`
	Message string `json:"message"`
}

func Advise(c Conditions, th Thresholds) []Advisory {
	var out []Advisory
	if c.WindSpeed > th.MaxWindKmh {
		out = append(out, Advisory{
			Kind:    "wind",
			Title:   "Vento Forte",
			Message: fmt.Sprintf("Vento acima de %d km/h. Evite pulverizações para reduzir deriva.", th.MaxWindKmh),
		})
	}
	if c.Humidity < th.MinHumidity {
		out = append(out, Advisory{
			Kind:    "humidity",
			Title:   "Baixa Umidade",
			Message: "Umidade baixa pode causar evaporação rápida. Ajuste a aplicação.",
		})
	}
	if c.Temperature > th.MaxTemperature {
		out = append(out, Advisory{
			Kind:    "temperature",
			Title:   "Temperatura Alta",
			Message: "Temperaturas elevadas. Prefira aplicações no início da manhã ou final da tarde.",
		})
	}
	if len(out) == 0 {
		out = append(out, Advisory{
			Kind:    "ideal",
			Title:   "Condições Ideais",
			Message: "Condições favoráveis para aplicações agrícolas.",
		})
	}
	return out
}
