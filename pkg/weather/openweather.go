package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"agrocrm/pkg/apperr"
	"agrocrm/pkg/metrics"
)

type openWeather struct {
	endpoint string
	key      string
	lang     string
	httpc    *http.Client
}

// NewOpenWeather talks to the OpenWeatherMap 2.5 API in metric units.
func NewOpenWeather(endpoint, key, lang string) Client {
	if lang == "" {
		lang = "pt_br"
	}
	return &openWeather{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		lang:     lang,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type owmWeather struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmEntry struct {
	Dt         int64        `json:"dt"`
	Main       owmMain      `json:"main"`
	Wind       owmWind      `json:"wind"`
	Visibility float64      `json:"visibility"`
	Weather    []owmWeather `json:"weather"`
	Pop        *float64     `json:"pop"`
	Rain       struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain"`
}

func (e owmEntry) conditions(location string) Conditions {
	c := Conditions{
		Location:      location,
		At:            time.Unix(e.Dt, 0).UTC(),
		Temperature:   int(math.Round(e.Main.Temp)),
		FeelsLike:     int(math.Round(e.Main.FeelsLike)),
		Humidity:      int(math.Round(e.Main.Humidity)),
		Pressure:      int(math.Round(e.Main.Pressure)),
		WindSpeed:     kmh(e.Wind.Speed),
		WindDeg:       int(math.Round(e.Wind.Deg)),
		WindDirection: Direction(e.Wind.Deg),
		Visibility:    int(math.Round(e.Visibility / 1000)),
		Icon:          "01d",
	}
	if len(e.Weather) > 0 {
		c.Condition = e.Weather[0].Description
		if e.Weather[0].Icon != "" {
			c.Icon = e.Weather[0].Icon
		}
	}
	if e.Pop != nil {
		p := int(math.Round(*e.Pop * 100))
		rain := e.Rain.ThreeHours
		c.RainProbability = &p
		c.RainAmount = &rain
	}
	return c
}

func place(name, country string) string {
	if country == "" {
		return name
	}
	return name + ", " + country
}

func (c *openWeather) Current(ctx context.Context, city string) (*Conditions, error) {
	var out struct {
		owmEntry
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
	}
	if err := c.get(ctx, "/data/2.5/weather", city, &out); err != nil {
		return nil, err
	}
	cond := out.owmEntry.conditions(place(out.Name, out.Sys.Country))
	return &cond, nil
}

func (c *openWeather) Forecast(ctx context.Context, city string) (*Forecast, error) {
	var out struct {
		List []owmEntry `json:"list"`
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"city"`
	}
	if err := c.get(ctx, "/data/2.5/forecast", city, &out); err != nil {
		return nil, err
	}
	loc := place(out.City.Name, out.City.Country)
	f := &Forecast{Location: loc, Steps: make([]Conditions, 0, len(out.List))}
	for _, e := range out.List {
		f.Steps = append(f.Steps, e.conditions(loc))
	}
	return f, nil
}

func (c *openWeather) get(ctx context.Context, path, city string, into any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveWeather(err, time.Since(start)) }()

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.key)
	q.Set("units", "metric")
	q.Set("lang", c.lang)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path+"?"+q.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "build weather request")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "weather request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrapf(apperr.ErrNotFound, "city %q", city)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("weather provider answered %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return errors.Wrap(err, "decode weather response")
	}
	return nil
}
