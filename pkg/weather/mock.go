package weather

import (
	"context"
	"hash/fnv"
	"strings"
	"time"
)

type mockClient struct {
	now func() time.Time
}

// NewMock returns made-up but stable conditions per city; used when no API
// key is configured.
func NewMock() Client { return &mockClient{now: time.Now} }

func (m *mockClient) Current(_ context.Context, city string) (*Conditions, error) {
	c := m.step(city, m.now().Truncate(time.Hour), 0)
	c.RainProbability, c.RainAmount = nil, nil
	return &c, nil
}

func (m *mockClient) Forecast(_ context.Context, city string) (*Forecast, error) {
	start := m.now().Truncate(3 * time.Hour).Add(3 * time.Hour)
	f := &Forecast{Location: mockPlace(city)}
	// five days of 3-hour steps, like the real provider
	for i := 0; i < 40; i++ {
		f.Steps = append(f.Steps, m.step(city, start.Add(time.Duration(i)*3*time.Hour), i))
	}
	return f, nil
}

func (m *mockClient) step(city string, at time.Time, i int) Conditions {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(city))))
	seed := int(h.Sum32() % 1000)

	temp := 18 + (seed+i*3)%14
	wind := 4 + (seed/7+i*5)%18
	deg := (seed*13 + i*20) % 360
	pop := (seed + i*17) % 100
	rain := 0.0
	if pop > 60 {
		rain = float64(pop-60) / 10
	}
	return Conditions{
		Location:        mockPlace(city),
		At:              at.UTC(),
		Temperature:     temp,
		FeelsLike:       temp + 1,
		Humidity:        35 + (seed+i*11)%55,
		Pressure:        1008 + seed%12,
		WindSpeed:       wind,
		WindDeg:         deg,
		WindDirection:   Direction(float64(deg)),
		Visibility:      10,
		Condition:       "céu limpo",
		Icon:            "01d",
		RainProbability: &pop,
		RainAmount:      &rain,
	}
}

func mockPlace(city string) string { return strings.TrimSpace(city) + ", BR" }
