package provider

import (
	"context"

	"github.com/yanivvi/stocksmania/internal/model"
)

// Mock returns controllable fixed data for development and testing.
type Mock struct {
	Points []model.PricePoint
	Err    error
	Calls  int
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Fetch(_ context.Context, _ string, start, end model.Date) (model.FetchResult, error) {
	m.Calls++
	if m.Err != nil {
		return model.FetchResult{}, m.Err
	}
	pts := make([]model.PricePoint, len(m.Points))
	copy(pts, m.Points)
	return model.FetchResult{Points: normalize(pts, start, end), Provider: m.Name()}, nil
}
