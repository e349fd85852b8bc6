package address

import (
	"context"
	"testing"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAreaSource struct {
	areas []domain.ServiceArea
	err   error
}

func (m *mockAreaSource) ListServiceAreas(ctx context.Context) ([]domain.ServiceArea, error) {
	return m.areas, m.err
}

// Provo and Salt Lake City are roughly 40 miles apart.
var (
	provo = domain.ServiceArea{Name: "Provo", Latitude: 40.2338, Longitude: -111.6585}
	slc   = domain.ServiceArea{Name: "Salt Lake City", Aliases: []string{"SLC"}, Latitude: 40.7608, Longitude: -111.8910}
)

func newTestValidator(areas ...domain.ServiceArea) *RadiusValidator {
	return NewRadiusValidator(
		&mockAreaSource{areas: areas},
		Config{InAreaMiles: 15, SurroundingMiles: 30},
	)
}

func TestHaversineMiles(t *testing.T) {
	d := haversineMiles(provo.Latitude, provo.Longitude, slc.Latitude, slc.Longitude)
	assert.InDelta(t, 38.5, d, 2.0)

	assert.Zero(t, haversineMiles(40.0, -111.0, 40.0, -111.0))
}

func TestRadiusValidator_Classification(t *testing.T) {
	v := newTestValidator(provo, slc)

	tests := []struct {
		name    string
		q       Query
		want    Classification
		nearest string
	}{
		{
			name:    "downtown Provo is in area",
			q:       Query{Latitude: 40.2400, Longitude: -111.6600},
			want:    InArea,
			nearest: "Provo",
		},
		{
			name: "Springville is in the surrounding band of Provo",
			// ~25 miles south of Provo.
			q:       Query{Latitude: 39.9, Longitude: -111.55},
			want:    Surrounding,
			nearest: "Provo",
		},
		{
			name:    "St George is out of area",
			q:       Query{Latitude: 37.0965, Longitude: -113.5684},
			want:    OutOfArea,
			nearest: "Provo",
		},
		{
			name:    "point near SLC resolves to the nearest area",
			q:       Query{Latitude: 40.75, Longitude: -111.89},
			want:    InArea,
			nearest: "Salt Lake City",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.Check(context.Background(), tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Classification)
			assert.Equal(t, tt.nearest, result.NearestArea)
		})
	}
}

func TestRadiusValidator_KeywordFallback(t *testing.T) {
	v := newTestValidator(provo, slc)

	result, err := v.Check(context.Background(), Query{Address: "100 S Main St, SLC UT"})
	require.NoError(t, err)
	assert.Equal(t, InArea, result.Classification)
	assert.Equal(t, "Salt Lake City", result.NearestArea)

	result, err = v.Check(context.Background(), Query{Address: "nowhere special"})
	require.NoError(t, err)
	assert.Equal(t, OutOfArea, result.Classification)
	assert.False(t, result.Serviceable())
}

func TestRadiusValidator_NoAreas(t *testing.T) {
	v := NewRadiusValidator(&mockAreaSource{}, Config{InAreaMiles: 15, SurroundingMiles: 30})

	result, err := v.Check(context.Background(), Query{Latitude: 40.0, Longitude: -111.0})
	require.NoError(t, err)
	assert.Equal(t, OutOfArea, result.Classification)
}
