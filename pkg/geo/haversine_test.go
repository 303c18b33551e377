package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	timesSquare := Point{Lat: 40.758, Lon: -73.9855}
	centralPark := Point{Lat: 40.7829, Lon: -73.9654}
	london := Point{Lat: 51.5074, Lon: -0.1278}

	t.Run("Same point is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineKm(timesSquare, timesSquare))
	})

	t.Run("Symmetric", func(t *testing.T) {
		assert.InDelta(t, HaversineKm(timesSquare, london), HaversineKm(london, timesSquare), 1e-9)
	})

	t.Run("Short distance", func(t *testing.T) {
		assert.InDelta(t, 3.2, HaversineKm(timesSquare, centralPark), 0.2)
	})

	t.Run("Transatlantic distance", func(t *testing.T) {
		assert.InDelta(t, 5570, HaversineKm(timesSquare, london), 20)
	})

	t.Run("One degree of latitude", func(t *testing.T) {
		d := HaversineKm(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
		assert.InDelta(t, 111.19, d, 0.01)
	})
}

func TestParsePoint(t *testing.T) {
	t.Run("Valid with spaces", func(t *testing.T) {
		p, err := ParsePoint(" 40.758 , -73.9855 ")
		require.NoError(t, err)
		assert.Equal(t, 40.758, p.Lat)
		assert.Equal(t, -73.9855, p.Lon)
	})

	invalid := []string{"", "40.7", "40.7,", "a,b", "1,2,3", "NaN,1", "1,Inf"}
	for _, in := range invalid {
		t.Run("Invalid "+in, func(t *testing.T) {
			_, err := ParsePoint(in)
			assert.ErrorIs(t, err, ErrInvalidPoint)
		})
	}
}
