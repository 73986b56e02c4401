package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmZero(t *testing.T) {
	p := Coordinate{Lat: 13.7563, Lng: 100.5018}
	assert.Equal(t, 0.0, DistanceKm(p, p))
}

func TestDistanceKmKnownRoute(t *testing.T) {
	bangkok := Coordinate{Lat: 13.7563, Lng: 100.5018}
	chiangMai := Coordinate{Lat: 18.7883, Lng: 98.9853}

	d := DistanceKm(bangkok, chiangMai)
	assert.InDelta(t, 586, d, 5)

	// Symmetric
	assert.InDelta(t, d, DistanceKm(chiangMai, bangkok), 1e-9)
}

func TestDistanceKmShortHop(t *testing.T) {
	a := Coordinate{Lat: 13.75, Lng: 100.50}
	b := Coordinate{Lat: 13.76, Lng: 100.50}

	// One hundredth of a degree of latitude is ~1.11 km
	assert.InDelta(t, 1.112, DistanceKm(a, b), 0.01)
}

func TestDistanceKmAntipodal(t *testing.T) {
	a := Coordinate{Lat: 0, Lng: 0}
	b := Coordinate{Lat: 0, Lng: 180}

	d := DistanceKm(a, b)
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*6371, d, 1)
}

func TestCoordinateValid(t *testing.T) {
	assert.True(t, Coordinate{Lat: 13.75, Lng: 100.50}.Valid())
	assert.True(t, Coordinate{}.Valid())

	assert.False(t, Coordinate{Lat: math.NaN(), Lng: 100.50}.Valid())
	assert.False(t, Coordinate{Lat: 13.75, Lng: math.NaN()}.Valid())
	assert.False(t, Coordinate{Lat: math.Inf(1), Lng: 100.50}.Valid())
	assert.False(t, Coordinate{Lat: 13.75, Lng: math.Inf(-1)}.Valid())
}
