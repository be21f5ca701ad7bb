package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	downtown := Point{Lat: 12.9716, Lng: 77.5946}
	market := Point{Lat: 12.9766, Lng: 77.5993}
	college := Point{Lat: 12.9656, Lng: 77.5876}

	t.Run("same point is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(downtown, downtown))
		assert.Equal(t, 0.0, Distance(Point{}, Point{}))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]Point{
			{downtown, market},
			{market, college},
			{Point{Lat: -33.8688, Lng: 151.2093}, Point{Lat: 51.5074, Lng: -0.1278}},
		}
		for _, p := range pairs {
			assert.InDelta(t, Distance(p[0], p[1]), Distance(p[1], p[0]), 1e-9)
		}
	})

	t.Run("known distances", func(t *testing.T) {
		assert.InDelta(t, 0.754, Distance(downtown, market), 0.001)
		assert.InDelta(t, 1.010, Distance(downtown, college), 0.001)
		// London to Paris is roughly 343.5 km
		assert.InDelta(t, 343.5, Distance(Point{Lat: 51.5074, Lng: -0.1278}, Point{Lat: 48.8566, Lng: 2.3522}), 1.0)
	})

	t.Run("never negative", func(t *testing.T) {
		assert.GreaterOrEqual(t, Distance(Point{Lat: 90, Lng: 0}, Point{Lat: -90, Lng: 0}), 0.0)
		assert.InDelta(t, 20015.1, Distance(Point{Lat: 90, Lng: 0}, Point{Lat: -90, Lng: 0}), 0.1)
	})
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Lat: 12.97, Lng: 77.59}.Valid())
	assert.True(t, Point{Lat: -90, Lng: 180}.Valid())
	assert.False(t, Point{Lat: 91, Lng: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lng: -181}.Valid())
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 0.8, Round1(0.76))
	assert.Equal(t, 1.2, Round1(1.249))
	assert.Equal(t, 0.0, Round1(0))
}
