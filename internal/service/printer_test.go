package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/geo"
	"printshop/internal/model"
	"printshop/internal/repository/memory"
)

func seededPrinters(t *testing.T) PrinterService {
	t.Helper()
	svc := NewPrinterService(memory.NewPrinterRepository())
	n, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(DefaultPrinters), n)
	return svc
}

func TestPrinterService_SeedDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := seededPrinters(t)

	n, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultPrinters))
}

func TestPrinterService_FindNearby(t *testing.T) {
	ctx := context.Background()
	svc := seededPrinters(t)

	tests := []struct {
		name      string
		lat, lng  float64
		radius    float64
		wantNames []string
		wantErr   error
	}{
		{
			name:      "closest first and closed shops included",
			lat:       12.9716,
			lng:       77.5946,
			radius:    10,
			wantNames: []string{"PrintShop Downtown", "Office Supplies Plus", "University Print Center"},
		},
		{
			name:      "radius filters far shops",
			lat:       12.9716,
			lng:       77.5946,
			radius:    0.9,
			wantNames: []string{"PrintShop Downtown", "Office Supplies Plus"},
		},
		{
			name:      "zero radius keeps a printer at the origin",
			lat:       12.9716,
			lng:       77.5946,
			radius:    0,
			wantNames: []string{"PrintShop Downtown"},
		},
		{
			name:      "negative radius matches nothing",
			lat:       12.9716,
			lng:       77.5946,
			radius:    -1,
			wantNames: []string{},
		},
		{
			name:      "nothing in range",
			lat:       51.5074,
			lng:       -0.1278,
			radius:    10,
			wantNames: []string{},
		},
		{
			name:    "latitude out of range",
			lat:     91,
			lng:     0,
			radius:  10,
			wantErr: ErrValidation,
		},
		{
			name:    "longitude out of range",
			lat:     0,
			lng:     -181,
			radius:  10,
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FindNearby(ctx, tt.lat, tt.lng, tt.radius)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestPrinterService_FindNearbyRoundsDistance(t *testing.T) {
	svc := seededPrinters(t)

	got, err := svc.FindNearby(context.Background(), 12.9716, 77.5946, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 0.0, got[0].DistanceKm)
	assert.Equal(t, 0.8, got[1].DistanceKm)
	assert.False(t, got[2].IsOpen)
	for _, p := range got {
		assert.Equal(t, p.DistanceKm, float64(int(p.DistanceKm*10+0.5))/10)
	}
}

// northOf returns the latitude km kilometers north of the equator on the
// prime meridian.
func northOf(km float64) float64 {
	return km / (geo.EarthRadiusKm * math.Pi / 180)
}

func TestPrinterService_FindNearbyRadiusUsesDisplayedDistance(t *testing.T) {
	ctx := context.Background()
	svc := NewPrinterService(memory.NewPrinterRepository())

	for name, km := range map[string]float64{"edge": 10.04, "beyond": 10.06} {
		_, err := svc.Create(ctx, CreatePrinterInput{Name: name, Address: "Meridian Rd", Latitude: northOf(km)})
		require.NoError(t, err)
	}

	got, err := svc.FindNearby(ctx, 0, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "edge", got[0].Name)
	assert.Equal(t, 10.0, got[0].DistanceKm)
}

func TestPrinterService_FindNearbySortsAscending(t *testing.T) {
	ctx := context.Background()
	svc := NewPrinterService(memory.NewPrinterRepository())

	for _, km := range []float64{7.2, 0.3, 9.9, 2.5, 0, 4.4} {
		_, err := svc.Create(ctx, CreatePrinterInput{Name: "shop", Address: "Meridian Rd", Latitude: northOf(km)})
		require.NoError(t, err)
	}

	got, err := svc.FindNearby(ctx, 0, 0, 10)
	require.NoError(t, err)

	distances := make([]float64, 0, len(got))
	for _, p := range got {
		distances = append(distances, p.DistanceKm)
	}
	assert.Equal(t, []float64{0, 0.3, 2.5, 4.4, 7.2, 9.9}, distances)
}

func TestPrinterService_CreateAndSetOpen(t *testing.T) {
	ctx := context.Background()
	svc := NewPrinterService(memory.NewPrinterRepository())

	_, err := svc.Create(ctx, CreatePrinterInput{Name: "", Address: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, CreatePrinterInput{Name: "Kiosk", Address: "1 Road", Latitude: 100})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, CreatePrinterInput{Name: "Kiosk", Address: "1 Road", Features: model.PrinterFeatures{MaxPaperSize: "B5"}})
	assert.ErrorIs(t, err, ErrValidation)

	p, err := svc.Create(ctx, CreatePrinterInput{Name: " Kiosk ", Address: "1 Road", Latitude: 1, Longitude: 2})
	require.NoError(t, err)
	assert.Equal(t, "Kiosk", p.Name)
	assert.False(t, p.IsOpen)

	p, err = svc.SetOpen(ctx, p.ID, true)
	require.NoError(t, err)
	assert.True(t, p.IsOpen)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsOpen)

	_, err = svc.SetOpen(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}
