package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"printshop/internal/geo"
	"printshop/internal/model"
	"printshop/internal/repository"
)

// CreatePrinterInput describes a new print location.
type CreatePrinterInput struct {
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	IsOpen    bool
	Features  model.PrinterFeatures
}

// PrinterService is the printer directory.
type PrinterService interface {
	ListAll(ctx context.Context) ([]model.Printer, error)
	// FindNearby returns printers within radiusKm of (lat, lng), closest
	// first. Closed printers are included.
	FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]model.PrinterLocation, error)
	Get(ctx context.Context, id string) (*model.Printer, error)
	Create(ctx context.Context, in CreatePrinterInput) (*model.Printer, error)
	SetOpen(ctx context.Context, id string, open bool) (*model.Printer, error)
	// SeedDefaults adds the sample shops when the catalogue is empty.
	SeedDefaults(ctx context.Context) (int, error)
}

type printerService struct {
	repo repository.PrinterRepository
	now  func() time.Time
}

func NewPrinterService(repo repository.PrinterRepository) PrinterService {
	return &printerService{repo: repo, now: time.Now}
}

// DefaultPrinters is the sample catalogue installed on an empty store.
var DefaultPrinters = []CreatePrinterInput{
	{
		Name:      "PrintShop Downtown",
		Address:   "123 Main St, Suite 101",
		Latitude:  12.9716,
		Longitude: 77.5946,
		IsOpen:    true,
		Features:  model.PrinterFeatures{Color: true, Extras: map[string]bool{"largeFormat": true}},
	},
	{
		Name:      "Office Supplies Plus",
		Address:   "456 Market Ave",
		Latitude:  12.9766,
		Longitude: 77.5993,
		IsOpen:    true,
		Features:  model.PrinterFeatures{Color: true, Extras: map[string]bool{"binding": true}},
	},
	{
		Name:      "University Print Center",
		Address:   "789 College Blvd",
		Latitude:  12.9656,
		Longitude: 77.5876,
		IsOpen:    false,
		Features:  model.PrinterFeatures{Color: true, Extras: map[string]bool{"scanning": true, "lamination": true}},
	},
}

func (s *printerService) ListAll(ctx context.Context) ([]model.Printer, error) {
	return s.repo.List(ctx)
}

type rankedPrinter struct {
	printer model.Printer
	km      float64
}

func (s *printerService) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]model.PrinterLocation, error) {
	origin := geo.Point{Lat: lat, Lng: lng}
	if !origin.Valid() {
		return nil, validationf("latitude must be within [-90, 90] and longitude within [-180, 180]")
	}

	printers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	// the radius applies to the distance as displayed, rounded to 0.1 km
	ranked := lo.FilterMap(printers, func(p model.Printer, _ int) (rankedPrinter, bool) {
		km := geo.Distance(origin, geo.Point{Lat: p.Latitude, Lng: p.Longitude})
		return rankedPrinter{printer: p, km: km}, geo.Round1(km) <= radiusKm
	})
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].km < ranked[j].km })

	return lo.Map(ranked, func(r rankedPrinter, _ int) model.PrinterLocation {
		return model.PrinterLocation{
			ID:         r.printer.ID,
			Name:       r.printer.Name,
			Address:    r.printer.Address,
			DistanceKm: geo.Round1(r.km),
			IsOpen:     r.printer.IsOpen,
			Latitude:   r.printer.Latitude,
			Longitude:  r.printer.Longitude,
			Features:   r.printer.Features,
		}
	}), nil
}

func (s *printerService) Get(ctx context.Context, id string) (*model.Printer, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "printer")
	}
	return p, nil
}

func (s *printerService) Create(ctx context.Context, in CreatePrinterInput) (*model.Printer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" || in.Address == "" {
		return nil, validationf("name and address are required")
	}
	if !(geo.Point{Lat: in.Latitude, Lng: in.Longitude}).Valid() {
		return nil, validationf("latitude must be within [-90, 90] and longitude within [-180, 180]")
	}
	if in.Features.MaxPaperSize != "" && !in.Features.MaxPaperSize.Valid() {
		return nil, validationf("unknown paper size %q", in.Features.MaxPaperSize)
	}

	return s.repo.Create(ctx, &model.Printer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Address:   in.Address,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		IsOpen:    in.IsOpen,
		Features:  in.Features,
		CreatedAt: s.now().UTC(),
	})
}

func (s *printerService) SetOpen(ctx context.Context, id string, open bool) (*model.Printer, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsOpen = open
	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, notFound(err, "printer")
	}
	return out, nil
}

func (s *printerService) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, in := range DefaultPrinters {
		if _, err := s.Create(ctx, in); err != nil {
			return i, err
		}
	}
	return len(DefaultPrinters), nil
}
