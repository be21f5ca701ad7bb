package handler

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"printshop/internal/service"
)

func ListPrinters(printerSvc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		printers, err := printerSvc.ListAll(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, printers)
	}
}

// NearbyPrinters ranks printers around ?lat=&lng= within ?radius= km,
// closest first. radius defaults to defaultRadiusKm.
//
//	@Summary	Find nearby printers
//	@Tags		printers
//	@Produce	json
//	@Param		lat		query		number	true	"latitude"
//	@Param		lng		query		number	true	"longitude"
//	@Param		radius	query		number	false	"radius in km"
//	@Success	200		{object}	successPayload{data=[]model.PrinterLocation}
//	@Failure	400		{object}	errorPayload
//	@Router		/api/printers/nearby [get]
func NearbyPrinters(printerSvc service.PrinterService, defaultRadiusKm float64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, ok := finiteQuery(c, "lat")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, CodeValidation, "invalid location parameters")
		}
		lng, ok := finiteQuery(c, "lng")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, CodeValidation, "invalid location parameters")
		}
		radius := defaultRadiusKm
		if c.Query("radius") != "" {
			if radius, ok = finiteQuery(c, "radius"); !ok {
				return writeError(c, fiber.StatusBadRequest, CodeValidation, "invalid radius")
			}
		}

		printers, err := printerSvc.FindNearby(c.UserContext(), lat, lng, radius)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, printers)
	}
}

// finiteQuery parses a query parameter as a finite float; NaN and Inf are
// rejected.
func finiteQuery(c *fiber.Ctx, key string) (float64, bool) {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func GetPrinter(printerSvc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		p, err := printerSvc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, p)
	}
}

// CreatePrinter adds a print location to the directory.
//
//	@Summary	Add a printer
//	@Tags		printers
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createPrinterRequest	true	"printer"
//	@Success	201		{object}	successPayload{data=model.Printer}
//	@Failure	400		{object}	errorPayload
//	@Router		/api/printers [post]
func CreatePrinter(printerSvc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPrinterRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		p, err := printerSvc.Create(c.UserContext(), req.toInput())
		if err != nil {
			return respondError(c, err)
		}
		return writeCreated(c, p)
	}
}

// SetPrinterOpen lets a vendor open or close their shop.
func SetPrinterOpen(printerSvc service.PrinterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		var req setOpenRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		p, err := printerSvc.SetOpen(c.UserContext(), id, *req.IsOpen)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, p)
	}
}
