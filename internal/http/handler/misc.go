package handler

import (
	"github.com/gofiber/fiber/v2"

	"printshop/internal/model"
	"printshop/internal/service"
)

// Estimate prices a job before it is booked.
//
//	@Summary	Quote a print job
//	@Tags		print-jobs
//	@Accept		json
//	@Produce	json
//	@Param		body	body		estimateRequest	true	"document or page count with settings"
//	@Success	200		{object}	successPayload{data=model.Quote}
//	@Failure	400		{object}	errorPayload
//	@Router		/api/estimate [post]
func Estimate(estimateSvc service.EstimateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req estimateRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		q, err := estimateSvc.Quote(c.UserContext(), service.QuoteInput{
			DocumentID: req.DocumentID,
			Pages:      req.Pages,
			Settings:   req.settingsRequest.toModel(),
			TokenType:  model.TokenType(req.TokenType),
		})
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, q)
	}
}

func SubmitContact(contactSvc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contactRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		f, err := contactSvc.Submit(c.UserContext(), req.toInput())
		if err != nil {
			return respondError(c, err)
		}
		return writeCreated(c, f)
	}
}

// DashboardStats summarises a user's jobs, pages and balance.
//
//	@Summary	User dashboard figures
//	@Tags		dashboard
//	@Produce	json
//	@Param		userId	path		string	true	"user id"
//	@Success	200		{object}	successPayload{data=model.DashboardStats}
//	@Router		/api/dashboard/stats/{userId} [get]
func DashboardStats(statsSvc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := statsSvc.UserStats(c.UserContext(), c.Params("userId"))
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, stats)
	}
}

func AdminMetrics(statsSvc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := statsSvc.AdminMetrics(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, m)
	}
}
