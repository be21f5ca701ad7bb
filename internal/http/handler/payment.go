package handler

import (
	"github.com/gofiber/fiber/v2"

	"printshop/internal/model"
	"printshop/internal/service"
)

// CreatePayment records a pending gateway transaction.
//
//	@Summary	Create a payment
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createPaymentRequest	true	"payment"
//	@Success	201		{object}	successPayload{data=model.Payment}
//	@Failure	400		{object}	errorPayload
//	@Router		/api/payments [post]
func CreatePayment(paymentSvc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPaymentRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		p, err := paymentSvc.Create(c.UserContext(), service.CreatePaymentInput{
			UserID:     req.UserID,
			PrintJobID: req.PrintJobID,
			Amount:     req.Amount,
			Currency:   req.Currency,
			ExternalID: req.ExternalPaymentID,
		})
		if err != nil {
			return respondError(c, err)
		}
		return writeCreated(c, p)
	}
}

// PaymentCallback settles a payment with the gateway's outcome.
//
//	@Summary	Payment gateway callback
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"payment id"
//	@Param		body	body		paymentCallbackRequest	true	"outcome"
//	@Success	200		{object}	successPayload{data=model.Payment}
//	@Failure	404		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/payments/{id} [put]
func PaymentCallback(paymentSvc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		var req paymentCallbackRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		p, err := paymentSvc.HandleCallback(c.UserContext(), id, req.externalID(), model.PaymentStatus(req.Status))
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, p)
	}
}

func ListPayments(paymentSvc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("userId")
		if userID == "" {
			return missingQuery(c, "userId")
		}
		payments, err := paymentSvc.ListByUser(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, payments)
	}
}
