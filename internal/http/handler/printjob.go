package handler

import (
	"github.com/gofiber/fiber/v2"

	"printshop/internal/model"
	"printshop/internal/service"
)

// ListPrintJobs returns the jobs of ?userId=, newest first.
//
//	@Summary	List a user's print jobs
//	@Tags		print-jobs
//	@Produce	json
//	@Param		userId	query		string	true	"owner"
//	@Success	200		{object}	successPayload{data=[]model.PrintJob}
//	@Router		/api/print-jobs [get]
func ListPrintJobs(jobSvc service.PrintJobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("userId")
		if userID == "" {
			return missingQuery(c, "userId")
		}
		jobs, err := jobSvc.ListByUser(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, jobs)
	}
}

// CreatePrintJob books a job for one of the user's documents.
//
//	@Summary	Create a print job
//	@Tags		print-jobs
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createPrintJobRequest	true	"job"
//	@Success	201		{object}	successPayload{data=model.PrintJob}
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/api/print-jobs [post]
func CreatePrintJob(jobSvc service.PrintJobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPrintJobRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		job, err := jobSvc.Create(c.UserContext(), req.toInput())
		if err != nil {
			return respondError(c, err)
		}
		return writeCreated(c, job)
	}
}

func GetPrintJob(jobSvc service.PrintJobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		job, err := jobSvc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, job)
	}
}

// UpdatePrintJobStatus moves a job forward in its lifecycle.
//
//	@Summary	Update print job status
//	@Tags		print-jobs
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"job id"
//	@Param		body	body		updateStatusRequest	true	"status"
//	@Success	200		{object}	successPayload{data=model.PrintJob}
//	@Failure	404		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/print-jobs/{id}/status [put]
func UpdatePrintJobStatus(jobSvc service.PrintJobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		var req updateStatusRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		job, err := jobSvc.UpdateStatus(c.UserContext(), id, model.JobStatus(req.Status))
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, job)
	}
}

// CancelPrintJob removes a job that has not reached ready.
func CancelPrintJob(jobSvc service.PrintJobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		if err := jobSvc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
