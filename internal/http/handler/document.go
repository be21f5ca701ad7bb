package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"printshop/internal/service"
)

// ListDocuments returns the documents of ?userId=, newest first.
//
//	@Summary	List a user's documents
//	@Tags		documents
//	@Produce	json
//	@Param		userId	query		string	true	"owner"
//	@Success	200		{object}	successPayload{data=[]model.Document}
//	@Failure	400		{object}	errorPayload
//	@Router		/api/documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("userId")
		if userID == "" {
			return missingQuery(c, "userId")
		}
		docs, err := docSvc.ListByUser(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, docs)
	}
}

// ListAllDocuments pages through every document with limit and offset.
//
//	@Summary	List all documents
//	@Tags		admin
//	@Produce	json
//	@Param		limit	query		int	false	"page size"	default(10)
//	@Param		offset	query		int	false	"offset"	default(0)
//	@Success	200		{object}	successPayload{data=service.DocumentListResult}
//	@Router		/api/admin/documents [get]
func ListAllDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, CodeValidation, "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, CodeValidation, "invalid offset")
		}

		res, err := docSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, res)
	}
}

// UploadDocument stores a multipart upload (fields: file, userId).
//
//	@Summary	Upload a document
//	@Tags		documents
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"document"
//	@Param		userId	formData	string	true	"owner"
//	@Success	201		{object}	successPayload{data=model.Document}
//	@Failure	400		{object}	errorPayload
//	@Failure	503		{object}	errorPayload
//	@Router		/api/documents/upload [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, CodeValidation, "file is required")
		}
		userID := c.FormValue("userId")
		if userID == "" {
			return writeError(c, fiber.StatusBadRequest, CodeValidation, "userId is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, CodeValidation, "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), service.UploadInput{
			UserID:      userID,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Reader:      f,
		})
		if err != nil {
			return respondError(c, err)
		}
		return writeCreated(c, doc)
	}
}

func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return writeOK(c, doc)
	}
}

// DownloadDocument streams the stored file back as an attachment.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		rc, doc, err := docSvc.Open(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Name))
		// fasthttp closes rc once the body is written
		return c.SendStream(rc, int(doc.Size))
	}
}

// DeleteDocument removes a document owned by ?userId=. Someone else's
// document is reported as not found.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := uuidParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		userID := c.Query("userId")
		if userID == "" {
			return missingQuery(c, "userId")
		}
		if err := docSvc.Delete(c.UserContext(), id, userID); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetRecommendation suggests print settings for a document. Unknown or
// malformed ids get the default suggestion.
//
//	@Summary	Suggest print settings
//	@Tags		documents
//	@Produce	json
//	@Param		documentId	path		string	true	"document id"
//	@Success	200			{object}	successPayload{data=model.Recommendation}
//	@Router		/api/ai-recommendation/{documentId} [get]
func GetRecommendation(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return writeOK(c, docSvc.Recommend(c.UserContext(), c.Params("documentId")))
	}
}
