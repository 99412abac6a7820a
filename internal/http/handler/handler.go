package handler

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docsum/internal/service"
)

// TotalCountHeader carries the unpaginated row count of a listing.
const TotalCountHeader = "X-Total-Count"

type rootResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Prompt string `json:"prompt"`
}

// AskResponse is the answer to POST /ask.
type AskResponse struct {
	Response string `json:"response"`
}

// Root godoc
// @Summary Service banner
// @Tags system
// @Produce json
// @Success 200 {object} rootResponse
// @Router / [get]
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(rootResponse{Message: "Backend is running"})
	}
}

// HealthCheck godoc
// @Summary Readiness probe (database ping)
// @Tags system
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.JSON(healthResponse{Status: "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags system
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// SummarizeDocument godoc
// @Summary Upload and summarize a document
// @Description Accepts .txt, .md, .pdf and .docx files in the multipart field "file".
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document to summarize"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /summarize [post]
func SummarizeDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := svc.Summarize(c.UserContext(), f, fh.Filename, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments godoc
// @Summary List documents, newest first
// @Description Returns a bare array without document content. Omitting limit returns every document.
// @Tags documents
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "rows to skip"
// @Success 200 {array} model.Document
// @Header 200 {integer} X-Total-Count "total number of documents"
// @Failure 400 {object} errorPayload
// @Router /files [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "0"))
		if err != nil || limit < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil || offset < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		for i := range res.Items {
			res.Items[i].Content = ""
		}
		c.Set(TotalCountHeader, strconv.Itoa(res.Total))
		return c.JSON(res.Items)
	}
}

// GetDocument godoc
// @Summary Get a document with its full text
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /file/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument godoc
// @Summary Delete a document
// @Tags documents
// @Param id path string true "document id"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /file/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteAllDocuments godoc
// @Summary Delete every document
// @Tags documents
// @Success 204
// @Failure 500 {object} errorPayload
// @Router /files [delete]
func DeleteAllDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := svc.DeleteAll(c.UserContext()); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Ask godoc
// @Summary Ask the AI assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body AskRequest true "prompt"
// @Success 200 {object} AskResponse
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /ask [post]
func Ask(svc service.AssistantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AskRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		}
		answer, err := svc.Ask(c.UserContext(), req.Prompt)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(AskResponse{Response: answer})
	}
}
