package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docsum/internal/service"
)

// RegisterRoutes attaches the summarizer API to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, askSvc service.AssistantService) {
	app.Get("/", Root())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/summarize", SummarizeDocument(docSvc))
	app.Get("/files", ListDocuments(docSvc))
	app.Delete("/files", DeleteAllDocuments(docSvc))
	app.Get("/file/:id", GetDocument(docSvc))
	app.Delete("/file/:id", DeleteDocument(docSvc))

	app.Post("/ask", Ask(askSvc))
}
