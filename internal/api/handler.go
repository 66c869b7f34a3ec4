// Package api serves the statement upload front end: an upload form, a
// processing endpoint rendering the extracted credits, and a health check.
package api

import (
	"embed"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/corregab/leitor-de-extrato/internal/config"
	"github.com/corregab/leitor-de-extrato/internal/extractor"
	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/money"
	"github.com/corregab/leitor-de-extrato/internal/parser"
)

// Version is reported by the health endpoint and the CLI.
const Version = "1.0.0"

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	cfg *config.Config
	log zerolog.Logger
}

// New builds a Handler.
func New(cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

// App builds the Fiber application with all routes registered.
func (h *Handler) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "leitor-de-extrato",
		BodyLimit:             h.cfg.Upload.MaxMB << 20,
		DisableStartupMessage: true,
	})

	app.Get("/", h.HandleIndex)
	app.Post("/process", h.HandleProcess)
	app.Get("/api/health", h.HandleHealth)

	return app
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

type indexData struct {
	Flash string
}

// HandleIndex renders the upload form. Processing errors arrive as a flash
// message in the "erro" query parameter.
func (h *Handler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, "index.html", indexData{Flash: c.Query("erro")})
}

type resultRow struct {
	Date        string
	Type        string
	Description string
	Amount      string
	AmountPlain string
}

type resultsData struct {
	BankLabel string
	Rows      []resultRow
	Total     string
	Excluded  int
}

// HandleProcess accepts one or more uploaded statements for a single bank,
// extracts their credits and renders the combined results table.
func (h *Handler) HandleProcess(c *fiber.Ctx) error {
	bank := c.FormValue("bank")
	if bank == "" {
		return h.flash(c, "Selecione o banco.")
	}

	bankType, ok := bankFromForm(bank)
	if !ok {
		return h.flash(c, "Banco não suportado (use Itaú, Santander, Nubank, PicPay ou Mercado Pago).")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return h.flash(c, "Selecione um arquivo PDF para enviar.")
	}
	files := form.File["statements"]
	if len(files) == 0 {
		return h.flash(c, "Selecione um arquivo PDF para enviar.")
	}
	for _, f := range files {
		if !strings.HasSuffix(strings.ToLower(f.Filename), ".pdf") {
			return h.flash(c, "Formato inválido. Envie um arquivo .pdf")
		}
	}

	p, err := parser.New(bankType)
	if err != nil {
		return h.flash(c, fmt.Sprintf("Erro ao processar: %v", err))
	}

	var txns []models.Transaction
	for _, f := range files {
		fileTxns, err := h.processUpload(c, f, p)
		if err != nil {
			h.log.Error().Err(err).Str("file", f.Filename).Msg("statement processing failed")
			return h.flash(c, fmt.Sprintf("Erro ao processar: %v", err))
		}
		txns = append(txns, fileTxns...)
	}

	data := buildResults(p.BankName(), txns, parseExclusions(c.FormValue("exclude")))
	h.log.Info().
		Str("bank", string(bankType)).
		Int("files", len(files)).
		Int("records", len(data.Rows)).
		Int("excluded", data.Excluded).
		Msg("statements processed")

	return h.render(c, "results.html", data)
}

// processUpload stages one uploaded statement under a unique name, extracts
// its transactions and removes the staged file on every path.
func (h *Handler) processUpload(c *fiber.Ctx, f *multipart.FileHeader, p parser.Parser) ([]models.Transaction, error) {
	if err := os.MkdirAll(h.cfg.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(h.cfg.Upload.Dir, uuid.NewString()+".pdf")
	if err := c.SaveFile(f, path); err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}
	defer os.Remove(path)

	pages, err := extractor.ExtractPages(path, extractor.Options{
		OCR:     h.cfg.OCR.Enabled,
		OCRLang: h.cfg.OCR.Lang,
	})
	if err != nil {
		return nil, err
	}

	return p.Parse(pages), nil
}

// parseExclusions splits the comma-separated exclusion names, lowercased
// for case-insensitive matching.
func parseExclusions(raw string) []string {
	var out []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// buildResults renders transactions into display rows, dropping those whose
// description contains an excluded name and summing the rest.
func buildResults(bankLabel string, txns []models.Transaction, exclusions []string) resultsData {
	data := resultsData{BankLabel: bankLabel}

	total := money.Zero()
	for _, txn := range txns {
		if descriptionExcluded(txn.Description, exclusions) {
			data.Excluded++
			continue
		}
		date := txn.Date
		if date == "" {
			date = "-"
		}
		data.Rows = append(data.Rows, resultRow{
			Date:        date,
			Type:        txn.Type,
			Description: txn.Description,
			Amount:      "R$ " + txn.Amount.Comma(),
			AmountPlain: txn.Amount.Comma(),
		})
		total = total.Add(txn.Amount)
	}

	data.Total = "R$ " + total.Comma()
	return data
}

func descriptionExcluded(description string, exclusions []string) bool {
	lower := strings.ToLower(description)
	for _, name := range exclusions {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

func bankFromForm(value string) (models.BankType, bool) {
	switch strings.ToLower(value) {
	case "itau", "itau_new":
		return models.BankItau, true
	case "santander":
		return models.BankSantander, true
	case "nubank":
		return models.BankNubank, true
	case "picpay":
		return models.BankPicPay, true
	case "mercadopago":
		return models.BankMercadoPago, true
	}
	return "", false
}

func (h *Handler) flash(c *fiber.Ctx, msg string) error {
	return c.Redirect("/?erro=" + url.QueryEscape(msg))
}

func (h *Handler) render(c *fiber.Ctx, name string, data any) error {
	c.Type("html", "utf-8")
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return c.SendString(buf.String())
}
