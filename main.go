package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corregab/leitor-de-extrato/internal/api"
	"github.com/corregab/leitor-de-extrato/internal/config"
	"github.com/corregab/leitor-de-extrato/internal/extractor"
	"github.com/corregab/leitor-de-extrato/internal/logger"
	"github.com/corregab/leitor-de-extrato/internal/models"
	"github.com/corregab/leitor-de-extrato/internal/parser"
	"github.com/corregab/leitor-de-extrato/internal/writer"
)

type options struct {
	bank         models.BankType
	output       string
	format       string
	amountsOnly  bool
	decimalComma bool
	ocr          bool
}

func main() {
	bankFlag := flag.String("bank", "", "Bank: itau, santander, nubank, picpay, mercadopago (auto-detected if omitted)")
	outputFlag := flag.String("out", "", "Output file path (prints to stdout if omitted)")
	formatFlag := flag.String("format", "csv", "Output format: csv or json")
	amountsFlag := flag.Bool("amounts-only", false, "Print only the amounts, one per line")
	commaFlag := flag.Bool("decimal-comma", false, "Use comma as the decimal separator (with -amounts-only)")
	ocrFlag := flag.Bool("ocr", false, "Enable OCR fallback for scanned statements (requires tesseract+poppler)")
	serveFlag := flag.Bool("serve", false, "Start the upload web server instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Leitor de Extrato

Extracts credit (incoming) transactions from Brazilian bank statement PDFs
(Itaú, Santander, Nubank, PicPay, Mercado Pago).

Usage:
  leitor-de-extrato [flags] <extrato.pdf> [extrato2.pdf ...]
  leitor-de-extrato -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Auto-detect the bank and print a table
  leitor-de-extrato extrato.pdf

  # Explicit bank, CSV output
  leitor-de-extrato -bank=itau -out=creditos.csv extrato.pdf

  # JSON output
  leitor-de-extrato -bank=nubank -format=json -out=creditos.json extrato.pdf

  # Amounts only, comma decimals, for pasting into a spreadsheet
  leitor-de-extrato -bank=santander -amounts-only -decimal-comma extrato.pdf

  # Scanned statement via OCR
  leitor-de-extrato -bank=mercadopago -ocr extrato.pdf

  # Web upload interface
  leitor-de-extrato -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("leitor-de-extrato v%s\n", api.Version)
		os.Exit(0)
	}

	if *serveFlag {
		serve()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *formatFlag != "csv" && *formatFlag != "json" {
		fatalf("Unknown format %q. Supported: csv, json\n", *formatFlag)
	}

	var bankType models.BankType
	if *bankFlag != "" {
		bt, ok := bankFromFlag(*bankFlag)
		if !ok {
			fatalf("Unknown bank %q. Supported: itau, santander, nubank, picpay, mercadopago\n", *bankFlag)
		}
		bankType = bt
	}

	if *ocrFlag && !extractor.IsOCRAvailable() {
		fatalf("OCR requested but tesseract/pdftoppm were not found in PATH\n")
	}

	opts := options{
		bank:         bankType,
		output:       *outputFlag,
		format:       *formatFlag,
		amountsOnly:  *amountsFlag,
		decimalComma: *commaFlag,
		ocr:          *ocrFlag,
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Erro ao processar %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath string, opts options) error {
	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	pages, err := extractor.ExtractPages(inputPath, extractor.Options{OCR: opts.ocr})
	if err != nil {
		return err
	}

	effectiveBank := opts.bank
	if effectiveBank == "" {
		detected, err := parser.AutoDetect(pages)
		if err != nil {
			return err
		}
		effectiveBank = detected
		fmt.Fprintf(os.Stderr, "Banco detectado: %s\n", effectiveBank)
	}

	p, err := parser.New(effectiveBank)
	if err != nil {
		return err
	}

	txns := p.Parse(pages)

	if len(txns) == 0 {
		fmt.Println("Nenhuma entrada encontrada com as heurísticas aplicadas.")
		fmt.Println("Revise o arquivo ou use -ocr se o PDF for escaneado.")
		return nil
	}

	if opts.amountsOnly {
		if opts.output != "" {
			if err := writer.WriteAmountsToFile(opts.output, txns, opts.decimalComma); err != nil {
				return err
			}
			fmt.Printf("Salvos %d valores em %s\n", len(txns), opts.output)
			return nil
		}
		writer.WriteAmounts(os.Stdout, txns, opts.decimalComma)
		return nil
	}

	if opts.output == "" {
		writer.WriteTable(os.Stdout, p.BankName(), txns)
		return nil
	}

	if opts.format == "json" || strings.HasSuffix(strings.ToLower(opts.output), ".json") {
		if err := writer.WriteJSONToFile(opts.output, txns); err != nil {
			return err
		}
	} else {
		w := &writer.CSVWriter{}
		if err := w.WriteToFile(opts.output, txns); err != nil {
			return err
		}
	}

	fmt.Printf("Salvas %d entradas em %s\n", len(txns), opts.output)
	return nil
}

func serve() {
	cfg := config.Load()
	log := logger.New()

	h := api.New(cfg, log)
	app := h.App()

	log.Info().Str("addr", cfg.Server.Addr()).Msg("starting upload server")
	if err := app.Listen(cfg.Server.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func bankFromFlag(value string) (models.BankType, bool) {
	switch strings.ToLower(value) {
	case "itau", "itaú":
		return models.BankItau, true
	case "santander":
		return models.BankSantander, true
	case "nubank":
		return models.BankNubank, true
	case "picpay":
		return models.BankPicPay, true
	case "mercadopago", "mercado-pago":
		return models.BankMercadoPago, true
	}
	return "", false
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
