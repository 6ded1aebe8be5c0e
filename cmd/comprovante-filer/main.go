package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/brmoraes/comprovante-filer/internal/filing"
	"github.com/brmoraes/comprovante-filer/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	fs := ff.NewFlagSet("comprovante-filer")
	var (
		inbox       = fs.StringLong("inbox", "", "Directory with incoming receipts (required)")
		archiveRoot = fs.StringLong("archive", "", "Root of the year/month archive tree (required)")
		journalPath = fs.StringLong("journal", "comprovante-filer.db", "Processing journal database path")
		ocrLang     = fs.StringLong("ocr-lang", "por", "Tesseract language model")
		scannerType = fs.StringLong("scanner", "none", "LLM fallback for unrecognized receipts: 'none', 'gemini' or 'ollama'")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, qwen2-vl)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("COMPROVANTE"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if *inbox == "" || *archiveRoot == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: --inbox and --archive are required")
		os.Exit(1)
	}

	if info, err := os.Stat(*inbox); err != nil || !info.IsDir() {
		slog.Error("Inbox directory does not exist", "inbox", *inbox)
		os.Exit(1)
	}

	// One run at a time per inbox; a cron overlap must not race file moves
	release, err := filing.AcquireLock(filepath.Join(*inbox, ".comprovante.lock"))
	if err != nil {
		slog.Error("Failed to acquire lock", "error", err)
		os.Exit(1)
	}
	defer release()

	slog.Info("Opening journal...", "path", *journalPath)
	journal, err := filing.NewJournal(*journalPath)
	if err != nil {
		slog.Error("Failed to open journal", "error", err)
		os.Exit(1)
	}
	defer journal.Close()

	archive, err := filing.NewArchive(*archiveRoot)
	if err != nil {
		slog.Error("Failed to initialize archive", "error", err)
		os.Exit(1)
	}

	extractor := scanning.NewDocumentExtractor(*ocrLang)
	defer extractor.Close()

	var fallback scanning.Scanner
	switch *scannerType {
	case "none":
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini fallback scanner...", "model", *geminiModel)
		fallback, err = scanning.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama fallback scanner...", "url", *ollamaURL, "model", *ollamaModel)
		fallback, err = scanning.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid scanner type", "type", *scannerType, "valid", "none, gemini or ollama")
		os.Exit(1)
	}
	if fallback != nil {
		defer fallback.Close()
	}

	service := filing.NewService(*inbox, extractor, fallback, archive, journal, slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := service.Run(ctx); err != nil {
		slog.Error("Batch run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Batch complete")
}
