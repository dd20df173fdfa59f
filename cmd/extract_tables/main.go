package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pyhub-apps/pdftable-golang"
	"github.com/pyhub-apps/pdftable-golang/pkg/config"
	"github.com/pyhub-apps/pdftable-golang/pkg/logging"
	"github.com/pyhub-apps/pdftable-golang/pkg/structure"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	format := flag.String("format", "text", "output format: text, json, csv or markdown")
	workers := flag.Int("workers", 0, "pages processed concurrently (overrides config)")
	password := flag.String("password", "", "document password")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: extract_tables [flags] <pdf_file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	pdfPath := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	logging.SetLogger(logging.New(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	doc, err := pdftable.OpenWithPassword(pdfPath, *password)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	results, err := pdftable.Extract(ctx, doc, cfg)
	if err != nil {
		log.Fatalf("Failed to extract tables: %v", err)
	}

	for _, page := range results {
		logging.Logger().Info(pdftable.Summary(page))
	}

	if err := write(results, *format); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

func write(results []pdftable.PageResult, format string) error {
	switch format {
	case "text":
		return structure.WriteText(os.Stdout, results)
	case "json":
		data, err := structure.MarshalPages(results)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	case "csv", "markdown":
		for _, page := range results {
			for i, table := range page.Tables {
				fmt.Printf("# Page %d, table %d\n", page.Number, i+1)
				if format == "csv" {
					fmt.Print(table.ToCSV())
				} else {
					fmt.Print(table.ToMarkdown())
				}
				fmt.Println()
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
