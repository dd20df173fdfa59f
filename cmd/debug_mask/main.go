package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pyhub-apps/pdftable-golang"
	"github.com/pyhub-apps/pdftable-golang/pkg/config"
	"github.com/pyhub-apps/pdftable-golang/pkg/raster"
)

func main() {
	pageNum := flag.Int("page", 1, "page number (1-based)")
	out := flag.String("o", "mask.bmp", "output BMP file")
	traced := flag.Bool("traced", false, "write the flood-filled and opened cell mask instead of the raw line mask")
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: debug_mask [flags] <pdf_file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	doc, err := pdftable.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(*pageNum - 1)
	if err != nil {
		log.Fatalf("Failed to get page: %v", err)
	}

	src, err := pdftable.NewSource(doc, cfg)
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	cp := src.Canonical(page)
	mask := pdftable.LineMask(cp, cfg.Scale)

	seg := raster.Segment(mask, cfg.RasterOptions())
	fmt.Printf("Page %d: %.2f x %.2f, %d line(s), %d rect(s)\n", cp.Number, cp.Width, cp.Height, len(cp.Lines), len(cp.Rects))
	fmt.Printf("Traced %d cell(s) in %d table(s)\n", len(seg.Cells), len(seg.Tables))
	for i, t := range seg.Tables {
		fmt.Printf("  Table %d: %s\n", i+1, t)
	}
	if *traced {
		mask = seg.Mask()
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()

	if err := raster.WriteBMP(f, mask); err != nil {
		log.Fatalf("Failed to write BMP: %v", err)
	}
	fmt.Printf("Wrote %dx%d mask to %s\n", mask.Width(), mask.Height(), *out)
}
