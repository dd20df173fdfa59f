package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pyhub-apps/pdftable-golang"
	"github.com/pyhub-apps/pdftable-golang/pkg/config"
)

func main() {
	pageNum := flag.Int("page", 0, "page number (1-based, 0 for all pages)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: extract_words [-page n] <pdf_file>")
		os.Exit(2)
	}

	doc, err := pdftable.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	src, err := pdftable.NewSource(doc, config.Default())
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	fmt.Printf("Document has %d pages\n", doc.PageCount())
	for _, page := range doc.GetPages() {
		if *pageNum != 0 && page.GetPageNumber() != *pageNum {
			continue
		}

		cp := src.Canonical(page)
		fmt.Printf("\n=== Page %d (rotation %d) ===\n", cp.Number, page.GetRotation())
		fmt.Printf("Size: %.2f x %.2f\n", cp.Width, cp.Height)

		fragments := pdftable.Fragments(cp.Words)
		fmt.Printf("%d fragment(s)\n", len(fragments))
		for _, f := range fragments {
			fmt.Printf("  %-40s %q\n", f.Rect, f.Text)
		}
	}
}
