// Command importer converts a supplier price-list CSV into the
// products.json file embedded by internal/catalog.
//
//	go run ./cmd/importer -in pricelist.csv -out internal/catalog/products.json
package main

import (
	"flag"
	"log"
	"os"

	"mawasim-api/internal/importer"
)

func main() {
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	inPath := flag.String("in", "", "supplier price-list CSV")
	outPath := flag.String("out", "internal/catalog/products.json", "output JSON path")
	flag.Parse()

	if *inPath == "" {
		logger.Fatal("missing -in flag")
	}

	in, err := os.Open(*inPath)
	if err != nil {
		logger.Fatalf("open input: %v", err)
	}
	defer in.Close()

	products, err := importer.NewCSVImporter(in).Run()
	if err != nil {
		logger.Fatalf("import: %v", err)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		logger.Fatalf("create output: %v", err)
	}
	defer out.Close()

	if err := importer.WriteJSON(out, products); err != nil {
		logger.Fatalf("write output: %v", err)
	}

	logger.Printf("wrote %d products to %s", len(products), *outPath)
}
