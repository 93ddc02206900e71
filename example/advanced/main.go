package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/siherrmann/starcalc"
	"github.com/siherrmann/starcalc/core/resolve"
	"github.com/siherrmann/starcalc/example/data"
	"github.com/siherrmann/starcalc/model"
)

// catalogues restricts lookups to the internal id, proper names and gliese numbers
const catalogues = `
statements:
  habitable: SELECT * FROM habitable WHERE hip = $1
  neighbors: >-
    SELECT * FROM catalogue
    WHERE (x0 BETWEEN $1 AND $2) AND (y0 BETWEEN $3 AND $4) AND (z0 BETWEEN $5 AND $6)
catalogues:
  id:
    name: AT-HYG
    lookup_statement: SELECT * FROM catalogue WHERE id = $1
    list_statement: SELECT id FROM catalogue ORDER BY id
    numeric: true
    prefix_display_name: true
  proper:
    name: Proper name
    lookup_statement: SELECT * FROM catalogue WHERE proper = $1
    list_statement: SELECT proper FROM catalogue WHERE proper IS NOT NULL ORDER BY proper
  gl:
    name: Gliese
    lookup_statement: SELECT * FROM catalogue WHERE gl = $1
    list_statement: SELECT gl FROM catalogue WHERE gl IS NOT NULL ORDER BY gl
`

func main() {
	dir, err := os.MkdirTemp("", "starcalc-advanced")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	config, err := model.LoadCatalogueConfig(strings.NewReader(catalogues))
	if err != nil {
		log.Fatalf("Failed to load catalogue configuration: %v", err)
	}

	s, err := starcalc.NewStarCalcSQLite(filepath.Join(dir, "starcalc.db"), config)
	if err != nil {
		log.Fatalf("Failed to create starcalc: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	fmt.Println("=== Loading Data ===")
	stars, err := s.LoadCatalogue(ctx, strings.NewReader(data.Stars), false)
	if err != nil {
		log.Fatalf("Failed to load catalogue: %v", err)
	}
	habitable, err := s.LoadHabitable(ctx, strings.NewReader(data.Habitable), false)
	if err != nil {
		log.Fatalf("Failed to load habitable stars: %v", err)
	}
	fmt.Printf("Loaded %d stars and %d habitable entries\n", stars, habitable)

	// 1. Catalogues outside the configuration are rejected
	fmt.Println("\n=== 1. Unknown Catalogue ===")
	_, err = s.Resolve(ctx, resolve.Input{Identifier: "71683", Catalogue: "hip"})
	if errors.Is(err, model.ErrUnknownCatalogue) {
		fmt.Printf("Rejected as expected: %v\n", err)
	} else {
		log.Fatalf("Expected unknown catalogue error, got: %v", err)
	}

	// 2. Identifiers of the configured catalogues
	fmt.Println("\n=== 2. Gliese Identifiers ===")
	ids, err := s.ListIdentifiers(ctx, "gl")
	if err != nil {
		log.Fatalf("Failed to list identifiers: %v", err)
	}
	fmt.Println(strings.Join(ids, ", "))

	// 3. Distance between two stars moving apart over time
	fmt.Println("\n=== 3. Distance Across Epochs ===")
	sol := resolve.Input{Identifier: "Sol", Catalogue: "proper"}
	barnard := resolve.Input{Identifier: "Gl 699", Catalogue: "gl"}
	for _, epoch := range []int{2000, 3000, 10000, 12000} {
		comparison, err := s.Compare(ctx, sol, barnard, epoch)
		if err != nil {
			log.Fatalf("Failed to compare stars: %v", err)
		}
		fmt.Printf("  %5d: %s parsecs\n", epoch, comparison.Distance.Text('f'))
	}

	// 4. Notes on a star
	fmt.Println("\n=== 4. Notebook ===")
	barnardStar, err := s.Resolve(ctx, barnard)
	if err != nil {
		log.Fatalf("Failed to resolve star: %v", err)
	}
	changed, err := s.SaveNote(ctx, barnardStar.IDs.ID, "Largest known proper motion.")
	if err != nil {
		log.Fatalf("Failed to save note: %v", err)
	}
	fmt.Printf("Saved note (changed: %t)\n", changed)
	changed, err = s.SaveNote(ctx, barnardStar.IDs.ID, "Largest known proper motion.")
	if err != nil {
		log.Fatalf("Failed to save note: %v", err)
	}
	fmt.Printf("Saved the same note again (changed: %t)\n", changed)

	// 5. Reloading the catalogue keeps stars with notes
	fmt.Println("\n=== 5. Replacing the Catalogue ===")
	if _, err := s.LoadCatalogue(ctx, strings.NewReader("id,proper,x0,y0,z0\n0,Sol,0,0,0\n"), true); err != nil {
		log.Fatalf("Failed to replace catalogue: %v", err)
	}
	names, err := s.ListIdentifiers(ctx, "proper")
	if err != nil {
		log.Fatalf("Failed to list identifiers: %v", err)
	}
	fmt.Printf("Remaining stars: %s\n", strings.Join(names, ", "))

	star, err := s.Resolve(ctx, resolve.Input{Identifier: fmt.Sprint(barnardStar.IDs.ID), Catalogue: "id"})
	if err != nil {
		log.Fatalf("Failed to resolve star: %v", err)
	}
	if star.Notes != nil {
		fmt.Printf("%s: %s\n", star.Ref, *star.Notes)
	}

	// 6. Neighbors of Sol after the reload
	fmt.Println("\n=== 6. Neighbors ===")
	origin, neighbors, err := s.Nearby(ctx, sol, apd.New(25, -1))
	if err != nil {
		log.Fatalf("Failed to find neighbors: %v", err)
	}
	fmt.Printf("%d stars within 2.5 parsecs of %s\n", len(neighbors), origin.Ref)
	for _, n := range neighbors {
		fmt.Printf("  %s (%s pc)\n", n.DisplayID, n.Distance.Text('f'))
	}

	fmt.Println("\n=== Advanced Example Completed Successfully! ===")
}
