package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/siherrmann/starcalc"
	"github.com/siherrmann/starcalc/core/resolve"
	"github.com/siherrmann/starcalc/example/data"
	"github.com/siherrmann/starcalc/helper"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	s, err := starcalc.NewStarCalc(dbConfig, nil)
	if err != nil {
		log.Fatalf("Failed to create starcalc: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	fmt.Println("Loading sample catalogue...")
	count, err := s.LoadCatalogue(ctx, strings.NewReader(data.Stars), false)
	if err != nil {
		log.Fatalf("Failed to load catalogue: %v", err)
	}
	fmt.Printf("Loaded %d stars\n", count)

	if _, err := s.LoadHabitable(ctx, strings.NewReader(data.Habitable), false); err != nil {
		log.Fatalf("Failed to load habitable stars: %v", err)
	}

	// Resolve a star by its hipparcos number
	star, err := s.Resolve(ctx, resolve.Input{Identifier: "71683", Catalogue: "hip"})
	if err != nil {
		log.Fatalf("Failed to resolve star: %v", err)
	}
	fmt.Printf("\n%s is %s, %s parsecs away, habitable: %t\n",
		star.Ref, *star.IDs.Proper, star.Position.Dist.Text('f'), star.Habitable)

	// Distance between two stars now and in ten thousand years
	for _, epoch := range []int{2000, 12000} {
		comparison, err := s.Compare(ctx,
			resolve.Input{Identifier: "Sol", Catalogue: "proper"},
			resolve.Input{Identifier: "Gl 699", Catalogue: "gl"},
			epoch,
		)
		if err != nil {
			log.Fatalf("Failed to compare stars: %v", err)
		}
		fmt.Printf("The distance between %s and %s in %d is %s parsecs.\n",
			comparison.Stars[0].Ref, comparison.Stars[1].Ref, epoch, comparison.Distance.Text('f'))
	}

	// Neighbors of Sol within two parsecs
	radius := apd.New(2, 0)
	origin, neighbors, err := s.Nearby(ctx, resolve.Input{Identifier: "Sol", Catalogue: "proper"}, radius)
	if err != nil {
		log.Fatalf("Failed to find neighbors: %v", err)
	}

	fmt.Printf("\nFound %d stars within %s parsecs of %s:\n", len(neighbors), radius, origin.Ref)
	for i, n := range neighbors {
		fmt.Printf("%d. %s (%s pc)\n", i+1, n.DisplayID, n.Distance.Text('f'))
	}

	fmt.Println("\nBasic example completed successfully!")
}
