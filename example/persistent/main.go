package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/klauspost/compress/gzip"
	"github.com/siherrmann/starcalc"
	"github.com/siherrmann/starcalc/core/resolve"
	"github.com/siherrmann/starcalc/database"
	"github.com/siherrmann/starcalc/example/data"
	"github.com/siherrmann/starcalc/helper"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgresContainer starts a PostgreSQL container that keeps its data in ./data between runs.
func startPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	dataDir := "./data"
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, "", fmt.Errorf("failed to create data directory: %w", err)
	}
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get absolute path for data directory: %w", err)
	}

	// An initialized data directory skips the restart during init,
	// so the ready message only appears once.
	waitOccurrences := 2
	if _, err := os.Stat(filepath.Join(absDataDir, "PG_VERSION")); err == nil {
		waitOccurrences = 1
		fmt.Printf("Using existing persistent database in: %s\n", absDataDir)
	} else {
		fmt.Printf("Creating new persistent database in: %s\n", absDataDir)
	}

	pgContainer, err := postgres.Run(
		ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("database"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(waitOccurrences),
		),
		testcontainers.WithHostConfigModifier(func(hc *container.HostConfig) {
			hc.Mounts = append(hc.Mounts, mount.Mount{
				Type:   mount.TypeBind,
				Source: absDataDir,
				Target: "/var/lib/postgresql/data",
			})
		}),
	)
	if err != nil {
		return nil, "", fmt.Errorf("error starting postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("error getting connection string: %w", err)
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, "", fmt.Errorf("error parsing connection string: %v", err)
	}

	return pgContainer.Terminate, u.Port(), nil
}

// openCatalogue opens a catalogue csv from a local path or an http(s) url.
// Files ending in .gz are decompressed on the fly.
func openCatalogue(source string) (io.ReadCloser, error) {
	var body io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source) // #nosec G107 -- url is given by the user
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to download %s: status %d", source, resp.StatusCode)
		}
		body = resp.Body
	} else {
		file, err := os.Open(filepath.Clean(source))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", source, err)
		}
		body = file
	}

	if !strings.HasSuffix(source, ".gz") {
		return body, nil
	}

	gz, err := gzip.NewReader(body)
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("failed to decompress %s: %w", source, err)
	}
	return &gzipReadCloser{Reader: gz, body: body}, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	body io.Closer
}

func (g *gzipReadCloser) Close() error {
	if err := g.Reader.Close(); err != nil {
		g.body.Close()
		return err
	}
	return g.body.Close()
}

func main() {
	source := flag.String("catalogue", "", "path or url of a catalogue csv (.csv or .csv.gz), defaults to the bundled sample")
	star := flag.String("star", "Sol", "proper name of the star to search around")
	radius := flag.String("radius", "3", "search radius in parsecs")
	flag.Parse()

	teardown, dbPort, err := startPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

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

	store, ok := s.Store.(*database.Store)
	if !ok {
		log.Fatalf("Unexpected store type %T", s.Store)
	}

	// Skip the import if the persistent database already holds a catalogue
	count, err := store.Catalogue.CountCatalogue(ctx)
	if err != nil {
		log.Fatalf("Failed to count catalogue: %v", err)
	}

	if count > 0 {
		fmt.Printf("Catalogue already holds %d stars, skipping import\n", count)
	} else {
		var r io.Reader = strings.NewReader(data.Stars)
		if *source != "" {
			fmt.Printf("Importing catalogue from %s...\n", *source)
			rc, err := openCatalogue(*source)
			if err != nil {
				log.Fatalf("Failed to open catalogue: %v", err)
			}
			defer rc.Close()
			r = rc
		}

		loaded, err := s.LoadCatalogue(ctx, r, false)
		if err != nil {
			log.Fatalf("Failed to load catalogue: %v", err)
		}
		if _, err := s.LoadHabitable(ctx, strings.NewReader(data.Habitable), false); err != nil {
			log.Fatalf("Failed to load habitable stars: %v", err)
		}
		fmt.Printf("Imported %d stars\n", loaded)
	}

	r, _, err := apd.NewFromString(*radius)
	if err != nil {
		log.Fatalf("Invalid radius %q: %v", *radius, err)
	}

	origin, neighbors, err := s.Nearby(ctx, resolve.Input{Identifier: *star, Catalogue: "proper"}, r)
	if err != nil {
		log.Fatalf("Failed to find neighbors: %v", err)
	}

	fmt.Printf("\n%d stars within %s parsecs of %s:\n", len(neighbors), r, origin.Ref)
	for i, n := range neighbors {
		fmt.Printf("%d. %s (%s pc)\n", i+1, n.DisplayID, n.Distance.Text('f'))
	}
}
