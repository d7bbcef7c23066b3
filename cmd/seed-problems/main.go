package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codeprep/codeprep-backend/internal/config"
	"github.com/codeprep/codeprep-backend/internal/database"
	"github.com/codeprep/codeprep-backend/internal/logger"
	"github.com/codeprep/codeprep-backend/internal/model"
	"github.com/codeprep/codeprep-backend/internal/repository"
)

// seedFile is one catalog source file: <course_id>.json holding the course's
// problems ordered by problem_id. Filenames define the course ID.
type seedFile struct {
	courseID string
	path     string
}

func main() {
	var dir string
	flag.StringVar(&dir, "dir", "problems", "Directory containing <course_id>.json files")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	problemRepo := repository.NewProblemRepository(pool)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Failed to read seed directory")
	}

	var files []seedFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, seedFile{
			courseID: strings.TrimSuffix(entry.Name(), ".json"),
			path:     filepath.Join(dir, entry.Name()),
		})
	}

	if len(files) == 0 {
		fmt.Printf("No .json files found in %s, nothing to do.\n", dir)
		return
	}

	fmt.Printf("=== Seeding %d course(s) ===\n", len(files))

	totalUpserted := 0
	for _, f := range files {
		raw, err := os.ReadFile(f.path)
		if err != nil {
			log.Fatal().Err(err).Str("path", f.path).Msg("Failed to read seed file")
		}

		var problems []model.Problem
		if err := json.Unmarshal(raw, &problems); err != nil {
			log.Fatal().Err(err).Str("path", f.path).Msg("Failed to parse seed file")
		}

		for i := range problems {
			p := &problems[i]
			p.CourseID = f.courseID
			if p.ProblemID <= 0 {
				// Default to file order when the source omits ordinals.
				p.ProblemID = i + 1
			}

			if err := problemRepo.Upsert(ctx, p); err != nil {
				fmt.Printf("Error upserting %s/%d (%s): %v\n", p.CourseID, p.ProblemID, p.Title, err)
				continue
			}
			totalUpserted++
		}

		fmt.Printf("Seeded course %q: %d problems\n", f.courseID, len(problems))
	}

	fmt.Printf("\nSeed completed! Upserted %d problems across %d courses.\n", totalUpserted, len(files))
}
