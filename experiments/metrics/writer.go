package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder for one experiment run.
func NewWriter(root, experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, experiment, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the run's output directory.
func (w *Writer) Dir() string { return w.baseDir }

// WriteGames writes one row per game.
func (w *Writer) WriteGames(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"id", "seed", "lineup", "steps", "turns",
		"mayor_score", "industry_score", "urbanist_score",
		"mayor_hit_mine", "city_complete", "duration_ms",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			strconv.FormatUint(r.Seed, 10),
			r.Lineup,
			strconv.Itoa(r.Steps),
			strconv.Itoa(r.Turns),
			strconv.FormatFloat(r.MayorScore, 'f', -1, 64),
			strconv.FormatFloat(r.IndustryScore, 'f', -1, 64),
			strconv.FormatFloat(r.UrbanistScore, 'f', -1, 64),
			strconv.FormatBool(r.MayorHitMine),
			strconv.FormatBool(r.CityComplete),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record %d: %w", r.ID, err)
		}
	}
	return nil
}
