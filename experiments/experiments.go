// Package experiments runs batches of seeded self-play games and records
// per-game metrics to CSV.
package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"collapse/agents"
	"collapse/config"
	"collapse/engine"
	"collapse/experiments/metrics"
	"collapse/game"
)

// RunSelfPlay plays cfg.Games seeded games with the configured lineup and
// writes the results under cfg.OutputDir.
func RunSelfPlay(cfg config.Config) error {
	writer, err := metrics.NewWriter(cfg.OutputDir, "selfplay")
	if err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Str("lineup", cfg.Lineup).Int("games", cfg.Games).
		Msg("starting self-play experiment")

	records := make([]metrics.GameRecord, 0, cfg.Games)
	mineLosses, cityWins := 0, 0
	for i := 0; i < cfg.Games; i++ {
		seed := cfg.Seed + uint64(i)
		start := time.Now()

		result, err := runGame(cfg, seed)
		if err != nil {
			return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
		}

		if result.MayorHitMine {
			mineLosses++
		}
		if result.CityComplete {
			cityWins++
		}
		records = append(records, metrics.GameRecord{
			ID:            i,
			Seed:          seed,
			Lineup:        cfg.Lineup,
			Steps:         result.Steps,
			Turns:         result.Turns,
			MayorScore:    result.Returns[game.Mayor],
			IndustryScore: result.Returns[game.Industry],
			UrbanistScore: result.Returns[game.Urbanist],
			MayorHitMine:  result.MayorHitMine,
			CityComplete:  result.CityComplete,
			Duration:      time.Since(start),
		})
	}

	if err := writer.WriteGames(records); err != nil {
		return err
	}
	log.Info().Int("mine_losses", mineLosses).Int("city_wins", cityWins).
		Msg("finished self-play experiment")
	return nil
}

func runGame(cfg config.Config, seed uint64) (engine.Result, error) {
	if cfg.Lineup == "random" {
		return engine.PlayRandom(cfg.GameParams(seed), seed)
	}

	industry, err := agents.NewScriptedAdvisor(game.Industry, seed+2)
	if err != nil {
		return engine.Result{}, err
	}
	urbanist, err := agents.NewScriptedAdvisor(game.Urbanist, seed+3)
	if err != nil {
		return engine.Result{}, err
	}
	e := engine.NewLocal(cfg.GameParams(seed), [game.NumRoles]agents.Agent{
		agents.NewScriptedMayor(seed + 1),
		industry,
		urbanist,
	}, seed)
	return e.Run()
}
