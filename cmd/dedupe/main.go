package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/quillforge/winnow/internal/config"
	"github.com/quillforge/winnow/internal/core"
	"github.com/quillforge/winnow/internal/core/model"
	"github.com/quillforge/winnow/internal/core/report"
	"github.com/quillforge/winnow/internal/llm"
)

// Offline runner: scenario JSON in, deduplicated JSON out, optional CSV
// report of merged pairs.
func main() {
	inPath := flag.String("in", "", "input JSON file with {\"features\": [...]}")
	outPath := flag.String("out", "bdd_output_deduped.json", "output JSON file")
	reportPath := flag.String("report", "", "optional CSV duplicate report")
	cfgPath := flag.String("config", "config/config.toml", "config file")
	strategyName := flag.String("strategy", "", "override configured strategy (cosine, cosine_nli, llm)")
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", *cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	features, err := readFeatures(*inPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inPath, err)
	}
	log.Printf("Loaded %d scenarios from %s", len(features), *inPath)

	llmClient, embedderClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	engine := core.NewEngine(llmClient, embedderClient, cfg)

	result, outcome, err := engine.Run(context.Background(), *strategyName, features)
	if err != nil {
		log.Fatalf("Dedup run failed: %v", err)
	}

	if err := writeJSON(*outPath, result); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}
	log.Printf("Saved deduplicated scenarios to %s", *outPath)

	if *reportPath != "" {
		f, err := os.Create(*reportPath)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *reportPath, err)
		}
		defer f.Close()

		// Report indexes refer to ingestion order, same as result IDs.
		scenarios := make([]model.Scenario, len(features))
		for i, sc := range features {
			sc.ID = i
			scenarios[i] = sc
		}
		if err := report.WriteDuplicateCSV(f, scenarios, outcome.Verdicts); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("Saved duplicate report to %s", *reportPath)
	}

	for _, note := range result.NeedsReview {
		log.Printf("Needs review: %s", note)
	}
}

type featureFile struct {
	Features []model.Scenario `json:"features"`
}

// readFeatures accepts both the {"features": [...]} document shape and a
// bare scenario array.
func readFeatures(path string) ([]model.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc featureFile
	if err := json.Unmarshal(data, &doc); err == nil && doc.Features != nil {
		return doc.Features, nil
	}

	var list []model.Scenario
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("not a features document or scenario array: %w", err)
	}
	return list, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
