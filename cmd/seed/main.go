// Command seed checks a seed dataset and prints a per-backend summary.
// The server refuses to start on a dataset that fails here.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"devcloud/internal/config"
	"devcloud/internal/seed"
	hubService "devcloud/internal/service/hub"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	path := flag.String("path", cfg.SeedPath, "Seed YAML to check (empty = embedded dataset)")
	asJSON := flag.Bool("json", false, "Print the validation report as JSON")
	flag.Parse()

	dataset, err := seed.Load(*path)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}
	report := hubService.ValidateSnapshot(dataset.Services, dataset.Projects, dataset.Snapshot())

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
	} else {
		printSummary(dataset)
		for _, issue := range report.Issues {
			fmt.Printf("%-7s %-6s %s\n", issue.Severity, issue.FileID, issue.Message)
		}
		fmt.Printf("%d error(s), %d warning(s)\n", report.Errors(), report.Warnings())
	}

	if !report.OK() {
		os.Exit(1)
	}
}

func printSummary(d *seed.Dataset) {
	counts := make(map[string]int)
	for _, f := range d.Files {
		counts[f.BackendID]++
	}
	for _, s := range d.Services {
		fmt.Printf("%-12s %-14s %d item(s)\n", s.ID, s.Name, counts[s.ID])
	}

	inProject := make(map[string]int)
	for _, f := range d.Files {
		if f.ProjectID != nil {
			inProject[*f.ProjectID]++
		}
	}
	for _, p := range d.Projects {
		fmt.Printf("%-12s %-14s %d item(s)\n", p.ID, "["+p.Name+"]", inProject[p.ID])
	}
	fmt.Printf("%d agent profile(s)\n", len(d.Agents))
}
