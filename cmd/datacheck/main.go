// datacheck loads every data file named in the config and reports what it
// found, so broken catalogs fail before a creation server starts.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lawnchairsociety/dungeonkit/internal/character"
	"github.com/lawnchairsociety/dungeonkit/internal/config"
	"github.com/lawnchairsociety/dungeonkit/internal/help"
	"github.com/lawnchairsociety/dungeonkit/internal/interior"
	"github.com/lawnchairsociety/dungeonkit/internal/namefilter"
)

func main() {
	configFile := flag.String("config", "data/dungeonkit.yaml", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	failed := false

	catalog := interior.DefaultCatalog()
	if path := cfg.Interior.CatalogPath; path != "" {
		if catalog, err = interior.LoadCatalog(path); err != nil {
			fmt.Println("Error loading prefab catalog:", err)
			failed = true
			catalog = interior.DefaultCatalog()
		}
	}
	fmt.Printf("Prefabs: floor=%s wall=%s, %d interior items\n", catalog.Floor.ID, catalog.Wall.ID, len(catalog.Items))
	for _, it := range catalog.Items {
		shape := "none"
		if it.Collider != nil {
			shape = it.Collider.Shape
		}
		fmt.Printf("  - %s (%s)\n", it.ID, shape)
	}

	if path := cfg.Creation.CatalogTextPath; path != "" {
		if err := character.LoadCatalogText(path); err != nil {
			fmt.Println("Error loading catalog text:", err)
			failed = true
		}
	}
	fmt.Printf("\nLineages: %d  Callings: %d  Backgrounds: %d\n",
		len(character.Lineages()), len(character.Callings()), len(character.Backgrounds()))
	for i, o := range character.Callings() {
		prefab := "(none)"
		if i < len(cfg.Creation.PlayerPrefabs) {
			prefab = cfg.Creation.PlayerPrefabs[i]
		}
		fmt.Printf("  - %s -> %s\n", o.Label, prefab)
	}
	if len(cfg.Creation.PlayerPrefabs) < len(character.Callings()) {
		fmt.Println("Warning: some callings have no player prefab")
	}

	if path := cfg.Creation.NameFilterPath; path != "" {
		nf, err := namefilter.LoadConfig(path)
		if err != nil {
			fmt.Println("Error loading name filter:", err)
			failed = true
		} else {
			fmt.Printf("\nName filter: %d banned words, %d banned names\n", len(nf.BannedWords), len(nf.BannedNames))
		}
	}

	if path := cfg.Creation.HelpPath; path != "" {
		if _, err := help.Load(path); err != nil {
			fmt.Println("Error loading help:", err)
			failed = true
		} else {
			fmt.Println("\nHelp file loaded")
		}
	}

	if failed {
		os.Exit(1)
	}
}
