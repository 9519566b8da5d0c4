package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ampscript-tools/cmd/ampc/ampscript"
	"ampscript-tools/cmd/ampc/blockhcl"
	"ampscript-tools/cmd/ampc/blockyaml"
	"ampscript-tools/cmd/ampc/catalog"
)

// appName is the single source of truth for the application name.
// All derived identifiers (env vars, config paths, error messages) are computed from it.
const appName = "ampc"

var (
	envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"
	envCatalog   = strings.ToUpper(appName) + "_CATALOG"
)

// resolveConfigDir returns the base config directory for the application.
// Priority: $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveCatalogFiles returns every catalog file to load.
// Order: configDir/catalog/*.yml → $<APPNAME>_CATALOG → flagPaths.
// Directories given through the env var or flags are expanded to their
// YAML files; plain paths are kept as-is and fail at read time if missing.
func resolveCatalogFiles(configDir string, flagPaths []string) ([]string, error) {
	files, err := globYAML(filepath.Join(configDir, "catalog"))
	if err != nil {
		return nil, err
	}
	for _, p := range append(splitColon(os.Getenv(envCatalog)), flagPaths...) {
		if fi, err := os.Stat(p); err == nil && fi.IsDir() {
			dirFiles, err := globYAML(p)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
			continue
		}
		files = append(files, p)
	}
	return files, nil
}

// globYAML returns sorted *.yml / *.yaml files in dir.
// Returns nil without error if dir does not exist.
func globYAML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// splitColon splits a colon-separated string, filtering empty parts.
func splitColon(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sources is everything loaded for one run: the registry and the canvas.
type sources struct {
	registry *ampscript.Registry
	blocks   []ampscript.Block
}

// loadSources reads catalog files and canvas files and builds the registry
// and block list. Definitions found in canvas YAML files extend the registry
// too. Blocks keep argument order; ids are filled in by position.
func loadSources(log *slog.Logger, catalogFiles, canvasFiles []string) (*sources, error) {
	var docs []blockyaml.Document

	for _, f := range catalogFiles {
		doc, err := parseYAMLFile(f)
		if err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", f, err)
		}
		if len(doc.Blocks) > 0 {
			log.Warn("catalog file contains blocks, ignoring them", "path", f, "blocks", len(doc.Blocks))
			doc.Blocks = nil
		}
		log.Debug("loaded catalog", "path", f, "definitions", len(doc.Definitions))
		docs = append(docs, doc)
	}

	var blocks []ampscript.Block
	for _, f := range canvasFiles {
		switch strings.ToLower(filepath.Ext(f)) {
		case ".hcl":
			hclBlocks, err := blockhcl.ParseFile(f)
			if err != nil {
				return nil, fmt.Errorf("canvas file %s: %w", f, err)
			}
			log.Debug("loaded canvas", "path", f, "blocks", len(hclBlocks))
			blocks = append(blocks, hclBlocks...)

		case ".yml", ".yaml", ".json":
			doc, err := parseYAMLFile(f)
			if err != nil {
				return nil, fmt.Errorf("canvas file %s: %w", f, err)
			}
			log.Debug("loaded canvas", "path", f, "blocks", len(doc.Blocks), "definitions", len(doc.Definitions))
			blocks = append(blocks, doc.Blocks...)
			doc.Blocks = nil
			docs = append(docs, doc)

		default:
			return nil, fmt.Errorf("canvas file %s: unsupported extension %q (want .yml, .yaml, .json or .hcl)", f, filepath.Ext(f))
		}
	}
	ampscript.EnsureIDs(blocks)

	reg, err := blockyaml.NewRegistryFromDocuments(catalog.Registry(), docs...)
	if err != nil {
		return nil, err
	}
	return &sources{registry: reg, blocks: blocks}, nil
}

func parseYAMLFile(path string) (blockyaml.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return blockyaml.Document{}, err
	}
	return blockyaml.Parse(data)
}
