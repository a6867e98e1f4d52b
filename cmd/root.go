package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cfgpkg "github.com/KaramelBytes/llmstxt-cli/internal/config"
	"github.com/KaramelBytes/llmstxt-cli/internal/docs"
	"github.com/KaramelBytes/llmstxt-cli/internal/github"
	"github.com/KaramelBytes/llmstxt-cli/internal/gitrepo"
	"github.com/KaramelBytes/llmstxt-cli/internal/render"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config)
	cfgFile             string
	flagHTTPTimeoutSec  int
	flagCloneTimeoutSec int

	// Generation flags
	genRoot        string
	genBranch      string
	genName        string
	genBaseURL     string
	genDescription string
	genVersion     string
	genOutputDir   string
	genKeepRepo    bool
	genIndexOnly   bool
	genFullOnly    bool
	genQuiet       bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "llmstxt <repository-url>",
	Short: "Generate llms.txt and llms-full.txt from a markdown documentation repository",
	Long: `llmstxt clones a GitHub-hosted documentation repository, discovers its
markdown files, and renders two LLM-ready artifacts: a compact index
(llms.txt) and a complete concatenation (llms-full.txt).

The positional argument may also be an existing local directory, in which
case the clone step is skipped.`,
	Example: `  llmstxt https://github.com/laravel/docs --branch 12.x --name Laravel
  llmstxt https://github.com/vercel/next.js --root docs --name Next.js
  llmstxt https://github.com/vuejs/docs --name Vue.js --base-url https://vuejs.org --version 3.x`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if genIndexOnly && genFullOnly {
			return fmt.Errorf("--index-only and --full-only are mutually exclusive")
		}
		return runGenerate(cmd.Context(), args[0])
	},
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.llmstxt/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "metadata lookup timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagCloneTimeoutSec, "clone-timeout", 0, "clone timeout in seconds (overrides config)")

	rootCmd.Flags().StringVar(&genRoot, "root", ".", "root folder within the repo containing markdown files")
	rootCmd.Flags().StringVar(&genBranch, "branch", "", "branch to clone (default from config, falling back to master, then the platform default)")
	rootCmd.Flags().StringVar(&genName, "name", "", "project name (default: from the repository About)")
	rootCmd.Flags().StringVar(&genBaseURL, "base-url", "", "base URL for documentation links (default: the repository homepage)")
	rootCmd.Flags().StringVar(&genDescription, "description", "", "project description (default: from the repository About)")
	rootCmd.Flags().StringVar(&genVersion, "version", "", "version label appended to output filenames and shown in headers")
	rootCmd.Flags().StringVar(&genOutputDir, "output-dir", "", "output directory for generated files (default from config)")
	rootCmd.Flags().BoolVar(&genKeepRepo, "keep-repo", false, "keep the cloned repository after generation")
	rootCmd.Flags().BoolVar(&genIndexOnly, "index-only", false, "generate only llms.txt")
	rootCmd.Flags().BoolVar(&genFullOnly, "full-only", false, "generate only llms-full.txt")
	rootCmd.Flags().BoolVar(&genQuiet, "quiet", false, "suppress progress output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: defaults still allow a run to proceed.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{
			DefaultBranch:    "main",
			OutputDir:        ".",
			ScratchDir:       os.TempDir(),
			ExcludeDirs:      []string{".git", ".github", "node_modules"},
			DescriptionLimit: docs.DefaultDescriptionLimit,
			HTTPTimeoutSec:   10,
			CloneTimeoutSec:  120,
		}
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("clone-timeout") && flagCloneTimeoutSec > 0 {
		cfg.CloneTimeoutSec = flagCloneTimeoutSec
	}
}

func progressf(format string, args ...any) {
	if !genQuiet {
		fmt.Printf(format, args...)
	}
}

// runGenerate drives the whole pipeline: acquisition, metadata resolution,
// discovery, extraction, and rendering.
func runGenerate(ctx context.Context, target string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	outputDir := genOutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	checkout, meta, err := acquire(ctx, target)
	if err != nil {
		return err
	}
	defer func() {
		if err := checkout.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: cleanup failed: %v\n", err)
		}
	}()
	docsRoot := filepath.Join(checkout.Dir, filepath.FromSlash(genRoot))
	if err := generateOutputs(docsRoot, meta, outputDir); err != nil {
		return err
	}
	if genKeepRepo {
		progressf("Repository kept at %s\n", checkout.Dir)
	}
	return nil
}

// acquire resolves metadata and obtains a local snapshot. A local
// directory target skips both the network lookup and the clone.
func acquire(ctx context.Context, target string) (*gitrepo.Checkout, github.Metadata, error) {
	ov := github.Overrides{
		Name:        genName,
		BaseURL:     genBaseURL,
		Description: genDescription,
		Version:     genVersion,
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		checkout, err := gitrepo.Open(target)
		if err != nil {
			return nil, github.Metadata{}, err
		}
		meta := github.Metadata{Name: ov.Name, BaseURL: ov.BaseURL, Description: ov.Description, Version: ov.Version}
		if meta.Name == "" {
			abs, err := filepath.Abs(target)
			if err != nil {
				return nil, github.Metadata{}, fmt.Errorf("resolve path: %w", err)
			}
			meta.Name = filepath.Base(abs)
		}
		progressf("Using local directory: %s\n", checkout.Dir)
		printMetadata(meta)
		return checkout, meta, nil
	}

	owner, repo, err := github.ParseRepoURL(target)
	if err != nil {
		return nil, github.Metadata{}, err
	}
	progressf("Repository: %s/%s\n", owner, repo)

	client := github.NewClient(time.Duration(cfg.HTTPTimeoutSec) * time.Second)
	meta, warning, err := github.Resolve(ctx, client, target, ov)
	if err != nil {
		return nil, github.Metadata{}, err
	}
	if warning != "" {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", warning)
	}
	printMetadata(meta)

	branch := genBranch
	if branch == "" {
		branch = cfg.DefaultBranch
	}
	progressf("Cloning repository from %s...\n", target)
	progressf("Branch: %s\n", branch)

	cloneCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.CloneTimeoutSec)*time.Second)
	defer cancel()
	checkout, err := gitrepo.Clone(cloneCtx, target, gitrepo.CloneOptions{
		Branch:      branch,
		ScratchRoot: cfg.ScratchDir,
		Keep:        genKeepRepo,
		Progress:    progressf,
	})
	if err != nil {
		return nil, github.Metadata{}, err
	}
	progressf("✓ Repository cloned to %s\n", checkout.Dir)
	return checkout, meta, nil
}

func printMetadata(meta github.Metadata) {
	progressf("Project: %s\n", meta.Name)
	if meta.BaseURL != "" {
		progressf("Base URL: %s\n", meta.BaseURL)
	}
	if meta.Description != "" {
		progressf("Description: %s\n", meta.Description)
	}
}

// generateOutputs runs discovery, extraction, and both renderers over an
// already-acquired documentation tree.
func generateOutputs(docsRoot string, meta github.Metadata, outputDir string) error {
	files, err := docs.Discover(docsRoot, cfg.ExcludeDirs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found under %s (check --root)", docsRoot)
	}
	progressf("✓ Found %d markdown files\n", len(files))

	records := make([]docs.Record, 0, len(files))
	for i, rel := range files {
		progressf("  [%d/%d] Processing %s...\n", i+1, len(files), rel)
		content, err := os.ReadFile(filepath.Join(docsRoot, filepath.FromSlash(rel)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: skipping %s: %v\n", rel, err)
			continue
		}
		records = append(records, docs.Extract(rel, content, meta.BaseURL, cfg.DescriptionLimit))
	}
	if len(records) == 0 {
		return fmt.Errorf("no markdown files could be read under %s", docsRoot)
	}

	if !genFullOnly {
		name := render.IndexFileName(meta.Version)
		progressf("\nGenerating %s (index)...\n", name)
		path, err := render.Write(outputDir, name, render.Index(meta, records))
		if err != nil {
			return err
		}
		reportFile(path, "index")
	}
	if !genIndexOnly {
		name := render.FullFileName(meta.Version)
		progressf("\nGenerating %s (full documentation)...\n", name)
		path, err := render.Write(outputDir, name, render.Full(meta, records))
		if err != nil {
			return err
		}
		reportFile(path, "complete documentation")
	}
	return nil
}

func reportFile(path, kind string) {
	if genQuiet {
		return
	}
	if info, err := os.Stat(path); err == nil {
		fmt.Printf("✓ %s (%.1f KB) - %s\n", path, float64(info.Size())/1024, kind)
	} else {
		fmt.Printf("✓ %s - %s\n", path, kind)
	}
}
