// Package cli wires the localization toolkit's commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"modloc/internal/changedetect"
	"modloc/internal/config"
	"modloc/internal/engine"
	"modloc/internal/filewalker"
	"modloc/internal/locfile"
	"modloc/internal/parser"
	"modloc/internal/worker"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "modloc",
		Short: "Localization file toolkit for game-modification packages",
		Long:  "Parses, validates, merges, and converts the game engine's binary LOC and tab-separated text localization formats.",
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(mergeCmd())
	rootCmd.AddCommand(splitCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(staleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output-dir>",
		Short: "Convert binary or text localization files to the TSV text form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], args[1])
		},
	}
}

func mergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <output> <input...>",
		Short: "Merge localization files into one, folding entries by key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, _ := cmd.Flags().GetString("policy")
			return runMerge(args[0], args[1:], policy)
		},
	}
	cmd.Flags().String("policy", "last", "Conflict policy: first, last, or error")
	return cmd
}

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <input>",
		Short: "Split a localization file into size-bounded chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxEntries, _ := cmd.Flags().GetInt("max-entries")
			return runSplit(args[0], maxEntries)
		},
	}
	cmd.Flags().Int("max-entries", 0, "Maximum entries per chunk (default from SPLIT_MAX_ENTRIES)")
	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input...>",
		Short: "Validate localization files and report every problem found",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			heuristics, _ := cmd.Flags().GetBool("heuristics")
			return runValidate(args, strict, heuristics)
		},
	}
	cmd.Flags().Bool("strict", false, "Treat tabless data lines as errors")
	cmd.Flags().Bool("heuristics", false, "Enable mojibake and control-character warnings")
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input>",
		Short: "Print entry counts, encoding, language code, and content hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func staleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stale <input...>",
		Short: "Flag files whose content changed since their hash was recorded",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mark, _ := cmd.Flags().GetBool("mark")
			return runStale(args, mark)
		},
	}
	cmd.Flags().Bool("mark", false, "Record the current hashes instead of checking")
	return cmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// runConvert handles the `convert` command.
func runConvert(input, outputDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	opts := parser.Options{Strict: cfg.StrictParse}

	entries, err := filewalker.Walk(input)
	if err != nil {
		return fmt.Errorf("walk input: %w", err)
	}
	if len(entries) == 0 {
		log.Warn().Str("input", input).Msg("No localization files found")
		return nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	results := worker.Run(ctx, entries, cfg.WorkerCount,
		func(ctx context.Context, entry filewalker.FileEntry) (*parser.Result, error) {
			return engine.Parse(entry.Path, opts)
		},
	)

	converted := 0
	for _, task := range results {
		if task.Err != nil {
			log.Error().Err(task.Err).Str("file", task.Input.Path).Msg("Parse failed")
			continue
		}
		for _, perr := range task.Result.Errors {
			log.Warn().Str("file", task.Input.Path).Msg(perr.Error())
		}

		f := task.Result.File
		outName := strings.TrimSuffix(f.FileName, filepath.Ext(f.FileName)) + ".tsv"
		outPath := filepath.Join(outputDir, outName)

		if err := engine.WriteFile(f, outPath); err != nil {
			log.Error().Err(err).Str("path", outPath).Msg("Write failed")
			continue
		}
		converted++
	}

	log.Info().Int("files", converted).Str("output", outputDir).Msg("Conversion complete")
	return nil
}

// runMerge handles the `merge` command.
func runMerge(output string, inputs []string, policyName string) error {
	cfg := config.Load()
	opts := parser.Options{Strict: cfg.StrictParse}

	policy, err := engine.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	files := make([]*locfile.File, 0, len(inputs))
	for _, in := range inputs {
		result, err := engine.Parse(in, opts)
		if err != nil {
			return fmt.Errorf("parse %s: %w", in, err)
		}
		for _, perr := range result.Errors {
			log.Warn().Str("file", in).Msg(perr.Error())
		}
		files = append(files, result.File)
	}

	merged, err := engine.Merge(files, policy)
	if err != nil {
		return err
	}

	if err := engine.WriteFile(merged, output); err != nil {
		return err
	}

	log.Info().
		Int("inputs", len(inputs)).
		Int("entries", len(merged.Entries)).
		Str("policy", string(policy)).
		Msg("Merge complete")
	return nil
}

// runSplit handles the `split` command.
func runSplit(input string, maxEntries int) error {
	cfg := config.Load()
	if maxEntries <= 0 {
		maxEntries = cfg.SplitMaxEntries
	}

	result, err := engine.Parse(input, parser.Options{Strict: cfg.StrictParse})
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	chunks := engine.Split(result.File, maxEntries)

	base := strings.TrimSuffix(input, filepath.Ext(input))
	for i, chunk := range chunks {
		outPath := fmt.Sprintf("%s.part%03d.tsv", base, i+1)
		if err := engine.WriteFile(chunk, outPath); err != nil {
			return err
		}
	}

	log.Info().Int("chunks", len(chunks)).Int("max_entries", maxEntries).Msg("Split complete")
	return nil
}

// runValidate handles the `validate` command. Exits non-zero when any
// file has validation errors, after reporting all of them.
func runValidate(inputs []string, strict, heuristics bool) error {
	opts := parser.Options{Strict: strict}
	vopts := locfile.ValidateOptions{
		CheckMojibake:   heuristics,
		CheckRawControl: heuristics,
	}

	failed := 0
	for _, in := range inputs {
		result, err := engine.Parse(in, opts)
		if err != nil {
			return fmt.Errorf("parse %s: %w", in, err)
		}

		for _, perr := range result.Errors {
			fmt.Printf("%s: parse: %s\n", in, perr.Error())
		}

		report := locfile.Validate(result.File, vopts)
		for _, e := range report.Errors {
			fmt.Printf("%s: error: %s\n", in, e)
		}
		for _, w := range report.Warnings {
			fmt.Printf("%s: warning: %s\n", in, w)
		}

		if !report.IsValid || (strict && len(result.Errors) > 0) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(inputs))
	}
	log.Info().Int("files", len(inputs)).Msg("All files valid")
	return nil
}

// runInspect handles the `inspect` command.
func runInspect(input string) error {
	cfg := config.Load()

	result, err := engine.Parse(input, parser.Options{Strict: cfg.StrictParse})
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	f := result.File
	fmt.Printf("file:      %s\n", f.FileName)
	fmt.Printf("encoding:  %s\n", f.Encoding)
	if f.LanguageCode != "" {
		fmt.Printf("language:  %s\n", f.LanguageCode)
	}
	fmt.Printf("entries:   %d\n", len(f.Entries))
	fmt.Printf("comments:  %d\n", len(f.Comments))
	fmt.Printf("size:      %d bytes\n", f.Meta.SizeBytes)
	fmt.Printf("hash:      %s\n", f.Meta.ContentHash)
	if len(result.Records) > 0 {
		kinds := map[parser.RecordKind]int{}
		for _, r := range result.Records {
			kinds[r.Kind]++
		}
		fmt.Printf("records:   %d title, %d description, %d ambiguous\n",
			kinds[parser.KindTitle], kinds[parser.KindDescription], kinds[parser.KindAmbiguous])
	}
	if len(result.Errors) > 0 {
		fmt.Printf("problems:  %d\n", len(result.Errors))
	}
	return nil
}

// runStale handles the `stale` command.
func runStale(inputs []string, mark bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	detector := changedetect.New(store)

	for _, in := range inputs {
		if mark {
			if err := detector.MarkFresh(ctx, in); err != nil {
				return fmt.Errorf("mark %s: %w", in, err)
			}
			log.Info().Str("file", in).Msg("Recorded current hash")
			continue
		}

		stale, err := detector.IsStale(ctx, in)
		if err != nil {
			return fmt.Errorf("check %s: %w", in, err)
		}
		if stale {
			fmt.Printf("stale\t%s\n", in)
		} else {
			fmt.Printf("fresh\t%s\n", in)
		}
	}
	return nil
}

// openStore connects the recorded-hash store: PostgreSQL when
// DATABASE_URL is set, in-memory otherwise.
func openStore(ctx context.Context, cfg *config.Config) (changedetect.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set; recorded hashes will not persist")
		return changedetect.NewMemStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}

	store := changedetect.NewPGStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	log.Info().Msg("Connected to PostgreSQL")
	return store, pool.Close, nil
}
