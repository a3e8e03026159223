package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/veloboard/flapship"
	"github.com/veloboard/flapship/internal/adapters/fs"
	logadapter "github.com/veloboard/flapship/internal/adapters/log"
	"github.com/veloboard/flapship/internal/cliconfig"
	"github.com/veloboard/flapship/internal/domain"
	"github.com/veloboard/flapship/internal/keystore"
	"github.com/veloboard/flapship/internal/spool"
)

const longHelp = `Render short text onto a split-flap display.

flapship encodes lines into the board's 6x22 flap grid, never lets a
malformed grid reach the wire, and spaces dispatches at least sixteen
seconds apart so the board's own throttle is never tripped.

Content arrives three ways: the send command, TOML message files dropped
into a spool directory (watch mode), or an embedding application using the
library directly.`

var exampleUsage = strings.TrimSpace(`
  flapship send --title "STAGE 12" --accent red "POGACAR  4:51:12" "VINGEGAARD  +0:28"
  flapship preview --title "STAGE 12" "POGACAR  4:51:12"
  flapship watch --spool-dir /var/spool/flapship
  flapship auth set
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "flapship",
		Short:         "Render short text onto a split-flap display",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.flapship/config.toml)")
	root.PersistentFlags().StringVar(&cfg.BoardURL, "board-url", cfg.BoardURL, "board read-write endpoint")
	root.PersistentFlags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "read-write key (falls back to env, config file, keychain)")
	root.PersistentFlags().DurationVar(&cfg.DispatchInterval, "dispatch-interval", cfg.DispatchInterval, "minimum spacing between board calls")
	root.PersistentFlags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	root.PersistentFlags().StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "dispatch cache directory (defaults to $HOME/.flapship)")
	root.PersistentFlags().BoolVar(&cfg.TestMode, "test", cfg.TestMode, "mark dispatches as test dispatches (disables the 400 fallback)")

	root.AddCommand(
		newSendCmd(&cfg, &cfgPath, log),
		newPreviewCmd(&cfg, &cfgPath, log),
		newClearCmd(&cfg, &cfgPath, log),
		newStatusCmd(&cfg, &cfgPath, log),
		newWatchCmd(&cfg, &cfgPath, log),
		newAuthCmd(log),
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("flapship")
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then config
// file, then environment, with explicitly set flags winning throughout.
// The read-write key additionally falls back to the OS keychain.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string, needKey bool) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	cmd.InheritedFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.APIKey == "" && needKey {
		key, err := keystore.Load()
		if err != nil {
			if errors.Is(err, domain.ErrNoCredential) {
				return fmt.Errorf("%w (set with --api-key, FLAPSHIP_API_KEY or 'flapship auth set')", err)
			}
			return fmt.Errorf("read keychain: %w", err)
		}
		cfg.APIKey = key
	}

	return nil
}

// newInstance builds a library handle from the CLI configuration.
func newInstance(cfg *cliconfig.Config, log zerolog.Logger) (*flapship.Flapship, error) {
	return flapship.New(flapship.Config{
		BoardURL:         cfg.BoardURL,
		APIKey:           cfg.APIKey,
		DispatchInterval: cfg.DispatchInterval,
		HTTPTimeout:      cfg.HTTPTimeout,
		Freshness:        cfg.Freshness,
		CacheDir:         cfg.CacheDir,
		FallbackText:     cfg.FallbackText,
		TestMode:         cfg.TestMode,
	}, flapship.WithLogger(logadapter.NewZerologAdapterWithLogger(log)))
}

// messageContent builds content from command flags and positional line args.
func messageContent(title, accent, align string, lines []string) flapship.Content {
	content := flapship.Content{Title: title, Accent: accent}
	for _, text := range lines {
		content.Lines = append(content.Lines, flapship.Line{Text: text, Align: align})
	}
	return content
}

func newSendCmd(cfg *cliconfig.Config, cfgPath *string, log zerolog.Logger) *cobra.Command {
	var (
		title   string
		align   string
		showPre bool
	)

	cmd := &cobra.Command{
		Use:   "send [line]...",
		Short: "Dispatch lines to the board",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfg, *cfgPath, true); err != nil {
				return err
			}

			content := messageContent(title, cfg.Accent, align, args)
			if content.Empty() {
				return fmt.Errorf("nothing to send: supply lines or --title")
			}

			f, err := newInstance(cfg, log)
			if err != nil {
				return err
			}

			if showPre {
				fmt.Fprintln(cmd.OutOrStdout(), f.Preview(content))
			}

			ctx, cancel := signalContext()
			defer cancel()

			outcome, err := f.ShowMessage(ctx, content)
			if err != nil {
				return err
			}
			log.Info().Str("status", outcome.Status.String()).Bool("fallback", outcome.Fallback).Msg("dispatched")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "accent-flanked header row")
	cmd.Flags().StringVar(&cfg.Accent, "accent", cfg.Accent, "header accent color (red, orange, yellow, green, blue, violet, white, black)")
	cmd.Flags().StringVar(&align, "align", "left", "body line alignment (left, center, right)")
	cmd.Flags().BoolVar(&showPre, "preview", false, "print a terminal preview before dispatching")
	return cmd
}

func newPreviewCmd(cfg *cliconfig.Config, cfgPath *string, log zerolog.Logger) *cobra.Command {
	var (
		title string
		align string
	)

	cmd := &cobra.Command{
		Use:   "preview [line]...",
		Short: "Render lines locally without contacting the board",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfg, *cfgPath, false); err != nil {
				return err
			}

			// Preview needs no credential; satisfy the library with a
			// placeholder when none is configured.
			if cfg.APIKey == "" {
				cfg.APIKey = "preview"
			}

			f, err := newInstance(cfg, log)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), f.Preview(messageContent(title, cfg.Accent, align, args)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "accent-flanked header row")
	cmd.Flags().StringVar(&cfg.Accent, "accent", cfg.Accent, "header accent color")
	cmd.Flags().StringVar(&align, "align", "left", "body line alignment")
	return cmd
}

func newClearCmd(cfg *cliconfig.Config, cfgPath *string, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Blank the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfg, *cfgPath, true); err != nil {
				return err
			}

			f, err := newInstance(cfg, log)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			outcome, err := f.Clear(ctx)
			if err != nil {
				return err
			}
			log.Info().Str("status", outcome.Status.String()).Msg("board cleared")
			return nil
		},
	}
}

func newStatusCmd(cfg *cliconfig.Config, cfgPath *string, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the dispatch cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfg, *cfgPath, false); err != nil {
				return err
			}

			repo := fs.NewCacheFileRepository(cfg.CacheDir)
			records, err := repo.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no dispatches recorded")
				return nil
			}

			keys := make([]string, 0, len(records))
			for k := range records {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			now := time.Now()
			for _, k := range keys {
				rec := records[k]
				verdict := "stale"
				if rec.FreshAt(now, cfg.Freshness) {
					verdict = "fresh"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s (%s, %s)\n",
					k,
					rec.UpdatedAt.Format(time.RFC3339),
					now.Sub(rec.UpdatedAt).Round(time.Second),
					verdict,
				)
			}
			return nil
		},
	}
}

func newWatchCmd(cfg *cliconfig.Config, cfgPath *string, log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Dispatch message files dropped into the spool directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfg, *cfgPath, true); err != nil {
				return err
			}
			if cfg.SpoolDir == "" {
				return fmt.Errorf("spool-dir is required for watch mode")
			}

			f, err := newInstance(cfg, log)
			if err != nil {
				return err
			}

			logger := logadapter.NewZerologAdapterWithLogger(log)
			watcher := spool.NewWatcher(cfg.SpoolDir, f, logger)
			sweeper := spool.NewSweeper(cfg.SpoolDir, cfg.Retention, cfg.SweepInterval, logger)

			ctx, cancel := signalContext()
			defer cancel()

			go sweeper.Run(ctx)

			log.Info().Str("dir", cfg.SpoolDir).Msg("watching spool")
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "directory producers drop message files into")
	cmd.Flags().DurationVar(&cfg.Retention, "retention", cfg.Retention, "how long processed messages are kept")
	cmd.Flags().DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "how often processed messages are swept")
	return cmd
}

func newAuthCmd(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the read-write key in the OS keychain",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [key]",
			Short: "Store the read-write key",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var key string
				if len(args) == 1 {
					key = args[0]
				} else {
					fmt.Fprint(cmd.OutOrStdout(), "read-write key: ")
					if _, err := fmt.Fscanln(cmd.InOrStdin(), &key); err != nil {
						return fmt.Errorf("read key: %w", err)
					}
				}
				if key == "" {
					return fmt.Errorf("empty key")
				}
				if err := keystore.Save(key); err != nil {
					return fmt.Errorf("store key: %w", err)
				}
				log.Info().Msg("read-write key stored")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the stored key, masked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := keystore.Load()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), maskKey(key))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := keystore.Delete(); err != nil {
					return err
				}
				log.Info().Msg("read-write key removed")
				return nil
			},
		},
	)
	return cmd
}

// maskKey hides all but the last four characters.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
