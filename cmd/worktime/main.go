package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"worktime/internal/bootstrap"
	sessiondto "worktime/internal/modules/session/dto"
	settingsdto "worktime/internal/modules/settings/dto"
	"worktime/internal/platform/config"
	"worktime/internal/platform/logging"
	"worktime/internal/platform/timefmt"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir    string
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "worktime",
		Short:         "Track work sessions from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir(), "directory holding the store, config and log")
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default <data-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(newStartCmd(flags))
	root.AddCommand(newStopCmd(flags))
	root.AddCommand(newDiscardCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newTodayCmd(flags))
	root.AddCommand(newListCmd(flags))
	root.AddCommand(newEditCmd(flags))
	root.AddCommand(newDeleteCmd(flags))
	root.AddCommand(newImportCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newReportCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.dataDir, flags.configFile)
	if err != nil {
		return config.Config{}, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// withApp wires the application for one command and releases it afterwards.
func withApp(cmd *cobra.Command, flags *rootFlags, opts bootstrap.Options, run func(ctx context.Context, app *bootstrap.App) error) (err error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	app, err := bootstrap.New(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, app.Close()) }()
	return run(ctx, app)
}

// prefs is how the user wants times shown.
type prefs struct {
	format string
	loc    *time.Location
}

func loadPrefs(ctx context.Context, app *bootstrap.App) (prefs, error) {
	s, err := app.SettingsCLI.Show(ctx)
	if err != nil {
		return prefs{}, err
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return prefs{format: s.TimeFormat, loc: loc}, nil
}

func newStartCmd(flags *rootFlags) *cobra.Command {
	var description string
	var offset int

	cmd := &cobra.Command{
		Use:   "start <title>",
		Short: "Start a work session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				p, err := loadPrefs(ctx, app)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Start(ctx, strings.Join(args, " "), description, clampOffset(offset))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started %q at %s (%s)\n", out.Title, timefmt.TimeOfDay(out.StartedAt, p.format, p.loc), out.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "session description")
	cmd.Flags().IntVar(&offset, "offset", 0, "minutes ago the session began (0-180)")
	return cmd
}

func newStopCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop and record the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				p, err := loadPrefs(ctx, app)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Stop(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				switch {
				case out.Recorded:
					_, _ = fmt.Fprintf(w, "recorded %q: %s (%s - %s)\n", out.Session.Title,
						timefmt.Clock(out.Session.DurationSeconds),
						timefmt.TimeOfDay(out.Session.StartedAt, p.format, p.loc),
						timefmt.TimeOfDay(out.Session.EndedAt, p.format, p.loc))
				case out.Discarded:
					_, _ = fmt.Fprintln(w, "session discarded: stop time precedes its start")
				default:
					_, _ = fmt.Fprintln(w, "no active session")
				}
				return nil
			})
		},
	}
}

func newDiscardCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Drop the active session without recording it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				ok, err := app.SessionCLI.Discard(ctx)
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
					return nil
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session discarded")
				return nil
			})
		},
	}
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active session and today's progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				p, err := loadPrefs(ctx, app)
				if err != nil {
					return err
				}
				st, err := app.SessionCLI.Status(ctx, p.loc)
				if err != nil {
					return err
				}
				progress, err := app.SettingsCLI.Progress(ctx, st.TotalSecondsToday)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if st.Tracking {
					_, _ = fmt.Fprintf(w, "tracking %q for %s (since %s)\n", st.Active.Title,
						timefmt.Clock(st.ElapsedSeconds), timefmt.TimeOfDay(st.Active.StartedAt, p.format, p.loc))
				} else {
					_, _ = fmt.Fprintln(w, "not tracking")
				}
				_, _ = fmt.Fprintf(w, "today: %s, %d%% of %gh\n", timefmt.Duration(st.TotalSecondsToday), progress.Percent, progress.TargetHours)
				return nil
			})
		},
	}
}

func newTodayCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List the sessions recorded today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				p, err := loadPrefs(ctx, app)
				if err != nil {
					return err
				}
				st, err := app.SessionCLI.Status(ctx, p.loc)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				printSessions(w, st.TodaySessions, p)
				_, _ = fmt.Fprintf(w, "total: %s\n", timefmt.Duration(st.TotalSecondsToday))
				return nil
			})
		},
	}
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				p, err := loadPrefs(ctx, app)
				if err != nil {
					return err
				}
				var sessions []sessiondto.SessionOutput
				if from == "" && to == "" {
					sessions, err = app.SessionCLI.List(ctx)
				} else {
					start, end := time.UnixMilli(0), time.Now()
					if from != "" {
						if start, err = parseTime(from, p.loc, time.Now()); err != nil {
							return fmt.Errorf("--from: %w", err)
						}
					}
					if to != "" {
						if end, err = parseTime(to, p.loc, time.Now()); err != nil {
							return fmt.Errorf("--to: %w", err)
						}
					}
					sessions, err = app.SessionCLI.ListRange(ctx, start, end)
				}
				if err != nil {
					return err
				}
				printSessions(cmd.OutOrStdout(), sessions, p)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "earliest start, inclusive (YYYY-MM-DD[ HH:MM])")
	cmd.Flags().StringVar(&to, "to", "", "latest start, exclusive (YYYY-MM-DD[ HH:MM])")
	return cmd
}

func newEditCmd(flags *rootFlags) *cobra.Command {
	var title, description, start, end string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				p, err := loadPrefs(ctx, app)
				if err != nil {
					return err
				}
				var titlePtr, descPtr *string
				var startPtr, endPtr *time.Time
				if cmd.Flags().Changed("title") {
					titlePtr = &title
				}
				if cmd.Flags().Changed("description") {
					descPtr = &description
				}
				if cmd.Flags().Changed("start") {
					t, err := parseTime(start, p.loc, time.Now())
					if err != nil {
						return fmt.Errorf("--start: %w", err)
					}
					startPtr = &t
				}
				if cmd.Flags().Changed("end") {
					t, err := parseTime(end, p.loc, time.Now())
					if err != nil {
						return fmt.Errorf("--end: %w", err)
					}
					endPtr = &t
				}
				out, err := app.SessionCLI.Edit(ctx, args[0], titlePtr, descPtr, startPtr, endPtr)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s: %q %s\n", out.ID, out.Title, timefmt.Clock(out.DurationSeconds))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&start, "start", "", "new start time")
	cmd.Flags().StringVar(&end, "end", "", "new end time")
	return cmd
}

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				ok, err := app.SessionCLI.Delete(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no session %s\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import sessions from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Import(ctx, payload)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n", out.Imported, out.Skipped)
				return nil
			})
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all recorded sessions to a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				p, err := loadPrefs(ctx, app)
				if err != nil {
					return err
				}
				payload, err := app.SessionCLI.Export(ctx)
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = exportFileName(time.Now().In(p.loc))
				}
				if err := os.WriteFile(path, payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default worktime-YYYY-MM-DD.json)")
	return cmd
}

func exportFileName(day time.Time) string {
	return "worktime-" + day.Format("2006-01-02") + ".json"
}

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Display preferences"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SettingsCLI.Show(ctx)
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), s)
				return nil
			})
		},
	})
	settings.AddCommand(&cobra.Command{
		Use:   "set <timezone|timeformat|targethours> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SettingsCLI.Set(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), s)
				return nil
			})
		},
	})
	return settings
}

func printSettings(w io.Writer, s settingsdto.SettingsOutput) {
	_, _ = fmt.Fprintf(w, "timezone:     %s\n", s.Timezone)
	_, _ = fmt.Fprintf(w, "time format:  %s\n", s.TimeFormat)
	_, _ = fmt.Fprintf(w, "target hours: %g\n", s.TargetHours)
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Process configuration"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	})
	return cfgCmd
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the worktime terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			// The alt screen owns the terminal, so logs go to a file.
			logger, logFile, err := logging.NewFile(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()
			return withApp(cmd, flags, bootstrap.Options{Logger: logger}, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func printSessions(w io.Writer, sessions []sessiondto.SessionOutput, p prefs) {
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(w, "no sessions")
		return
	}
	for _, s := range sessions {
		_, _ = fmt.Fprintf(w, "%s  %s - %s  %8s  %s  %s\n",
			s.StartedAt.In(p.loc).Format("2006-01-02"),
			timefmt.TimeOfDay(s.StartedAt, p.format, p.loc),
			timefmt.TimeOfDay(s.EndedAt, p.format, p.loc),
			timefmt.Clock(s.DurationSeconds),
			s.ID,
			s.Title)
	}
}
