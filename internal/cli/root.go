package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"opensye/internal/compiler"
	"opensye/internal/config"
	"opensye/internal/display"
	"opensye/internal/exercise"
	"opensye/internal/handout"
	"opensye/internal/leet"
	"opensye/internal/listener"
	"opensye/internal/locale"
	"opensye/internal/logger"
)

// app holds what the commands share once flags are parsed.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	fs  afero.Fs
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New(time.Now()), fs: afero.NewOsFs()}
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "opensye",
		Short: "Generate operating systems exercise sheets",
		Long: `OpenSYE imagines exercises about process states and parallel programs,
writes a LaTeX handout together with its correction, and compiles both with latexmk.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				a.v.SetConfigFile(configFile)
			}
			if err := config.ReadFile(a.v); err != nil {
				return err
			}
			if noCompile, err := cmd.Flags().GetBool("no-compile"); err == nil && noCompile {
				a.v.Set(config.KeyCompile, false)
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if err := logger.Init(cfg.LogFile, cfg.LogLevel); err != nil {
				return fmt.Errorf("could not initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), cmd.OutOrStdout())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./opensye.yaml)")
	pf.StringP("lang", "l", string(locale.FR), "language of the handout (FR or EN)")
	pf.IntP("exercises", "n", exercise.Available(), "number of exercises to pick at random")
	pf.StringSlice("exercise", nil, "pick these exercises, in this order ("+strings.Join(exercise.Names(), ", ")+")")
	pf.Uint64("seed", 0, "random seed, 0 for a fresh one")
	pf.String("log-file", config.DefaultLogFile, "log file path")
	pf.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")

	f := rootCmd.Flags()
	f.Int("year", time.Now().Year(), "first year of the academic year")
	f.CountP("l33t", "L", "translate to l33t-5p34k, repeat for higher levels")
	f.StringP("title", "t", "", "document title")
	f.StringP("author", "a", config.DefaultAuthor, "author shown under the title")
	f.StringP("filename", "f", config.DefaultFilename, "name of the generated .tex file")
	f.StringP("out", "o", ".", "output directory")
	f.Bool("no-compile", false, "only write the LaTeX sources")
	f.String("latexmk", compiler.DefaultTool, "LaTeX build tool")
	f.Duration("compile-timeout", compiler.DefaultTimeout, "timeout for each compilation")
	f.BoolP("yes", "y", false, "overwrite existing files without asking")

	bind(a.v, pf, map[string]string{
		config.KeyLang:      "lang",
		config.KeyExercises: "exercises",
		config.KeyOnly:      "exercise",
		config.KeySeed:      "seed",
		config.KeyLogFile:   "log-file",
		config.KeyLogLevel:  "log-level",
	})
	bind(a.v, f, map[string]string{
		config.KeyYear:           "year",
		config.KeyLeet:           "l33t",
		config.KeyTitle:          "title",
		config.KeyAuthor:         "author",
		config.KeyFilename:       "filename",
		config.KeyOutDir:         "out",
		config.KeyLatexmk:        "latexmk",
		config.KeyCompileTimeout: "compile-timeout",
		config.KeyYes:            "yes",
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Print the imagined exercises as YAML without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd.OutOrStdout())
		},
	})

	return rootCmd
}

// bind maps config keys to flag names.
func bind(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("could not bind flag %s: %v", name, err))
		}
	}
}

func (a *app) banner(out io.Writer) {
	l := a.cfg.Lang
	level := a.cfg.LeetLevel()
	years := fmt.Sprintf("%d-%d", a.cfg.Year, a.cfg.Year+1)
	count := strconv.Itoa(len(a.cfg.Only))
	if len(a.cfg.Only) == 0 {
		count = strconv.Itoa(a.cfg.Exercises)
	}

	fmt.Fprintln(out, leet.Text(locale.Text(l, locale.CLIWelcome), level))
	fmt.Fprintln(out, leet.Text(locale.Text(l, locale.CLIGenerating, count, years), level))
	if level > 0 {
		fmt.Fprintln(out, leet.Text(locale.Text(l, locale.CLILeet, strconv.Itoa(level)), level))
	}
}

func (a *app) generate(ctx context.Context, out io.Writer) error {
	var comp handout.Compiler
	if a.cfg.Compile {
		comp = compiler.New(a.fs, a.cfg.Latexmk, a.cfg.CompileTimeout)
	}
	b := handout.New(a.cfg, a.fs, comp)

	existing, err := b.ExistingOutputs()
	if err != nil {
		return err
	}
	if len(existing) > 0 && !a.cfg.AssumeYes {
		p, err := listener.Open()
		if err != nil {
			return fmt.Errorf("could not init terminal input: %w", err)
		}
		defer p.Close()
		p.Println("These files already exist and will be overwritten:")
		for _, path := range existing {
			p.Println("  " + path)
		}
		if !p.AskYesNo("Continue?") {
			fmt.Fprintln(out, "Cancelled.")
			logger.Log.Info("Generation cancelled by the user", "existing", existing)
			return nil
		}
	}

	a.banner(out)
	res, runErr := b.Run(ctx)
	if res != nil && len(res.Exercises) > 0 {
		fmt.Fprintln(out, display.FormatSummary(res.Exercises))
	}
	if res != nil {
		fmt.Fprintln(out, display.FormatRunMetrics(res.Metrics))
	}
	if runErr != nil {
		return runErr
	}
	for _, path := range append([]string{res.QuestionPath, res.CorrectionPath}, res.PDFs...) {
		fmt.Fprintln(out, "Wrote "+path)
	}
	return nil
}

func (a *app) inspect(out io.Writer) error {
	b := handout.New(a.cfg, a.fs, nil)
	seed := b.Seed()
	exs, err := b.Imagine(handout.NewRand(seed))
	if err != nil {
		return err
	}
	dump, err := display.DumpYAML(exs, a.cfg.Lang)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# seed: %d\n%s", seed, dump)
	return nil
}

// Execute runs the command line until it finishes or is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
