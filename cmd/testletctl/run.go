package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/mind-engage/mindengage-testlets/internal/config"
	"github.com/mind-engage/mindengage-testlets/internal/db"
	"github.com/mind-engage/mindengage-testlets/internal/itembank"
	"github.com/mind-engage/mindengage-testlets/internal/testlet"
)

const usage = `usage: testletctl <command> [flags]

commands:
  randomize <bank-id>         print randomized item orders
  import <bank-id> <file>     load a JSON bank file into the SQL bank
  inspect <bank-id>           show item counts of a bank
`

var (
	errUsage        = errors.New("invalid usage")
	errNotWritable  = errors.New("import requires BANK_DRIVER=sqlite or postgres")
	errBadRoundsArg = errors.New("--rounds must be positive")
)

// Run executes testletctl and returns its exit code.
func Run(stdout, stderr io.Writer, args []string, env map[string]string) int {
	if len(args) < 2 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.FromMap(env)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	level, _ := cfg.SlogLevel()
	logger := newLogger(stderr, level, cfg.LogFormat)

	ctx := context.Background()
	cmd, rest := args[1], args[2:]

	switch cmd {
	case "randomize":
		err = runRandomize(ctx, stdout, stderr, logger, cfg, rest)
	case "import":
		err = runImport(ctx, stdout, logger, cfg, rest)
	case "inspect":
		err = runInspect(ctx, stdout, cfg, rest)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "error: unknown command %q\n%s", cmd, usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "error:", err)
		return 2
	default:
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openBank returns the bank selected by cfg and a func releasing it.
func openBank(ctx context.Context, cfg config.Config) (itembank.Bank, func(), error) {
	switch cfg.BankDriver {
	case config.BankSQLite, config.BankPostgres:
		conn, err := db.Open(ctx, db.Driver(cfg.BankDriver), cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		return itembank.NewSQLBank(conn), func() { conn.Close() }, nil
	default:
		return itembank.FileBank{Dir: cfg.BankDir}, func() {}, nil
	}
}

type orderingsOutput struct {
	TestletID string           `json:"testlet_id"`
	Pretest   int              `json:"initial_pretest_count"`
	Orderings [][]testlet.Item `json:"orderings"`
}

func runRandomize(ctx context.Context, stdout, stderr io.Writer, logger *slog.Logger, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("randomize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	testletID := fs.String("testlet", "", "testlet id (default: bank id)")
	pretest := fs.Int("pretest", cfg.PretestCount, "pretest items placed first")
	rounds := fs.Int("rounds", 1, "number of orderings to print")
	seed := fs.Uint64("seed", 0, "seed for a reproducible sequence of orderings")
	fisherYates := fs.Bool("fisher-yates", false, "use the decreasing-range shuffle")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: randomize takes exactly one bank id", errUsage)
	}
	if *rounds <= 0 {
		return fmt.Errorf("%w: %w", errUsage, errBadRoundsArg)
	}
	bankID := fs.Arg(0)

	bank, closeBank, err := openBank(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBank()

	var opts []testlet.Option
	if *fisherYates {
		opts = append(opts, testlet.WithShuffle(testlet.ShuffleFisherYates))
	}
	tl, err := itembank.LoadTestlet(ctx, bank, bankID, *testletID, *pretest, opts...)
	if err != nil {
		return err
	}
	logger.Debug("testlet loaded",
		slog.String("testlet", tl.ID()),
		slog.Int("items", tl.Len()),
		slog.Int("pretest", tl.PretestCount()),
		slog.Int("operational", tl.OperationalCount()))

	randomize := tl.Randomize
	if fs.Changed("seed") {
		src := rand.New(rand.NewPCG(*seed, *seed))
		randomize = func() []testlet.Item { return tl.RandomizeWith(src) }
	}

	out := orderingsOutput{TestletID: tl.ID(), Pretest: tl.InitialPretestCount()}
	for range *rounds {
		out.Orderings = append(out.Orderings, randomize())
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for i, ordering := range out.Orderings {
		ids := make([]string, len(ordering))
		for j, it := range ordering {
			ids[j] = it.ID
			if j < out.Pretest {
				ids[j] += "*"
			}
		}
		fmt.Fprintf(stdout, "%d: %s\n", i+1, strings.Join(ids, " "))
	}
	return nil
}

func runImport(ctx context.Context, stdout io.Writer, logger *slog.Logger, cfg config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: import takes a bank id and a file", errUsage)
	}
	if cfg.BankDriver == config.BankFile {
		return errNotWritable
	}
	bankID, path := args[0], args[1]

	items, err := itembank.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	conn, err := db.Open(ctx, db.Driver(cfg.BankDriver), cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer conn.Close()

	if err := itembank.NewSQLBank(conn).PutItems(ctx, bankID, items); err != nil {
		return fmt.Errorf("import %s: %w", bankID, err)
	}
	logger.Info("bank imported", slog.String("bank", bankID), slog.Int("items", len(items)))
	fmt.Fprintf(stdout, "imported %d items into %s\n", len(items), bankID)
	return nil
}

func runInspect(ctx context.Context, stdout io.Writer, cfg config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: inspect takes exactly one bank id", errUsage)
	}
	bank, closeBank, err := openBank(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBank()

	items, err := bank.Items(ctx, args[0])
	if err != nil {
		return err
	}
	var pretest, operational int
	for _, it := range items {
		if it.IsPretest() {
			pretest++
		} else {
			operational++
		}
	}
	fmt.Fprintf(stdout, "bank %s: %d items (%d pretest, %d operational)\n", args[0], len(items), pretest, operational)
	return nil
}
