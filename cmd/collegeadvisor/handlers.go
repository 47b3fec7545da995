package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/elonfeng/collegeadvisor/internal/config"
	"github.com/elonfeng/collegeadvisor/internal/logging"
	"github.com/elonfeng/collegeadvisor/internal/store"
	"github.com/elonfeng/collegeadvisor/pkg/advisor"
	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

type suggestOptions struct {
	prefsFile  string
	exam       string
	rank       string
	band       string
	category   string
	branch     string
	types      []string
	budgetMin  string
	budgetMax  string
	naac       string
	home       string
	dream      string
	top        int
	jsonOutput bool
}

func loadConfig() (*config.Config, error) {
	path := flags.cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg)
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if flags.profiles != "" {
		cfg.Dataset.Profiles = flags.profiles
	}
	if flags.closingRanks != "" {
		cfg.Dataset.ClosingRanks = flags.closingRanks
	}
	if flags.baseURL != "" {
		cfg.Dataset.BaseURL = flags.baseURL
		cfg.Dataset.Source = string(dataset.SourceHTTP)
	}
	if flags.source != "" {
		cfg.Dataset.Source = flags.source
	}
	if flags.dbPath != "" {
		cfg.Database.Path = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
}

// setup loads the config and builds the logger every command needs.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

// buildSource returns the configured dataset source and a function that
// releases it.
func buildSource(cfg *config.Config, kind dataset.SourceType) (dataset.Source, func(), error) {
	noop := func() {}
	switch kind {
	case dataset.SourceFile, "":
		return dataset.NewFileSource(cfg.Dataset.Profiles, cfg.Dataset.ClosingRanks), noop, nil
	case dataset.SourceHTTP:
		profilesURL, err := cfg.Dataset.ProfilesURL()
		if err != nil {
			return nil, noop, err
		}
		closingURL, err := cfg.Dataset.ClosingRanksURL()
		if err != nil {
			return nil, noop, err
		}
		return dataset.NewHTTPSource(profilesURL, closingURL, cfg.Dataset.ParseTimeout()), noop, nil
	case dataset.SourceSQLite:
		db, err := store.New(cfg.Database.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open store: %w", err)
		}
		return db, func() { db.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown dataset source %q (want one of %v)", kind, dataset.AllSourceTypes())
}

func loadDataset(ctx context.Context, cfg *config.Config, log *zap.Logger) (*dataset.Dataset, error) {
	src, release, err := buildSource(cfg, dataset.SourceType(cfg.Dataset.Source))
	if err != nil {
		return nil, err
	}
	defer release()

	ds, err := dataset.NewLoader(src, log).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

func runSuggest(ctx context.Context, opts suggestOptions) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	prefs, err := buildPreferences(opts)
	if err != nil {
		return err
	}

	ds, err := loadDataset(ctx, cfg, log)
	if err != nil {
		return err
	}

	engine := advisor.NewEngine(log, cfg.Advisor.TopN)
	result := engine.SuggestN(prefs, ds, opts.top)

	if opts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return renderResult(os.Stdout, result)
}

// buildPreferences reads the --prefs form file, then lets flags override
// individual fields.
func buildPreferences(opts suggestOptions) (advisor.Preferences, error) {
	var prefs advisor.Preferences
	if opts.prefsFile != "" {
		data, err := os.ReadFile(opts.prefsFile)
		if err != nil {
			return prefs, fmt.Errorf("read preferences %s: %w", opts.prefsFile, err)
		}
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return prefs, fmt.Errorf("parse preferences %s: %w", opts.prefsFile, err)
		}
		prefs = advisor.PreferencesFromFields(fields)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&prefs.ExamName, opts.exam)
	set(&prefs.ExamRank, opts.rank)
	set(&prefs.ExamRankBand, opts.band)
	set(&prefs.Category, opts.category)
	set(&prefs.RequiredBranch, opts.branch)
	set(&prefs.BudgetMin, opts.budgetMin)
	set(&prefs.BudgetMax, opts.budgetMax)
	set(&prefs.NAACGrade, opts.naac)
	set(&prefs.HomeLocation, opts.home)
	set(&prefs.DreamColleges, opts.dream)
	if len(opts.types) > 0 {
		prefs.CollegeTypes = opts.types
	}
	return prefs, nil
}

func runStats(ctx context.Context, jsonOutput bool) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ds, err := loadDataset(ctx, cfg, log)
	if err != nil {
		return err
	}
	st := ds.Stats()

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "source\t%s\n", cfg.Dataset.Source)
	fmt.Fprintf(w, "profile colleges\t%d\n", st.ProfileColleges)
	fmt.Fprintf(w, "closing-rank colleges\t%d\n", st.ClosingRankColleges)
	fmt.Fprintf(w, "joined colleges\t%d\n", st.JoinedColleges)
	fmt.Fprintf(w, "closing rows\t%d\n", st.ClosingRows)

	if dataset.SourceType(cfg.Dataset.Source) == dataset.SourceSQLite {
		if imp := lastImport(ctx, cfg); imp != nil {
			fmt.Fprintf(w, "imported\t%s from %s\n", imp.ImportedAt.Local().Format("2006-01-02 15:04"), imp.Source)
		}
	}
	return w.Flush()
}

func lastImport(ctx context.Context, cfg *config.Config) *store.Import {
	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil
	}
	defer db.Close()
	imp, err := db.LastImport(ctx)
	if err != nil {
		return nil
	}
	return imp
}

func runImport(ctx context.Context, from string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	kind := dataset.SourceType(cfg.Dataset.Source)
	if from != "" {
		kind = dataset.SourceType(from)
	}
	if kind == dataset.SourceSQLite {
		return fmt.Errorf("cannot import from the snapshot database itself; use --from file or --from http")
	}

	src, release, err := buildSource(cfg, kind)
	if err != nil {
		return err
	}
	defer release()

	docs, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s documents: %w", src.Name(), err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	imp, err := db.Import(ctx, string(src.Name()), docs)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	log.Info("dataset imported",
		zap.String("source", imp.Source),
		zap.String("database", cfg.Database.Path),
		zap.Int("profiles", imp.Profiles),
		zap.Int("rows", imp.Rows),
	)
	fmt.Fprintf(os.Stderr, "imported %d profiles and %d closing-rank rows into %s\n",
		imp.Profiles, imp.Rows, cfg.Database.Path)
	return nil
}

func runBands() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BAND\tRANK USED")
	for _, b := range advisor.RankBands {
		fmt.Fprintf(w, "%s\t%d\n", b.Label, b.Estimate)
	}
	return w.Flush()
}
