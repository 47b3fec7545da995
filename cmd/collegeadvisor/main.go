package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/elonfeng/collegeadvisor/pkg/dataset"
)

// globalFlags override the matching config values when set.
type globalFlags struct {
	cfgFile      string
	source       string
	profiles     string
	closingRanks string
	baseURL      string
	dbPath       string
	logLevel     string
}

var flags globalFlags

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var le *dataset.LoadError
		if errors.As(err, &le) && le.Hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", le.Hint)
		}
		cancel()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "collegeadvisor",
		Short:         "Shortlist engineering colleges from your rank, category and preferences",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.cfgFile, "config", "", "config file (default: ./config.yaml)")
	pf.StringVar(&flags.source, "source", "", "dataset source: file, http or db")
	pf.StringVar(&flags.profiles, "profiles", "", "college profiles document (path or URL)")
	pf.StringVar(&flags.closingRanks, "closing-ranks", "", "closing ranks document (path or URL)")
	pf.StringVar(&flags.baseURL, "base-url", "", "base URL the documents are served from (implies --source http)")
	pf.StringVar(&flags.dbPath, "db", "", "dataset snapshot database path")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(suggestCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(importCmd())
	root.AddCommand(bandsCmd())

	return root
}

func suggestCmd() *cobra.Command {
	var opts suggestOptions

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest the best matching colleges",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.prefsFile, "prefs", "", "JSON file with the preference form fields")
	f.StringVar(&opts.exam, "exam", "", "entrance exam name")
	f.StringVar(&opts.rank, "rank", "", "exact exam rank")
	f.StringVar(&opts.band, "band", "", "rank band when the exact rank is unknown (see `bands`)")
	f.StringVar(&opts.category, "category", "", "reservation category (OC, SC, ST, EWS, BC-A..BC-E, OBC, GENERAL)")
	f.StringVar(&opts.branch, "branch", "", "required branch (e.g. cse, ece, \"civil engineering\")")
	f.StringSliceVar(&opts.types, "type", nil, "college types: any, government, private-autonomous, private-non-autonomous")
	f.StringVar(&opts.budgetMin, "budget-min", "", "minimum yearly fee")
	f.StringVar(&opts.budgetMax, "budget-max", "", "maximum yearly fee")
	f.StringVar(&opts.naac, "naac", "", "minimum NAAC grade (e.g. A, B++)")
	f.StringVar(&opts.home, "home", "", "home location")
	f.StringVar(&opts.dream, "dream", "", "dream colleges, comma separated")
	f.IntVar(&opts.top, "top", 0, "number of suggestions (default: from config)")
	f.BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	return cmd
}

func statsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dataset counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func importCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the documents into the dataset snapshot database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), from)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source to import from: file or http (default: from config)")
	return cmd
}

func bandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "List rank bands and the rank used for each",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBands()
		},
	}
}
