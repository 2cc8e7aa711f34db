package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	fitmentApp "github.com/orris-inc/fitment/internal/application/fitment"
	"github.com/orris-inc/fitment/internal/application/fitment/dto"
	"github.com/orris-inc/fitment/internal/application/fitment/usecases"
	"github.com/orris-inc/fitment/internal/infrastructure/config"
	"github.com/orris-inc/fitment/internal/infrastructure/database"
	"github.com/orris-inc/fitment/internal/infrastructure/repository"
	"github.com/orris-inc/fitment/internal/infrastructure/sqlbuilder"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/utils"
)

var (
	env        string
	configPath string
	format     string
	timeout    time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run catalog reports against the store",
		Long:  `Run the data quality reports, coverage and search queries, and schema browsing from the command line.`,
		// Report failures are data, not usage mistakes.
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json, yaml)")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall time limit for the command")

	for _, r := range usecases.Reports {
		cmd.AddCommand(newQualityCommand(r))
	}
	cmd.AddCommand(
		newCoverageCommand(),
		newSearchCommand(),
		newAliasesCommand(),
		newTablesCommand(),
		newPreviewCommand(),
		newStatsCommand(),
	)

	return cmd
}

type session struct {
	service *fitmentApp.ServiceDDD
	db      *gorm.DB
	log     logger.Interface
	printer *printer
}

// initEnv loads configuration and opens the store. Logs go to stderr so stdout stays parseable.
func initEnv(ctx context.Context, cmd *cobra.Command) (*session, error) {
	p, err := newPrinter(cmd.OutOrStdout(), format)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if out := strings.ToLower(cfg.Logger.OutputPath); out == "" || out == "stdout" {
		cfg.Logger.OutputPath = "stderr"
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	dialect, err := sqlbuilder.DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, &cfg.Database, log.Named("database"))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	repo := repository.NewFitmentRepository(
		db,
		sqlbuilder.New(dialect),
		cfg.Database.QueryTimeout(),
		nil,
		log.Named("repository"),
	)

	return &session{
		// The empty search probe is a dashboard aid; the CLI reports the message as is.
		service: fitmentApp.NewServiceDDD(repo, nil, nil, log.Named("fitment")),
		db:      db,
		log:     log,
		printer: p,
	}, nil
}

func (s *session) close() {
	if err := database.Close(s.db); err != nil {
		s.log.Warnw("failed to close store", "error", err)
	}
}

// withSession runs fn with an open store and releases it afterwards.
func withSession(fn func(ctx context.Context, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		s, err := initEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return fn(ctx, s, args)
	}
}

func newQualityCommand(r usecases.Report) *cobra.Command {
	return &cobra.Command{
		Use:   string(r),
		Short: fmt.Sprintf("Run the %s data quality report", r),
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *session, _ []string) error {
			return s.printer.table(s.service.RunReport(ctx, r))
		}),
	}
}

func newCoverageCommand() *cobra.Command {
	var req dto.CoverageRequest

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Count listings per brand and part type",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			return utils.ValidateStruct(req)
		},
		RunE: withSession(func(ctx context.Context, s *session, _ []string) error {
			return s.printer.table(s.service.ComputeCoverage(ctx, req))
		}),
	}

	cmd.Flags().StringVar(&req.MakeID, "make-id", "", "Make identifier")
	cmd.Flags().StringVar(&req.ModelID, "model-id", "", "Model identifier")
	cmd.Flags().StringVar(&req.Year, "year", "", "Model year")
	cmd.Flags().StringVar(&req.PartTypeID, "part-type-id", "", "Part type identifier")

	return cmd
}

func newSearchCommand() *cobra.Command {
	var (
		req      dto.SearchRequest
		priceMin float64
		priceMax float64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search listings by vehicle, part and price",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *session, _ []string) error {
			return s.printer.table(s.service.SearchFitment(ctx, req))
		}),
	}

	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("price-min") {
			req.PriceMin = &priceMin
		}
		if cmd.Flags().Changed("price-max") {
			req.PriceMax = &priceMax
		}
		// A malformed id or year must fail instead of silently widening the search.
		return utils.ValidateStruct(req)
	}

	cmd.Flags().StringVar(&req.MakeID, "make-id", "", "Make identifier")
	cmd.Flags().StringVar(&req.ModelID, "model-id", "", "Model identifier")
	cmd.Flags().StringVar(&req.Year, "year", "", "Model year")
	cmd.Flags().StringVar(&req.TrimID, "trim-id", "", "Trim identifier")
	cmd.Flags().StringVar(&req.PartTypeID, "part-type-id", "", "Part type identifier")
	cmd.Flags().StringVar(&req.PositionID, "position-id", "", "Position identifier")
	cmd.Flags().StringVar(&req.DriveID, "drive-id", "", "Drive train identifier")
	cmd.Flags().StringSliceVar(&req.BrandIDs, "brand-id", nil, "Brand identifiers (repeatable)")
	cmd.Flags().Float64Var(&priceMin, "price-min", 0, "Lowest price")
	cmd.Flags().Float64Var(&priceMax, "price-max", 0, "Highest price")

	return cmd
}

func newAliasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases TEXT...",
		Short: "Find brand aliases mentioned in free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(func(ctx context.Context, s *session, args []string) error {
			return s.printer.table(s.service.LookupAliases(ctx, strings.Join(args, " ")))
		}),
	}
}

func newTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the catalog tables and views present in the store",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *session, _ []string) error {
			names, err := s.service.ListTables(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tables: %w", err)
			}
			return s.printer.names(names)
		}),
	}
}

func newPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview NAME",
		Short: "Show the first rows of a catalog table or view",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, s *session, args []string) error {
			return s.printer.table(s.service.PreviewTable(ctx, args[0]))
		}),
	}
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show listing, brand and trim counts",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *session, _ []string) error {
			return s.printer.stats(s.service.QuickStats(ctx))
		}),
	}
}
