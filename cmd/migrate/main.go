package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"storemigrate/internal/config"
	"storemigrate/internal/database"
	"storemigrate/internal/events"
	"storemigrate/internal/images"
	"storemigrate/internal/logger"
	"storemigrate/internal/migration"
	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
	"storemigrate/internal/snapshot"
)

type app struct {
	cfg     *config.Config
	log     *logger.Logger
	mig     *migration.Migrator
	db      *database.Database
	emitter *events.Emitter
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	a := &app{cfg: cfg, log: logger.New(cfg.LogLevel)}

	if err := rootCommand(a).Execute(); err != nil {
		a.log.Fatal("%v", err)
	}
}

func rootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Migrate a WooCommerce store to Swell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.initialize()
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a.shutdown()
	}

	rootCmd.AddCommand(
		categoriesCommand(a),
		productsCommand(a),
		customersCommand(a),
		ordersCommand(a),
		imagesCommand(a),
		wipeProductsCommand(a),
		allCommand(a),
	)

	return rootCmd
}

// initialize validates configuration and wires the collaborators. Nothing
// touches the network until a subcommand runs.
func (a *app) initialize() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	db, err := database.New(a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	a.db = db
	a.emitter = events.NewEmitter(a.cfg.KafkaBrokers, a.log)

	source := woocommerce.NewClient(a.cfg.WooBaseURL, a.cfg.WooConsumerKey, a.cfg.WooConsumerSecret, a.log)
	target := swell.NewClient(a.cfg.SwellStoreID, a.cfg.SwellSecretKey, a.log)
	snapshots := snapshot.NewStore(a.cfg.DataDir)
	a.mig = migration.New(source, target, snapshots, a.log)

	return nil
}

func (a *app) shutdown() {
	if a.emitter != nil {
		a.emitter.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// record writes the run to the ledger and publishes the outcome event. Ledger
// failures are logged, not fatal; the migration itself already happened.
func (a *app) record(kind string, started time.Time, tally *migration.Tally, deleted int, runErr error) {
	run := &database.Run{
		Kind:       kind,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Deleted:    deleted,
	}
	data := map[string]interface{}{"deleted": deleted}
	if tally != nil {
		run.Created = tally.Created
		run.Updated = tally.Updated
		run.Skipped = tally.Skipped
		data["created"] = tally.Created
		data["updated"] = tally.Updated
		data["skipped"] = tally.Skipped
	}
	if runErr != nil {
		run.Error = runErr.Error()
		data["error"] = runErr.Error()
	}

	if err := a.db.RecordRun(run); err != nil {
		a.log.Error("failed to record run: %v", err)
	}
	a.emitter.Emit(events.Event{Type: "migration.completed", Kind: kind, Data: data})
}

func categoriesCommand(a *app) *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Create or update categories and wire parent relationships",
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()

			tally, err := a.mig.MigrateCategories()
			if err != nil {
				a.record("categories", started, tally, 0, err)
				return err
			}

			linked, err := a.mig.LinkCategoryParents()
			if err == nil {
				a.log.Info("%d category parents linked", linked)
			}

			deleted := 0
			if err == nil && prune {
				deleted, err = a.mig.DeleteUnmatchedCategories()
			}

			a.record("categories", started, tally, deleted, err)
			if err != nil {
				return err
			}
			a.log.Info("categories done: created %d, updated %d", tally.Created, tally.Updated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "delete target categories with no matching source category")
	return cmd
}

func productsCommand(a *app) *cobra.Command {
	var first, last int
	var useCache bool
	var customFields []string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Create or update products, joined by slug",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFieldMaps(customFields)
			if err != nil {
				return err
			}

			started := time.Now()
			tally, err := a.mig.MigrateProducts(migration.ProductOptions{
				Pages:        pageRange(first, last),
				UseCache:     useCache,
				CustomFields: fields,
			})
			a.record("products", started, tally, 0, err)
			if err != nil {
				return err
			}
			a.log.Info("products done: created %d, updated %d, skipped %d", tally.Created, tally.Updated, tally.Skipped)
			return nil
		},
	}

	cmd.Flags().IntVar(&first, "first", 0, "first source page to migrate")
	cmd.Flags().IntVar(&last, "last", 0, "last source page to migrate")
	cmd.Flags().BoolVar(&useCache, "use-cache", false, "load collections from local snapshots when available")
	cmd.Flags().StringSliceVar(&customFields, "custom-field", nil, "custom field mapping, source=target")
	return cmd
}

func customersCommand(a *app) *cobra.Command {
	var first, last, pagesPerBatch int

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Migrate customers in batches; duplicates are skipped by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			tally, err := a.mig.MigrateCustomers(migration.BatchOptions{
				Pages:         pageRange(first, last),
				PagesPerBatch: pagesPerBatch,
			})
			a.record("customers", started, tally, 0, err)
			if err != nil {
				return err
			}
			a.log.Info("customers done: created %d, skipped %d", tally.Created, tally.Skipped)
			return nil
		},
	}

	cmd.Flags().IntVar(&first, "first", 0, "first source page to migrate")
	cmd.Flags().IntVar(&last, "last", 0, "last source page to migrate")
	cmd.Flags().IntVar(&pagesPerBatch, "pages-per-batch", 1, "source pages per batched write")
	return cmd
}

func ordersCommand(a *app) *cobra.Command {
	var first, last, pagesPerBatch int
	var useCache bool

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Migrate orders in batches with resolved product and account references",
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			tally, err := a.mig.MigrateOrders(migration.BatchOptions{
				Pages:         pageRange(first, last),
				PagesPerBatch: pagesPerBatch,
				UseCache:      useCache,
			})
			a.record("orders", started, tally, 0, err)
			if err != nil {
				return err
			}
			a.log.Info("orders done: created %d, skipped %d", tally.Created, tally.Skipped)
			return nil
		},
	}

	cmd.Flags().IntVar(&first, "first", 0, "first source page to migrate")
	cmd.Flags().IntVar(&last, "last", 0, "last source page to migrate")
	cmd.Flags().IntVar(&pagesPerBatch, "pages-per-batch", 1, "source pages per batched write")
	cmd.Flags().BoolVar(&useCache, "use-cache", false, "build translation tables from local snapshots when available")
	return cmd
}

func imagesCommand(a *app) *cobra.Command {
	var useCache, skipDuplicates bool

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Upload product images from the local backup and attach them by slug",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateImageDir(); err != nil {
				return err
			}

			started := time.Now()
			store := images.NewStore(a.cfg.ImageDir)

			uploaded, err := a.mig.UploadImages(store, migration.ImageOptions{
				UseCache:       useCache,
				SkipDuplicates: skipDuplicates,
			})
			tally := &migration.Tally{Created: uploaded}
			if err != nil {
				a.record("images", started, tally, 0, err)
				return err
			}

			attached, err := a.mig.AttachImages()
			tally.Updated = attached
			a.record("images", started, tally, 0, err)
			if err != nil {
				return err
			}
			a.log.Info("images done: uploaded %d, attached to %d products", uploaded, attached)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useCache, "use-cache", true, "load the image list from its snapshot when available")
	cmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", true, "skip files already present on the target")
	return cmd
}

func wipeProductsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wipe-products",
		Short: "Delete every product on the target store",
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			deleted, err := a.mig.DeleteAllProducts()
			a.record("wipe-products", started, nil, deleted, err)
			return err
		},
	}
}

func allCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run the full migration: categories, products, customers, orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, sub := range []struct {
				kind string
				run  func() (*migration.Tally, error)
			}{
				{"categories", a.mig.MigrateCategories},
				{"products", func() (*migration.Tally, error) {
					return a.mig.MigrateProducts(migration.ProductOptions{})
				}},
				{"customers", func() (*migration.Tally, error) {
					return a.mig.MigrateCustomers(migration.BatchOptions{})
				}},
				// Translation tables must see the accounts and products the
				// previous steps of this invocation just created, not a
				// prior run's snapshots.
				{"orders", func() (*migration.Tally, error) {
					return a.mig.MigrateOrders(migration.BatchOptions{UseCache: false})
				}},
			} {
				started := time.Now()
				tally, err := sub.run()
				a.record(sub.kind, started, tally, 0, err)
				if err != nil {
					return fmt.Errorf("%s migration failed: %w", sub.kind, err)
				}
				if sub.kind == "categories" {
					if _, err := a.mig.LinkCategoryParents(); err != nil {
						return fmt.Errorf("category parent pass failed: %w", err)
					}
				}
			}
			return nil
		},
	}
}

func pageRange(first, last int) *migration.Pages {
	if first == 0 && last == 0 {
		return nil
	}
	return &migration.Pages{First: first, Last: last}
}

func parseFieldMaps(pairs []string) ([]migration.FieldMap, error) {
	fields := make([]migration.FieldMap, 0, len(pairs))
	for _, pair := range pairs {
		source, target, ok := strings.Cut(pair, "=")
		if !ok || source == "" || target == "" {
			return nil, fmt.Errorf("invalid custom field mapping %q, want source=target", pair)
		}
		fields = append(fields, migration.FieldMap{Source: source, Target: target})
	}
	return fields, nil
}
