package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalogadmin/internal/apis/catalog/usecases"
	"catalogadmin/internal/inventory"
	"catalogadmin/internal/repository"
	jsonfile "catalogadmin/internal/repository/json"
)

var (
	exportOut       string
	exportCategory  string
	exportSearch    string
	exportSort      string
	exportDirection string
	exportPages     int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write listings to JSON files",
}

var exportInventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Export an inventory listing as JSON",
	RunE:  runExportInventory,
}

var exportCatalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Export the catalogue overview as JSON",
	RunE:  runExportCatalogue,
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "./output/export.json", "output json file")

	f := exportInventoryCmd.Flags()
	f.StringVar(&exportCategory, "category", inventory.AllCategories, "category to list")
	f.StringVar(&exportSearch, "search", "", "search text, applied after listing")
	f.StringVar(&exportSort, "sort", "none", "sort field: none|name|price")
	f.StringVar(&exportDirection, "direction", "asc", "sort direction: asc|desc")
	f.IntVar(&exportPages, "pages", 1, "pages of the global listing to load")

	exportCmd.AddCommand(exportInventoryCmd, exportCatalogueCmd)
}

func runExportInventory(cmd *cobra.Command, args []string) error {
	field, err := inventory.ParseSortField(exportSort)
	if err != nil {
		return err
	}
	dir, err := inventory.ParseSortDirection(exportDirection)
	if err != nil {
		return err
	}
	if exportPages <= 0 {
		return fmt.Errorf("--pages must be > 0")
	}

	deps, err := setup(false)
	if err != nil {
		return err
	}
	defer deps.close()

	cfg := deps.cfg
	ctrl := inventory.NewController(deps.catalog, inventory.Options{
		PageSize:      cfg.Listing.PageSize,
		CategoryLimit: cfg.Listing.CategoryLimit,
		SearchLimit:   cfg.Listing.SearchLimit,
		Locale:        cfg.Listing.Locale,
		Logger:        deps.log,
	})
	defer ctrl.Close()

	snap, err := inventory.Collect(ctrl, inventory.Query{
		Category:      exportCategory,
		Search:        exportSearch,
		SortField:     field,
		SortDirection: dir,
	}, exportPages)
	if err != nil {
		return fmt.Errorf("collect inventory: %w", err)
	}

	res := repository.NewListingResult(repository.ListingMeta{
		Category:      snap.Category,
		Search:        snap.Search,
		SortField:     string(snap.SortField),
		SortDirection: string(snap.SortDirection),
		Skip:          snap.Offset,
	}, snap.Products, 0, snap.HasMore && !snap.SearchActive())

	return jsonfile.New(exportOut, deps.log).SaveListing(cmd.Context(), res)
}

func runExportCatalogue(cmd *cobra.Command, args []string) error {
	deps, err := setup(false)
	if err != nil {
		return err
	}
	defer deps.close()

	svc := usecases.NewCatalogueService(deps.catalog, deps.log, deps.cfg.Catalogue.ThumbnailWorkers)
	cards, err := svc.Overview(cmd.Context())
	if err != nil {
		return err
	}
	return jsonfile.New(exportOut, deps.log).SaveCatalogue(cmd.Context(), repository.NewCatalogueResult(cards))
}
