package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"catalogadmin/internal/apis/catalog/usecases"
	"catalogadmin/internal/ui"
)

var catalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "List categories with a thumbnail each",
	RunE:  runCatalogue,
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product with related products",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

func runCatalogue(cmd *cobra.Command, args []string) error {
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

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSLUG\tTHUMBNAIL")
	for _, c := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.DisplayName, c.Slug, c.Thumbnail)
	}
	return w.Flush()
}

func runProduct(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("id must be a positive integer, got %q", args[0])
	}

	deps, err := setup(false)
	if err != nil {
		return err
	}
	defer deps.close()

	cfg := deps.cfg
	details := usecases.NewProductDetailsService(deps.catalog, deps.log, cfg.Listing.RelatedLimit, cfg.Listing.RelatedCount)
	d, err := details.Details(cmd.Context(), id)
	if err != nil {
		return err
	}

	renderer, err := ui.NewRenderer(cfg.TUI.GlamourStyle, 80)
	if err != nil {
		renderer = nil
	}
	page := ui.NewDetailModel(fixedDetails{d}, id, renderer)
	page, _ = page.Update(page.Init()())
	fmt.Fprintln(cmd.OutOrStdout(), page.View())
	return nil
}

// fixedDetails serves an already fetched product to the detail page.
type fixedDetails struct {
	d usecases.ProductDetails
}

func (f fixedDetails) Details(context.Context, int) (usecases.ProductDetails, error) {
	return f.d, nil
}
