package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"catalogadmin/internal/apis/catalog/usecases"
	"catalogadmin/internal/inventory"
	"catalogadmin/internal/ui"
)

var inventoryCategory string

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Interactive inventory list",
	Long: `Open the interactive inventory view.

Keys:
  /          search (enter submits, esc leaves the box)
  tab        next category, shift+tab previous
  s, d       cycle sort field, toggle direction
  m          load more (global listing only)
  r          retry the failed request
  enter      product details
  q          quit`,
	RunE: runInventory,
}

func init() {
	inventoryCmd.Flags().StringVar(&inventoryCategory, "category", inventory.AllCategories, "initial category")
}

func runInventory(cmd *cobra.Command, args []string) error {
	deps, err := setup(true)
	if err != nil {
		return err
	}
	defer deps.close()

	cfg := deps.cfg
	feed := ui.NewChangeFeed()
	ctrl := inventory.NewController(deps.catalog, inventory.Options{
		PageSize:       cfg.Listing.PageSize,
		CategoryLimit:  cfg.Listing.CategoryLimit,
		SearchLimit:    cfg.Listing.SearchLimit,
		SearchDebounce: cfg.SearchDebounce(),
		Locale:         cfg.Listing.Locale,
		Logger:         deps.log,
		OnChange:       feed.Notify,
	})
	defer ctrl.Close()

	details := usecases.NewProductDetailsService(deps.catalog, deps.log, cfg.Listing.RelatedLimit, cfg.Listing.RelatedCount)

	renderer, err := ui.NewRenderer(cfg.TUI.GlamourStyle, 80)
	if err != nil {
		deps.log.Warn("markdown renderer unavailable", "style", cfg.TUI.GlamourStyle, "err", err)
		renderer = nil
	}

	ctrl.Start(inventoryCategory)

	app := ui.NewApp(ui.NewInventoryModel(ctrl, feed), details, renderer)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run inventory view: %w", err)
	}
	return nil
}
