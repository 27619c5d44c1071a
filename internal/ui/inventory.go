package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"catalogadmin/internal/domain/models"
	"catalogadmin/internal/inventory"
)

// Inventory is the controller surface the list view drives.
type Inventory interface {
	SelectCategory(category string)
	SetSearch(text string)
	SubmitSearch(text string)
	LoadMore() bool
	SetSort(field inventory.SortField)
	ToggleDirection() bool
	Retry() bool
	Snapshot() inventory.Snapshot
}

// OpenDetailMsg asks the app to show one product.
type OpenDetailMsg struct {
	ID int
}

type InventoryModel struct {
	ctrl   Inventory
	feed   *ChangeFeed
	snap   inventory.Snapshot
	search textinput.Model
	cursor int

	width  int
	height int
	styles Styles
}

func NewInventoryModel(ctrl Inventory, feed *ChangeFeed) InventoryModel {
	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.Prompt = "/ "
	ti.CharLimit = 120
	ti.Width = 40

	return InventoryModel{
		ctrl:   ctrl,
		feed:   feed,
		snap:   ctrl.Snapshot(),
		search: ti,
		styles: DefaultStyles(),
	}
}

func (m InventoryModel) Init() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return m.feed.Next()
}

// SearchFocused reports whether key presses go to the search box.
func (m InventoryModel) SearchFocused() bool {
	return m.search.Focused()
}

func (m InventoryModel) Update(msg tea.Msg) (InventoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case StateChangedMsg:
		m.refresh()
		if m.feed != nil {
			return m, m.feed.Next()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(20, msg.Width-6)
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m InventoryModel) updateSearch(msg tea.KeyMsg) (InventoryModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		m.ctrl.SubmitSearch(m.search.Value())
		m.refresh()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.ctrl.SetSearch(v)
		m.refresh()
	}
	return m, cmd
}

func (m InventoryModel) updateKeys(msg tea.KeyMsg) (InventoryModel, tea.Cmd) {
	switch msg.String() {
	case "/":
		return m, m.search.Focus()
	case "tab":
		m.ctrl.SelectCategory(m.shiftCategory(1))
		m.cursor = 0
	case "shift+tab":
		m.ctrl.SelectCategory(m.shiftCategory(-1))
		m.cursor = 0
	case "s":
		m.ctrl.SetSort(m.snap.SortField.Next())
	case "d":
		m.ctrl.ToggleDirection()
	case "m":
		m.ctrl.LoadMore()
	case "r":
		m.ctrl.Retry()
	case "j", "down":
		if m.cursor < len(m.snap.Products)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "enter":
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg { return OpenDetailMsg{ID: p.ID} }
		}
		return m, nil
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m *InventoryModel) refresh() {
	m.snap = m.ctrl.Snapshot()
	if m.cursor >= len(m.snap.Products) {
		m.cursor = max(0, len(m.snap.Products)-1)
	}
}

// Selected returns the product under the cursor.
func (m InventoryModel) Selected() (models.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Products) {
		return models.Product{}, false
	}
	return m.snap.Products[m.cursor], true
}

func (m InventoryModel) categoryOptions() []string {
	opts := []string{inventory.AllCategories}
	for _, c := range m.snap.Categories {
		if c != inventory.AllCategories {
			opts = append(opts, c)
		}
	}
	return opts
}

func (m InventoryModel) shiftCategory(step int) string {
	opts := m.categoryOptions()
	i := slices.Index(opts, m.snap.Category)
	if i < 0 {
		i = 0
	}
	i = (i + step + len(opts)) % len(opts)
	return opts[i]
}

func (m InventoryModel) View() string {
	s := m.snap
	st := m.styles

	var b strings.Builder
	b.WriteString(st.Title.Render("Inventory"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	sortLabel := "none"
	if s.CanToggleDirection() {
		sortLabel = fmt.Sprintf("%s %s", s.SortField, s.SortDirection.Arrow())
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n\n",
		st.Label.Render("Category:"), st.Selected.Render("< "+s.Category+" >"),
		st.Label.Render("Sort:"), sortLabel))

	if s.Err != nil && s.Severity == inventory.ErrorBlocking {
		b.WriteString(st.Blocking.Render("Error: " + s.Err.Error() + "\nPress r to retry."))
		b.WriteString("\n")
		b.WriteString(m.helpView())
		return b.String()
	}
	if s.Err != nil {
		b.WriteString(st.Banner.Render("! " + s.Err.Error() + " (r to retry)"))
		b.WriteString("\n\n")
	}

	switch {
	case len(s.Products) == 0 && (s.Loading || s.Searching):
		b.WriteString(st.Muted.Render("Loading products..."))
		b.WriteString("\n")
	case len(s.Products) == 0:
		b.WriteString(st.Muted.Render("No products found"))
		b.WriteString("\n")
	default:
		if s.Searching {
			b.WriteString(st.Muted.Render("Searching..."))
			b.WriteString("\n")
		}
		for i, p := range m.visible() {
			b.WriteString(m.row(p, m.offset()+i == m.cursor))
			b.WriteString("\n")
		}
	}

	switch {
	case s.LoadingMore:
		b.WriteString(st.Muted.Render("Loading more..."))
		b.WriteString("\n")
	case s.CanLoadMore:
		b.WriteString(st.Muted.Render("[m] Load more"))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\nShowing %d products\n", len(s.Products)))
	b.WriteString(m.helpView())
	return b.String()
}

func (m InventoryModel) row(p models.Product, selected bool) string {
	st := m.styles
	stock := st.InStock.Render(p.StockStatus())
	if !p.InStock() {
		stock = st.NoStock.Render(p.StockStatus())
	}
	line := fmt.Sprintf("%5d  %-36s %s  %s",
		p.ID, truncate(p.Title, 36), st.Price.Render(fmt.Sprintf("$%9.2f", p.Price)), stock)
	if selected {
		return st.Selected.Render("> ") + line
	}
	return "  " + line
}

// visible clips the list to the window height around the cursor.
func (m InventoryModel) visible() []models.Product {
	rows := m.listHeight()
	ps := m.snap.Products
	if rows <= 0 || len(ps) <= rows {
		return ps
	}
	off := m.offset()
	return ps[off:min(len(ps), off+rows)]
}

func (m InventoryModel) offset() int {
	rows := m.listHeight()
	if rows <= 0 || m.cursor < rows {
		return 0
	}
	return m.cursor - rows + 1
}

func (m InventoryModel) listHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(3, m.height-12)
}

func (m InventoryModel) helpView() string {
	return m.styles.Help.Render("/ search  tab category  s sort  d direction  m more  r retry  enter details  q quit")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
