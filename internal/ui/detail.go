package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"catalogadmin/internal/apis/catalog"
	"catalogadmin/internal/apis/catalog/usecases"
)

type DetailsGetter interface {
	Details(ctx context.Context, id int) (usecases.ProductDetails, error)
}

// BackMsg returns from the detail view to the list.
type BackMsg struct{}

type detailLoadedMsg struct {
	id      int
	details usecases.ProductDetails
	err     error
}

type DetailModel struct {
	svc      DetailsGetter
	id       int
	loading  bool
	details  usecases.ProductDetails
	err      error
	renderer *glamour.TermRenderer
	styles   Styles
}

// NewDetailModel prepares the page for product id. renderer may be nil, in
// which case the description is shown as plain text.
func NewDetailModel(svc DetailsGetter, id int, renderer *glamour.TermRenderer) DetailModel {
	return DetailModel{svc: svc, id: id, loading: true, renderer: renderer, styles: DefaultStyles()}
}

// NewRenderer builds the markdown renderer for descriptions.
func NewRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}
	return glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
}

func (m DetailModel) Init() tea.Cmd {
	return m.fetch()
}

func (m DetailModel) fetch() tea.Cmd {
	svc, id := m.svc, m.id
	return func() tea.Msg {
		d, err := svc.Details(context.Background(), id)
		return detailLoadedMsg{id: id, details: d, err: err}
	}
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		m.details, m.err = msg.details, msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "backspace":
			return m, func() tea.Msg { return BackMsg{} }
		case "r":
			if m.err != nil && !m.NotFound() {
				m.loading, m.err = true, nil
				return m, m.fetch()
			}
		}
	}
	return m, nil
}

func (m DetailModel) NotFound() bool {
	var nf *catalog.NotFoundError
	return errors.As(m.err, &nf)
}

func (m DetailModel) View() string {
	st := m.styles
	help := st.Help.Render("esc back  r retry  q back")

	switch {
	case m.loading:
		return st.Muted.Render("Loading product...") + "\n" + help
	case m.NotFound():
		return st.Blocking.Render("Product not found") + "\n" + help
	case m.err != nil:
		return st.Blocking.Render("Error: "+m.err.Error()) + "\n" + help
	}

	p := m.details.Product
	var b strings.Builder
	b.WriteString(st.Title.Render(p.Title))
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("%s %s\n", st.Label.Render(label+":"), value))
	}
	field("Brand", p.Brand)
	field("Category", p.Category)
	field("Price", st.Price.Render(fmt.Sprintf("$%.2f", p.Price)))
	if p.DiscountPercentage > 0 {
		field("Discount", fmt.Sprintf("%.2f%%", p.DiscountPercentage))
	}
	field("Rating", fmt.Sprintf("%.2f", p.Rating))
	stock := st.InStock.Render(m.details.StockStatus)
	if !p.InStock() {
		stock = st.NoStock.Render(m.details.StockStatus)
	}
	field("Stock", fmt.Sprintf("%s (%d)", stock, p.Stock))
	if len(p.Images) > 0 {
		field("Images", fmt.Sprintf("%d", len(p.Images)))
	}

	b.WriteString("\n")
	b.WriteString(m.description(p.Description))
	b.WriteString("\n")

	if len(m.details.Related) > 0 {
		b.WriteString(st.Label.Render("Related products"))
		b.WriteString("\n")
		for _, r := range m.details.Related {
			b.WriteString(fmt.Sprintf("  %5d  %s  %s\n", r.ID, r.Title, st.Price.Render(fmt.Sprintf("$%.2f", r.Price))))
		}
	}
	b.WriteString(help)
	return b.String()
}

func (m DetailModel) description(text string) string {
	if strings.TrimSpace(text) == "" {
		return m.styles.Muted.Render("No description.")
	}
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render("## Description\n\n" + text)
	if err != nil {
		return text
	}
	return out
}
