package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"otomoto_scrooper/models"
	"otomoto_scrooper/scraper"
)

var ErrCancelled = errors.New("selection cancelled")

// TUI is a full-screen selection provider.
type TUI struct {
	in  io.Reader
	out io.Writer
}

func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

func (t *TUI) Select(ctx context.Context, catalog models.Catalog) (models.Selection, error) {
	p := tea.NewProgram(newSelectModel(catalog),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := p.Run()
	if err != nil {
		return models.Selection{}, fmt.Errorf("run selection ui: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.cancelled || m.stage != stageDone {
		return models.Selection{}, ErrCancelled
	}
	return models.Selection{Brand: m.brand, Pages: m.pages}, nil
}

type stage int

const (
	stageBrand stage = iota
	stagePages
	stageDone
)

type selectModel struct {
	catalog   models.Catalog
	stage     stage
	input     string
	message   string
	brand     models.Brand
	pages     int
	maxPages  int
	cancelled bool
}

func newSelectModel(catalog models.Catalog) selectModel {
	return selectModel{catalog: catalog, stage: stageBrand}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m selectModel) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input)
	m.input = ""

	switch m.stage {
	case stageBrand:
		brand, ok := m.catalog.Lookup(value)
		if !ok {
			m.message = "No results. Try again."
			if hint := Suggest(m.catalog, value); hint != "" {
				m.message = fmt.Sprintf("No results. Did you mean %q?", hint)
			}
			return m, nil
		}
		max := scraper.MaxPages(brand.Count)
		if max < 1 {
			m.message = fmt.Sprintf("%s has %d listings, less than one full page.", brand.Name, brand.Count)
			return m, nil
		}
		m.brand, m.maxPages, m.stage, m.message = brand, max, stagePages, ""

	case stagePages:
		n, err := strconv.Atoi(value)
		if err != nil || scraper.CheckPages(n, m.maxPages) != nil {
			m.message = fmt.Sprintf("Wrong number of pages, expected 1 - %d.", m.maxPages)
			return m, nil
		}
		m.pages, m.stage, m.message = n, stageDone, ""
		return m, tea.Quit
	}

	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(Title.Render("Available brands"))
	b.WriteString("\n")
	b.WriteString(RenderCatalog(m.catalog))
	b.WriteString("\n\n")

	switch m.stage {
	case stageBrand:
		b.WriteString(Question.Render("Write brand:"))
	case stagePages:
		b.WriteString(Success.Render(fmt.Sprintf("Brand: %s (%d listings)", m.brand.Name, m.brand.Count)))
		b.WriteString("\n")
		b.WriteString(Question.Render(fmt.Sprintf("How many pages to read? (1 - %d)", m.maxPages)))
	case stageDone:
		b.WriteString(Success.Render(fmt.Sprintf("Reading %d pages of %s", m.pages, m.brand.Name)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(InputBox.Render(m.input + "_"))
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(Warning.Render(m.message))
	}
	b.WriteString("\n")
	b.WriteString(Muted.Render("enter: confirm • esc: quit"))
	b.WriteString("\n")
	return b.String()
}
