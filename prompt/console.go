package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"otomoto_scrooper/export"
	"otomoto_scrooper/models"
	"otomoto_scrooper/scraper"
)

// ErrExit is returned when the user picks Exit from the export menu.
var ErrExit = errors.New("exit requested")

type menuEntry struct {
	key     string
	label   string
	formats []export.Format
}

var exportMenu = []menuEntry{
	{"1", "CSV", []export.Format{export.FormatCSV}},
	{"2", "PDF", []export.Format{export.FormatPDF}},
	{"3", "CSV and PDF", []export.Format{export.FormatCSV, export.FormatPDF}},
	{"4", "SQLite", []export.Format{export.FormatSQLite}},
	{"0", "Exit", nil},
}

// Console asks questions line by line on any reader/writer pair.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Select shows the catalog, then asks for a brand and a page count until
// both are valid.
func (c *Console) Select(ctx context.Context, catalog models.Catalog) (models.Selection, error) {
	fmt.Fprintln(c.out, Title.Render("Available brands"))
	fmt.Fprintln(c.out, RenderCatalog(catalog))

	brand, err := c.askBrand(ctx, catalog)
	if err != nil {
		return models.Selection{}, err
	}

	pages, err := c.askPages(ctx, scraper.MaxPages(brand.Count))
	if err != nil {
		return models.Selection{}, err
	}

	return models.Selection{Brand: brand, Pages: pages}, nil
}

func (c *Console) askBrand(ctx context.Context, catalog models.Catalog) (models.Brand, error) {
	c.ask("Write brand:")
	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return models.Brand{}, err
		}

		brand, ok := catalog.Lookup(line)
		if !ok {
			if hint := Suggest(catalog, line); hint != "" {
				c.warn(fmt.Sprintf("No results. Did you mean %q? Try again:", hint))
			} else {
				c.warn("No results. Try again:")
			}
			continue
		}

		if scraper.MaxPages(brand.Count) < 1 {
			c.warn(fmt.Sprintf("%s has %d listings, less than one full page. Try another brand:", brand.Name, brand.Count))
			continue
		}
		return brand, nil
	}
}

func (c *Console) askPages(ctx context.Context, max int) (int, error) {
	c.ask(fmt.Sprintf("How many pages to read? (1 - %d)", max))
	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			c.warn(fmt.Sprintf("Enter a number between 1 and %d:", max))
			continue
		}
		if err := scraper.CheckPages(n, max); err != nil {
			c.warn(fmt.Sprintf("Wrong number of pages, expected 1 - %d. Try again:", max))
			continue
		}
		return n, nil
	}
}

// ChooseFormats shows the export menu. Exit yields ErrExit.
func (c *Console) ChooseFormats(ctx context.Context) ([]export.Format, error) {
	fmt.Fprintln(c.out, Title.Render("Export"))
	for _, entry := range exportMenu {
		fmt.Fprintf(c.out, "  %s. %s\n", entry.key, entry.label)
	}
	c.ask("Choose format:")

	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return nil, err
		}
		choice := strings.TrimSpace(line)
		for _, entry := range exportMenu {
			if entry.key != choice {
				continue
			}
			if entry.formats == nil {
				return nil, ErrExit
			}
			return entry.formats, nil
		}
		c.warn("Unknown option. Try again:")
	}
}

func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return c.in.Text(), nil
}

func (c *Console) ask(question string) {
	fmt.Fprintln(c.out, Question.Render(question))
}

func (c *Console) warn(msg string) {
	fmt.Fprintln(c.out, Warning.Render(msg))
}
