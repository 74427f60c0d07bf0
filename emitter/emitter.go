package emitter

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/imkonsowa/menu-concierge/models"
)

var tmpl = template.Must(template.New("handler").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(handlerTemplate))

type Options struct {
	// Source is the configuration path recorded in the generated header.
	Source string
}

type templateData struct {
	Source     string
	Menu       string
	Items      int
	Categories int
	Contents   []string
}

// Emit writes a gofmt-ed Go program that serves the chat handler for the
// given configuration document. raw must be the original file contents; it
// is validated and embedded minified.
func Emit(w io.Writer, raw []byte, opts Options) error {
	cfg, err := models.Parse(raw)
	if err != nil {
		return err
	}

	minified, err := models.Minify(raw)
	if err != nil {
		return err
	}

	data := templateData{
		Source:     filepath.Base(opts.Source),
		Menu:       string(minified),
		Items:      models.NewIndex(cfg).Len(),
		Categories: len(cfg.Menu.Categories),
		Contents:   contents(cfg),
	}
	if opts.Source == "" {
		data.Source = "restaurant config"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render handler: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format handler: %w", err)
	}

	_, err = w.Write(src)

	return err
}

// EmitFile loads the configuration at configPath and writes the generated
// handler to out, creating parent directories. It returns the size of the
// generated source.
func EmitFile(configPath, out string, opts Options) (int, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return 0, &models.ParseError{Path: configPath, Err: err}
	}
	if opts.Source == "" {
		opts.Source = configPath
	}

	var buf bytes.Buffer
	if err := Emit(&buf, raw, opts); err != nil {
		if pe, ok := err.(*models.ParseError); ok {
			pe.Path = configPath
		}
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write handler: %w", err)
	}

	return buf.Len(), nil
}

// contents lists the embedded menu, one comment line per category and item.
func contents(cfg *models.Configuration) []string {
	var lines []string
	for i := range cfg.Menu.Categories {
		category := &cfg.Menu.Categories[i]
		lines = append(lines, oneLine(category.Stringify()))
		for j := range category.Items {
			lines = append(lines, "  "+oneLine(category.Items[j].Stringify()))
		}
	}

	return lines
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
