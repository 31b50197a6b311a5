// Package renderer turns tool results into markdown for the chat.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/etnz/fgpt"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

var integer = money.NewFormatter(0, ".", ",", "", "1")

var funcs = template.FuncMap{
	// cell escapes text for a table cell.
	"cell": func(s string) string {
		s = strings.ReplaceAll(s, "|", `\|`)
		return strings.Join(strings.Fields(s), " ")
	},
	"inc":    func(i int) int { return i + 1 },
	"labels": fgpt.Labels,
	"money":  func(d decimal.Decimal) string { return fgpt.M(d).String() },
	"rate":   func(d decimal.Decimal) string { return d.StringFixed(2) + "%" },
	"signed": func(d decimal.Decimal) string {
		if d.IsNegative() {
			return d.StringFixed(2)
		}
		return "+" + d.StringFixed(2)
	},
	"polarity": func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
	"volume":   func(n int64) string { return integer.Format(n) },
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return strings.TrimSpace(b.String())
}

var categoryTable = map[string]string{"category_table": "category_table.md"}
