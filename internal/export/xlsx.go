// Package export renders a session's item list to a spreadsheet for
// offline review. One row per item; options are flattened into a single
// column with the correct ones marked.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

const sheetName = "Questions"

var header = []string{
	"#", "Type", "Question", "Gradable", "Points", "Required",
	"Difficulty", "Category", "Tag", "Options",
}

// WriteXLSX streams the workbook for items, using locale for all text with
// a default-locale fallback.
func WriteXLSX(w io.Writer, items []authoring.Item, locale string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
	}

	for row, it := range items {
		values := []any{
			it.Order + 1,
			string(it.Type),
			itemText(it, locale),
			it.IsGradable,
			it.Points,
			it.IsRequired,
			it.Difficulty,
			it.Category,
			it.Tag,
			flattenOptions(it, locale),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func itemText(it authoring.Item, locale string) string {
	if tr := it.Translation(locale); tr != nil && tr.Text != "" {
		return tr.Text
	}
	if tr := it.Translation(authoring.DefaultLocale.String()); tr != nil {
		return tr.Text
	}
	return ""
}

func flattenOptions(it authoring.Item, locale string) string {
	if len(it.Options) == 0 {
		return ""
	}
	parts := make([]string, 0, len(it.Options))
	for _, o := range it.Options {
		text := optionText(o, locale)
		if o.IsCorrect {
			text = fmt.Sprintf("[x] %s", text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " | ")
}

func optionText(o authoring.Option, locale string) string {
	want := authoring.DefaultLocale.String()
	for _, tr := range o.Translations {
		if strings.EqualFold(tr.Locale, locale) {
			return tr.Text
		}
	}
	for _, tr := range o.Translations {
		if strings.EqualFold(tr.Locale, want) {
			return tr.Text
		}
	}
	return ""
}
