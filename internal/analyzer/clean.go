package analyzer

import (
	"errors"
	"strings"

	"github.com/thesavant42/wikitop/internal/models"
)

// ErrNoTable is returned when the absent-result marker is passed where a table is required
var ErrNoTable = errors.New("no table to clean")

// Clean removes internal/meta pages from a ranked table and re-ranks what is left.
//
// Steps, in order: derive the canonical URL, turn underscores in titles into
// spaces, drop namespace pages, renumber ranks from 1 and keep at most
// models.CleanedRowsCap rows. The input table is not modified.
func Clean(locale models.Locale, table models.Table) (models.Table, error) {
	if table == nil {
		return nil, ErrNoTable
	}

	out := make(models.Table, 0, min(len(table), models.CleanedRowsCap))
	for _, row := range table {
		row.URL = locale.ArticleURL(row.Article)
		row.Article = strings.ReplaceAll(row.Article, "_", " ")

		if locale.IsNamespacePage(row.Article) {
			continue
		}

		row.Rank = len(out) + 1
		out = append(out, row)

		if len(out) == models.CleanedRowsCap {
			break
		}
	}

	return out, nil
}
