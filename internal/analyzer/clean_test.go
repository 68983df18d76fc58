package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/wikitop/internal/models"
)

func rawTable(titles ...string) models.Table {
	t := make(models.Table, 0, len(titles))
	for i, title := range titles {
		t = append(t, models.Article{Article: title, Views: int64(1000 - i), Rank: i + 1, Date: "2024-02-16"})
	}
	return t
}

func TestCleanRewritesTitlesAndURLs(t *testing.T) {
	locale := models.SupportedLocale()
	in := rawTable("Wikipédia:Página_principal", "Carnaval_do_Brasil", "Especial:Pesquisar", "Lula")

	out, err := Clean(locale, in)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Carnaval do Brasil", out[0].Article)
	assert.Equal(t, "https://pt.wikipedia.org/wiki/Carnaval_do_Brasil", out[0].URL)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, int64(999), out[0].Views)
	assert.Equal(t, "2024-02-16", out[0].Date)

	assert.Equal(t, "Lula", out[1].Article)
	assert.Equal(t, 2, out[1].Rank)

	// input untouched
	assert.Equal(t, "Carnaval_do_Brasil", in[1].Article)
	assert.Equal(t, "", in[1].URL)
	assert.Equal(t, 2, in[1].Rank)
}

func TestCleanProperties(t *testing.T) {
	locale := models.SupportedLocale()

	tests := []struct {
		name   string
		titles []string
	}{
		{"empty", nil},
		{"only namespace pages", []string{"Wikipédia:A", "Especial:Pesquisar", "Especial:Pesquisar/x"}},
		{"short", []string{"A", "B_c", "Wikipédia:Sobre"}},
		{"long", func() []string {
			var titles []string
			for i := 0; i < 40; i++ {
				if i%7 == 0 {
					titles = append(titles, fmt.Sprintf("Wikipédia:Page_%d", i))
					continue
				}
				titles = append(titles, fmt.Sprintf("Artigo_%d", i))
			}
			return titles
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Clean(locale, rawTable(tt.titles...))
			require.NoError(t, err)
			require.NotNil(t, out)

			assert.LessOrEqual(t, len(out), models.CleanedRowsCap)
			for i, row := range out {
				for _, marker := range locale.NamespaceMarkers {
					assert.NotContains(t, row.Article, marker)
				}
				assert.NotContains(t, row.Article, "_")
				assert.Equal(t, i+1, row.Rank)
			}

			// order preserved: views were strictly decreasing on input
			for i := 1; i < len(out); i++ {
				assert.Greater(t, out[i-1].Views, out[i].Views)
			}

			again, err := Clean(locale, out)
			require.NoError(t, err)
			assert.Equal(t, out, again)
		})
	}
}

func TestCleanCapsAtTen(t *testing.T) {
	titles := make([]string, 25)
	for i := range titles {
		titles[i] = fmt.Sprintf("Artigo_%d", i)
	}

	out, err := Clean(models.SupportedLocale(), rawTable(titles...))
	require.NoError(t, err)
	require.Len(t, out, 10)
	assert.Equal(t, "Artigo 9", out[9].Article)
}

func TestCleanAbsentTable(t *testing.T) {
	_, err := Clean(models.SupportedLocale(), nil)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestCleanKeepsUnrelatedColons(t *testing.T) {
	out, err := Clean(models.SupportedLocale(), rawTable("Star_Wars:_Episódio_I", "Especial:Páginas_novas"))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, strings.HasPrefix(out[0].Article, "Star Wars: "))
}
