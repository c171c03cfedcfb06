package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"chronova/internal/domain/entity"
	"chronova/internal/usecase"
)

const maxNameWidth = 40

var tableHeader = []string{"ID", "NAME", "CATEGORY", "BRAND", "PRICE", "SOLD", "CREATED"}

// writeCollection renders view as an aligned table followed by the result
// count, or a not-found line when nothing matched.
func writeCollection(out io.Writer, view usecase.CollectionView, snapshot *usecase.Catalog) {
	if view.Empty {
		fmt.Fprintln(out, "No products found")
		return
	}

	categories := make(map[entity.RefID]string, len(snapshot.Categories))
	for _, c := range snapshot.Categories {
		categories[c.ID] = c.Name
	}
	brands := make(map[entity.RefID]string, len(snapshot.Brands))
	for _, b := range snapshot.Brands {
		brands[b.ID] = b.Name
	}

	rows := make([][]string, 0, len(view.Products)+1)
	rows = append(rows, tableHeader)
	for _, p := range view.Products {
		created := "-"
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{
			p.ID.String(),
			runewidth.Truncate(p.Name, maxNameWidth, "…"),
			lookup(categories, p.CategoryID),
			lookup(brands, p.BrandID),
			decimal.NewFromFloat(p.Price).StringFixed(2),
			strconv.Itoa(p.SoldCount),
			created,
		})
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, "  "), " "))
	}

	fmt.Fprintf(out, "\n%d products found\n", view.Count)
}

func lookup(names map[entity.RefID]string, id entity.RefID) string {
	if id.IsZero() {
		return "-"
	}
	if name, ok := names[id]; ok {
		return name
	}
	return id.String()
}
