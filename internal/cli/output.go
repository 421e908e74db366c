package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ztacole/BacaDong/internal/entities"
)

func printBooks(out io.Writer, books []entities.CatalogBook) {
	if len(books) == 0 {
		fmt.Fprintln(out, "No books found.")
		return
	}

	fmt.Fprintf(out, "%-5s %-30s %-22s %-12s %-6s %-6s %s\n", "ID", "Title", "Author", "Category", "Rating", "Views", "Published")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, b := range books {
		fmt.Fprintf(out, "%-5d %-30s %-22s %-12s %-6s %-6d %s\n",
			b.ID,
			truncateString(b.Title, 30),
			truncateString(b.Author, 22),
			truncateString(b.CategoryName, 12),
			formatRating(b.AverageRating),
			b.ViewCount,
			b.PublishDate.Format("2006-01-02"))
	}
}

func printBook(out io.Writer, book *entities.CatalogBook, chapters []entities.BookContent) {
	fmt.Fprintf(out, "%s\n", book.Title)
	fmt.Fprintln(out, strings.Repeat("=", len([]rune(book.Title))))
	fmt.Fprintf(out, "Author:    %s\n", book.Author)
	fmt.Fprintf(out, "Publisher: %s\n", book.Publisher)
	fmt.Fprintf(out, "Published: %s\n", book.PublishDate.Format("2006-01-02"))
	fmt.Fprintf(out, "Category:  %s\n", book.CategoryName)
	fmt.Fprintf(out, "Rating:    %s\n", formatRating(book.AverageRating))
	fmt.Fprintf(out, "Views:     %d\n", book.ViewCount)
	if book.Synopsis != "" {
		fmt.Fprintf(out, "\n%s\n", book.Synopsis)
	}

	if len(chapters) == 0 {
		return
	}
	fmt.Fprintln(out, "\nChapters:")
	for _, ch := range chapters {
		fmt.Fprintf(out, "  %d. %s\n", ch.Position, ch.Title)
		if ch.Content != "" {
			fmt.Fprintf(out, "     %s\n", ch.Content)
		}
	}
}

func formatRating(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *avg)
}

// truncateString shortens s to width runes, marking the cut with "...".
func truncateString(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
