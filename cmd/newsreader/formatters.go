package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"newsreader/internal/article"
	"newsreader/internal/render"
)

type printFunc func(w io.Writer, articles []article.Article, total int) error

func listPrinter(format string) (printFunc, error) {
	switch format {
	case "table":
		return printListTable, nil
	case "json":
		return printListJSON, nil
	case "compact":
		return printListCompact, nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be table, json, or compact)", format)
	}
}

// printListTable prints articles in human-readable format
func printListTable(w io.Writer, articles []article.Article, total int) error {
	if len(articles) == 0 {
		fmt.Fprintln(w, render.EmptyFeedMessage)
		return nil
	}

	fmt.Fprintf(w, "Showing %d of %d articles\n\n", len(articles), total)

	for _, a := range articles {
		c := render.CardFor(a, false)

		fmt.Fprintf(w, "%s\n", truncate(c.Title, 70))
		fmt.Fprintf(w, "   %s | %s | %s\n", orUnknown(c.Category), orUnknown(c.Source), c.Date)
		if c.Reason != "" {
			fmt.Fprintf(w, "   ★ %s\n", c.Reason)
		}
		fmt.Fprintf(w, "   %s\n", truncate(c.Summary, 150))
		if c.URL != "" {
			fmt.Fprintf(w, "   URL: %s\n", c.URL)
		}
		fmt.Fprintf(w, "   ID: %s\n", c.ArticleID)
		fmt.Fprintln(w)
	}
	return nil
}

// printListJSON prints articles in JSON format
func printListJSON(w io.Writer, articles []article.Article, total int) error {
	if articles == nil {
		articles = []article.Article{}
	}
	output := map[string]any{
		"articles": articles,
		"total":    total,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printListCompact prints one line per article
func printListCompact(w io.Writer, articles []article.Article, _ int) error {
	if len(articles) == 0 {
		fmt.Fprintln(w, render.EmptyFeedMessage)
		return nil
	}

	for _, a := range articles {
		c := render.CardFor(a, false)

		shortID := c.ArticleID
		if len(shortID) > 8 {
			shortID = shortID[:8] + "..."
		}
		fmt.Fprintf(w, "%s %s (%s)\n", shortID, c.Title, orUnknown(c.Source))
	}
	return nil
}

// printCounts prints one line per category, total last.
func printCounts(w io.Writer, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		if k != "total" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "%-15s %d\n", k, counts[k])
	}
	if total, ok := counts["total"]; ok {
		fmt.Fprintf(w, "%-15s %d\n", "total", total)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
