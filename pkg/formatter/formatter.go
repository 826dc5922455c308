package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/output"
)

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
)

// RecipeHeaders are the columns of a recipe listing
var RecipeHeaders = []string{"ID", "NAME", "CATEGORY", "TIME", "RATING"}

// ReviewHeaders are the columns of a review listing
var ReviewHeaders = []string{"RECIPE", "CATEGORY", "RATING", "DATE", "COMMENT"}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	output.PrintSuccess(format, args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	output.PrintError(format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	output.PrintInfo(format, args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	output.PrintWarning(format, args...)
}

// Stars renders a 1-5 rating as stars
func Stars(rating int) string {
	rating = max(0, min(rating, 5))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// Minutes renders a duration given in minutes, e.g. "1j 15m"
func Minutes(n int) string {
	switch {
	case n <= 0:
		return "-"
	case n < 60:
		return fmt.Sprintf("%dm", n)
	case n%60 == 0:
		return fmt.Sprintf("%dj", n/60)
	default:
		return fmt.Sprintf("%dj %dm", n/60, n%60)
	}
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// RecipeRow renders r as a row under RecipeHeaders
func RecipeRow(r api.Recipe) []string {
	rating := "-"
	if r.ReviewCount > 0 {
		rating = fmt.Sprintf("%.1f (%d)", r.AverageRating, r.ReviewCount)
	}
	return []string{
		r.ID,
		Truncate(r.Name, 40),
		r.Category,
		Minutes(r.PrepTime + r.CookTime),
		rating,
	}
}

// RecipeRows renders a recipe listing
func RecipeRows(recipes []api.Recipe) [][]string {
	rows := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, RecipeRow(r))
	}
	return rows
}

// Date trims an RFC 3339 timestamp to its date part
func Date(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i > 0 {
		return ts[:i]
	}
	return ts
}
