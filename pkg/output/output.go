package output

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"

	"github.com/fatih/color"
	json "github.com/json-iterator/go"
	"github.com/zfogg/resep/pkg/config"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
)

var (
	mu       sync.RWMutex
	out      io.Writer
	override OutputFormat
)

// SetWriter redirects all output; nil restores the terminal
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	if out != nil {
		return out
	}
	return color.Output
}

// Writer returns the destination all output goes to
func Writer() io.Writer {
	return writer()
}

// SetFormat forces a format regardless of config, as the --output flag
// does. An empty format returns control to config.
func SetFormat(format OutputFormat) {
	mu.Lock()
	defer mu.Unlock()
	override = format
}

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	mu.RLock()
	forced := override
	mu.RUnlock()

	format := string(forced)
	if format == "" {
		format = config.GetString("output.format")
	}
	switch format {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "table" || format == "text"
}

// Print outputs data in the configured format with optional title
func Print(title string, data interface{}) error {
	if GetOutputFormat() == FormatJSON {
		return printJSON(data)
	}
	return printText(title, data)
}

// PrintTable outputs rows under headers. JSON output encodes items instead,
// so machine consumers get the full records.
func PrintTable(headers []string, rows [][]string, items interface{}) error {
	if GetOutputFormat() == FormatJSON {
		return printJSON(items)
	}
	printTable(headers, rows)
	return nil
}

// PrintRecord outputs a single record in the configured format. Keys are
// printed in sorted order.
func PrintRecord(title string, record map[string]interface{}) error {
	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(record)
	case FormatTable:
		rows := make([][]string, 0, len(record))
		for _, k := range sortedKeys(record) {
			rows = append(rows, []string{k, fmt.Sprintf("%v", record[k])})
		}
		printTable([]string{"Field", "Value"}, rows)
		return nil
	default:
		return printRecordText(title, record)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(writer(), msg+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(writer(), "Error: "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(writer(), msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(writer(), "Warning: "+msg+"\n", args...)
}

// Println writes plain text
func Println(args ...interface{}) {
	fmt.Fprintln(writer(), args...)
}

// Printf writes formatted plain text
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(writer(), format, args...)
}

// Helper functions

func printJSON(data interface{}) error {
	jsonStr, err := formatAsPrettyJSON(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(writer(), jsonStr)
	return nil
}

func printText(title string, data interface{}) error {
	w := writer()
	if title != "" {
		fmt.Fprintf(w, "%s:\n", title)
	}
	jsonStr, err := formatAsPrettyJSON(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, jsonStr)
	return nil
}

func printRecordText(title string, record map[string]interface{}) error {
	w := writer()
	if title != "" {
		color.New(color.Bold, color.Underline).Fprintln(w, title)
	}
	bold := color.New(color.Bold)
	for _, key := range sortedKeys(record) {
		bold.Fprint(w, key+": ")
		fmt.Fprintf(w, "%v\n", record[key])
	}
	return nil
}

func printTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(writer(), 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)

	// Print headers
	for i, h := range headers {
		bold.Fprint(w, h)
		if i < len(headers)-1 {
			fmt.Fprint(w, "\t")
		}
	}
	fmt.Fprintln(w)

	// Print rows
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprint(w, cell)
			if i < len(row)-1 {
				fmt.Fprint(w, "\t")
			}
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

func sortedKeys(record map[string]interface{}) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatAsPrettyJSON(data interface{}) (string, error) {
	prettyJSON, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(prettyJSON), nil
}

// FormatAsJSON converts data to JSON string (convenience function)
func FormatAsJSON(data interface{}) (string, error) {
	jsonData, err := json.ConfigDefault.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// FormatAsPrettyJSON converts data to pretty JSON string (convenience function)
func FormatAsPrettyJSON(data interface{}) (string, error) {
	return formatAsPrettyJSON(data)
}
