package ui

import "fmt"

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Green returns the text wrapped in green color codes
func Green(text string) string {
	return colorGreen + text + colorReset
}

// Yellow returns the text wrapped in yellow color codes
func Yellow(text string) string {
	return colorYellow + text + colorReset
}

// PrintInfo prints a labeled info line
func PrintInfo(label, value string) {
	fmt.Printf("%s%s:%s %s\n", colorCyan, label, colorReset, value)
}

// PrintSuccess prints a success message in green
func PrintSuccess(format string, args ...interface{}) {
	fmt.Printf(colorGreen+format+colorReset+"\n", args...)
}

// PrintWarning prints a warning message in yellow
func PrintWarning(format string, args ...interface{}) {
	fmt.Printf(colorYellow+format+colorReset+"\n", args...)
}

// PrintError prints an error message in red
func PrintError(format string, args ...interface{}) {
	fmt.Printf(colorRed+format+colorReset+"\n", args...)
}
