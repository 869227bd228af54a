package report

import "github.com/pterm/pterm"

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

// PrintConversionError prints a ConversionError to the console in the same
// tag+message banner style used for every other compiler diagnostic.
func PrintConversionError(err *ConversionError) {
	errorStyleBG.Print(" " + err.Kind.String() + " ")
	errorColorFG.Println(" " + err.Message)
	if err.Span != nil {
		pterm.FgGray.Println("  --> " + err.Span.String())
	}
}

// PrintWarning prints a non-fatal diagnostic, e.g. a dropped teacher
// collaborator feature that the driver chose to skip.
func PrintWarning(msg string) {
	warnStyleBG.Print(" Warning ")
	warnColorFG.Println(" " + msg)
}

// PrintInfo prints an informational message, e.g. conversion progress.
func PrintInfo(msg string) {
	infoStyleBG.Print(" Info ")
	infoColorFG.Println(" " + msg)
}
