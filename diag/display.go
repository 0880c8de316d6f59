package diag

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"dwislpy/common"

	"github.com/pterm/pterm"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = successColorFG
	infoStyleBG    = successStyleBG
)

// PrintErrorMessage prints a standalone (unlocated) error, such as a file or
// argument-parsing failure, with a colored tag, to standard error.
func PrintErrorMessage(tag string, err error) {
	fmt.Fprintln(os.Stderr, errorStyleBG.Sprint(tag)+errorColorFG.Sprint(" "+err.Error()))
}

// PrintWarningMessage prints a standalone warning with a colored tag, to
// standard error.
func PrintWarningMessage(tag, msg string) {
	fmt.Fprintln(os.Stderr, warnStyleBG.Sprint(tag)+warnColorFG.Sprint(" "+msg))
}

// PrintInfoMessage prints an informational message with a colored tag, to
// standard output.
func PrintInfoMessage(tag, msg string) {
	fmt.Println(infoStyleBG.Sprint(tag) + infoColorFG.Sprint(" "+msg))
}

// displayMessage reports a located compile error or warning to standard
// error. Outside verbose mode this is exactly the bare `file:line:col:
// message` line the CLI contract calls for; at LogLevelVerbose it's instead
// a decorated banner with a source-line snippet and a caret under the
// column.
func displayMessage(sourcePath string, locn common.Locn, message string, isError, verbose bool) {
	if !verbose {
		fmt.Fprintf(os.Stderr, "%s: %s\n", locn, message)
		return
	}

	var b strings.Builder
	b.WriteString("\n")
	if isError {
		b.WriteString(errorStyleBG.Sprint(" Error "))
	} else {
		b.WriteString(warnStyleBG.Sprint(" Warning "))
	}
	b.WriteString(" ")
	b.WriteString(infoColorFG.Sprintln(locn.String()))
	b.WriteString(message)
	b.WriteString("\n")
	fmt.Fprint(os.Stderr, b.String())

	if locn.Line > 0 && locn.Col > 0 {
		displaySourceLine(sourcePath, locn, isError)
	}
}

// displaySourceLine shows the single source line named by locn with a caret
// marking the column. Failure to (re-)open the file is not itself reported
// as an error -- the message above is already enough context.
func displaySourceLine(path string, locn common.Locn, isError bool) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := ""
	for ln := 1; sc.Scan(); ln++ {
		if ln == locn.Line {
			line = sc.Text()
			break
		}
	}

	lineNoWidth := len(strconv.Itoa(locn.Line)) + 1
	fmtStr := "%-" + strconv.Itoa(lineNoWidth) + "v"

	var b strings.Builder
	b.WriteString(infoColorFG.Sprint(fmt.Sprintf(fmtStr, locn.Line)))
	b.WriteString("|  ")
	b.WriteString(strings.ReplaceAll(line, "\t", "    "))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", lineNoWidth))
	b.WriteString("|  ")
	b.WriteString(strings.Repeat(" ", locn.Col-1))
	if isError {
		b.WriteString(errorColorFG.Sprintln("^"))
	} else {
		b.WriteString(warnColorFG.Sprintln("^"))
	}
	fmt.Fprint(os.Stderr, b.String())
}
