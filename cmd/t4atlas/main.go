// t4atlas converts text font descriptions into 4bpp texture atlases
// emitted as C source.
//
// Usage:
//
//	t4atlas build [flags] font.txt...   Pack descriptions and write <name>_atlas.{h,c}
//	t4atlas import [flags]              Write a description from a BDF or builtin font
//
// Run 't4atlas <command> -h' for the flags of each command.
package main

import "os"
import "fmt"

import "github.com/sirupsen/logrus"
import "golang.org/x/term"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var exitCode int
	switch os.Args[1] {
	case "build":
		exitCode = runBuild(os.Args[2 : ])
	case "import":
		exitCode = runImport(os.Args[2 : ])
	case "help", "-h", "-help", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "t4atlas: unknown command '%s'\n", os.Args[1])
		printUsage()
		exitCode = 2
	}
	os.Exit(exitCode)
}

func printUsage() {
	fmt.Fprint(os.Stderr, "Usage:\n")
	fmt.Fprint(os.Stderr, "  t4atlas build [flags] font.txt...\n")
	fmt.Fprint(os.Stderr, "  t4atlas import [flags]\n")
}

// Logs go to stderr, with colors only when stderr is a terminal.
func newLogger(verbose bool) *logrus.Logger {
	colors := term.IsTerminal(int(os.Stderr.Fd()))
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors: colors,
		DisableColors: !colors,
		DisableTimestamp: true,
	})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
