package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/color-tools-mcp/internal/engine"
	"github.com/ironsheep/color-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("color-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "convert":
			os.Exit(convert(strings.Join(os.Args[2:], " ")))
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("COLOR_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Color MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("color-tools-mcp - MCP server for color conversion and gamut mapping")
	fmt.Println()
	fmt.Println("Usage: color-tools-mcp [options]")
	fmt.Println("       color-tools-mcp convert <color>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  convert <color>  Print every output format for one color and exit")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  COLOR_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("Without a command the server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

// convert prints one line per format and returns the process exit code.
func convert(query string) int {
	log.SetFlags(0)
	results := engine.New(nil).Convert(query)
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "unrecognized color: %q\n", query)
		return 1
	}
	for _, r := range results {
		fmt.Printf("%-8s %-44s %s  %s\n", r.Format.Label(), r.Value, r.HexPreview, r.TagText)
	}
	return 0
}
