// Command carve evaluates a .carve script and prints the resulting part
// meshes as JSON.
//
// Usage:
//
//	carve [-config carve.toml] [-pretty] [script.carve | -]
//
// The script is read from standard input when no path (or "-") is given.
// The exit status is 1 when the script produced errors.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chazu/carve/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	dumpConfig := flag.Bool("dump-config", false, "print the effective configuration and exit")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: carve [flags] [script.carve | -]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("carve: ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *dumpConfig {
		if err := writeConfig(os.Stdout, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	source, err := readSource(flag.Arg(0), os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	result := NewAppWithConfig(cfg).Evaluate(string(source))
	if err := writeResult(os.Stdout, result, *pretty); err != nil {
		log.Fatal(err)
	}
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w.Message)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

// readSource reads the script at path, or stdin for "" and "-".
func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeConfig(w io.Writer, cfg config.Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeResult(w io.Writer, result EvalResult, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
