// hidconf-gen compiles a device catalog YAML file into the Go tables of
// package catalog.
//
//	go run ./cmd/hidconf-gen -catalog pkg/catalog/catalogs/nrf_desktop.yaml -output pkg/catalog/builtin_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/hidconf/hidconf-go/pkg/catalog"
)

func main() {
	catalogPath := flag.String("catalog", "", "Catalog YAML file")
	output := flag.String("output", "", "Output Go file")
	pkg := flag.String("package", "catalog", "Package name of the generated file")
	flag.Parse()

	if *catalogPath == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: hidconf-gen -catalog <file.yaml> -output <file.go> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*catalogPath, *output, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(catalogPath, output, pkg string) error {
	cat, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	code, err := Generate(cat, filepath.Base(catalogPath), pkg)
	if err != nil {
		return fmt.Errorf("generating: %w", err)
	}
	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s\n", output)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Keep the raw output around for debugging the templates.
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
