package main

import (
	"bufio"
	"fmt"
	taxidb "github.com/jcosta-ctw/sql-training"
	"github.com/spf13/pflag"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

func usageAndDie() {
	fmt.Println("Example usage:\n" +
		"    taxidb\n" +
		"    taxidb --months 6 --db nyc_taxi.duckdb\n" +
		"    taxidb --export nyc_taxi.duckdb\n" +
		"    taxidb --clip nyc_taxi.duckdb --borough Manhattan")
	os.Exit(1)
}

func main() {
	exportPath := pflag.StringP("export", "e", "", "Export a database to a zip of CSV files")
	clipPath := pflag.StringP("clip", "c", "", "Copy a database keeping only one borough")
	primaryOptions := []*string{exportPath, clipPath}

	dbPath := pflag.StringP("db", "d", "nyc_taxi.duckdb", "Path of the database to set up")
	months := pflag.IntP("months", "m", 0, "Months of trips to load (1-12), prompts if not given")
	configPath := pflag.String("config", "", "Path to a YAML config file")
	output := pflag.StringP("out", "o", "", "Path to write output to")
	borough := pflag.String("borough", "", "If --clip is specified keeps only this borough")

	pflag.Parse()

	primaryCount := 0
	for _, opt := range primaryOptions {
		if *opt != "" {
			primaryCount++
		}
	}
	if primaryCount > 1 {
		usageAndDie()
	}

	cfg := taxidb.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = taxidb.LoadConfig(*configPath)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			os.Exit(1)
		}
	}

	var err error
	if *exportPath != "" {
		outputPath := outputPathOrDefault(*exportPath, *output, ".duckdb", ".zip")
		err = taxidb.Export(*exportPath, outputPath, &taxidb.ExportOpts{})
	} else if *clipPath != "" {
		if *borough == "" {
			usageAndDie()
		}
		suffix := fmt.Sprintf("_%s.duckdb", strings.ToLower(*borough))
		outputPath := outputPathOrDefault(*clipPath, *output, ".duckdb", suffix)
		err = taxidb.Clip(*clipPath, outputPath, *borough)
	} else {
		n := *months
		if n == 0 {
			n = promptMonths(os.Stdin)
		}
		opts := &taxidb.SetupOpts{Months: n, Config: cfg}
		_, err = taxidb.Setup(*dbPath, opts)
	}

	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	} else {
		fmt.Println("All done")
	}
}

func promptMonths(stdin io.Reader) int {
	fmt.Printf("How many months of data to load? (1-12, default=%d): ", taxidb.DefaultMonths)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Println()
		return taxidb.DefaultMonths
	}
	return parseMonths(line)
}

func parseMonths(line string) int {
	line = strings.TrimSpace(line)
	if line == "" {
		return taxidb.DefaultMonths
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		fmt.Printf("Not a number, using the default of %d months\n", taxidb.DefaultMonths)
		return taxidb.DefaultMonths
	}
	if n < 1 {
		return 1
	}
	if n > 12 {
		return 12
	}
	return n
}

func outputPathOrDefault(inputPath string, outputPath string, suffixToTrim string, newSuffix string) string {
	if outputPath != "" {
		return outputPath
	}
	inputPath = path.Clean(inputPath)
	return strings.TrimSuffix(path.Base(inputPath), suffixToTrim) + newSuffix
}
