package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/landsat-tools/cwv-tx/config"
	"github.com/landsat-tools/cwv-tx/expression"
	log "github.com/unchartedsoftware/plog"
)

const banner = "Atmospheric column water vapor retrieval from Landsat 8 TIRS data."

func main() {
	configPath := flag.String("config", "config.yaml", "Optional YAML configuration file.")
	windowSize := flag.Int("window", 0, "Spatial window size n; the retrieval considers n x n adjacent pixels.")
	bandTi := flag.String("ti", "", "Band i brightness temperature map name (e.g. B10).")
	bandTj := flag.String("tj", "", "Band j brightness temperature map name (e.g. B11).")
	metadataPath := flag.String("metadata", "", "Scene metadata JSON to resolve the thermal band names from.")
	mode := flag.String("mode", "", "Output mode: inlined or symbolic.")
	outputPath := flag.String("output", "", "File to write the expression to instead of stdout.")
	citation := flag.Bool("citation", false, "Print the model citation and exit.")
	flag.Parse()

	// Stand-alone invocation prints the banner only.
	if len(os.Args) == 1 {
		fmt.Println(banner)
		return
	}

	if *citation {
		fmt.Println(expression.Citation())
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Error(err, "could not load configuration")
		os.Exit(1)
	}

	// Command-line values win over the configuration file. An explicit
	// value is taken as given, zero or empty included, so boundary
	// inputs still reach the builder's validation.
	if flagGiven("window") {
		cfg.Window.Size = *windowSize
	}
	if flagGiven("ti") {
		cfg.Bands.Ti = *bandTi
	}
	if flagGiven("tj") {
		cfg.Bands.Tj = *bandTj
	}
	if flagGiven("mode") {
		cfg.Output.Mode = *mode
	}
	if *metadataPath != "" {
		cfg.Bands.MetadataPath = *metadataPath
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}

	// Scene metadata supplies the band names unless both were given
	// explicitly.
	if cfg.Bands.MetadataPath != "" && (!flagGiven("ti") || !flagGiven("tj")) {
		metadata, err := loadMetadata(cfg.Bands.MetadataPath)
		if err != nil {
			log.Error(err, "could not load scene metadata")
			os.Exit(1)
		}
		ti, tj, err := thermalBands(metadata)
		if err != nil {
			log.Error(err, "could not resolve thermal bands")
			os.Exit(1)
		}
		if !flagGiven("ti") {
			cfg.Bands.Ti = ti
		}
		if !flagGiven("tj") {
			cfg.Bands.Tj = tj
		}
	}

	opts := expression.DefaultOptions()
	opts.Geometry = expression.GeometryMode(cfg.Window.Geometry)

	builder, err := expression.NewWithOptions(cfg.Window.Size, cfg.Bands.Ti, cfg.Bands.Tj, opts)
	if err != nil {
		log.Error(err, "could not construct the retrieval expression")
		os.Exit(1)
	}

	formula, err := builder.Expression(expression.OutputMode(cfg.Output.Mode))
	if err != nil {
		log.Error(err, "could not assemble the requested output form")
		os.Exit(1)
	}

	log.Infof("window size %d over bands %s, %s (%s form)",
		cfg.Window.Size, cfg.Bands.Ti, cfg.Bands.Tj, cfg.Output.Mode)

	if cfg.Output.Path == "" {
		fmt.Println(formula)
		return
	}
	if err := ioutil.WriteFile(cfg.Output.Path, []byte(formula), 0644); err != nil {
		log.Error(err, "could not write the expression file")
		os.Exit(1)
	}
	log.Infof("expression written to %s", cfg.Output.Path)
}

// Reports whether the named flag was set explicitly on the command line.
func flagGiven(name string) bool {
	given := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			given = true
		}
	})
	return given
}
