package main

import (
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/dronedata/pkg/dataset"
	"github.com/cyclopcam/logs"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	logger, err := logs.NewLog()
	check(err)

	parser := argparse.NewParser("reorganize", "Flatten per-video frame folders into one split directory, and merge their annotations")
	frames := parser.String("f", "frames", &argparse.Options{Help: "Frames directory (one subdirectory per video)", Required: true})
	annotations := parser.String("a", "annotations", &argparse.Options{Help: "JSON-lines annotation file produced by autolabel", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Dataset directory. WARNING: This is deleted and recreated.", Required: true})
	split := parser.Selector("s", "split", []string{"train", "valid", "test"}, &argparse.Options{Help: "Split to write", Default: "train"})
	translated := parser.String("t", "translated", &argparse.Options{Help: "Also write the translated, unmerged records to this file"})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}

	report, err := dataset.Reorganize(logger, dataset.ReorganizeOptions{
		FramesDir:      *frames,
		AnnotationFile: *annotations,
		DatasetDir:     *output,
		Split:          dataset.Split(*split),
		TranslatedFile: *translated,
	})
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if len(report.MissingImages) != 0 {
		logger.Warnf("%v annotated images have no image file", len(report.MissingImages))
	}
}
