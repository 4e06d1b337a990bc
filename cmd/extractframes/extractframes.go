package main

import (
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/dronedata/pkg/videox"
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

	parser := argparse.NewParser("extractframes", "Extract frames from each video into its own folder")
	videos := parser.String("v", "videos", &argparse.Options{Help: "Directory with video files", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Output directory (must exist)", Required: true})
	fps := parser.Float("f", "fps", &argparse.Options{Help: "Frames per second to extract", Default: 1.0})
	match := parser.String("m", "match", &argparse.Options{Help: "Only process videos whose name contains this", Default: "DRONE"})
	ext := parser.String("e", "ext", &argparse.Options{Help: "Video file extension", Default: ".mp4"})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}

	n, err := videox.ExtractAllFrames(logger, *videos, *output, *ext, *match, *fps)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.Infof("Extracted frames from %v videos into %v", n, *output)
}
