package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/dronedata/pkg/iox"
	"github.com/cyclopcam/dronedata/pkg/yolo"
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

	parser := argparse.NewParser("drawlabels", "Draw the labels of a YOLO split onto its images, for visual inspection")
	splitDir := parser.String("s", "split", &argparse.Options{Help: "Split directory (eg roboflow/train)", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Output directory for the rendered PNGs", Required: true})
	classes := parser.String("c", "classes", &argparse.Options{Help: "Comma-separated list of class names", Default: "drone"})
	limit := parser.Int("n", "limit", &argparse.Options{Help: "Maximum number of images to render (0 = all)", Default: 50})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}

	check(os.MkdirAll(*output, 0755))
	classMapping := yolo.ParseClassList(*classes)

	entries, err := os.ReadDir(yolo.ImagesDir(*splitDir))
	check(err)
	n := 0
	for _, e := range entries {
		if e.IsDir() || !iox.IsImageFile(e.Name()) {
			continue
		}
		if *limit > 0 && n >= *limit {
			break
		}
		imageFile := filepath.Join(yolo.ImagesDir(*splitDir), e.Name())
		labelFile := filepath.Join(yolo.LabelsDir(*splitDir), yolo.LabelFileName(e.Name()))
		outFile := filepath.Join(*output, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))+".png")
		if err := yolo.DrawLabels(imageFile, labelFile, classMapping, outFile); err != nil {
			logger.Warnf("Skipping %v: %v", e.Name(), err)
			continue
		}
		n++
	}
	logger.Infof("Rendered %v images into %v", n, *output)
}
