package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/dronedata/pkg/dataset"
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

	parser := argparse.NewParser("dsinfo", "Check that a reorganized dataset has one annotation line per image, and validate a YOLO descriptor")
	datasetDir := parser.String("d", "dataset", &argparse.Options{Help: "Reorganized dataset directory (eg Drone-detection)"})
	yamlFile := parser.String("y", "yaml", &argparse.Options{Help: "YOLO dataset descriptor (eg roboflow/data.yaml)"})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}
	if *datasetDir == "" && *yamlFile == "" {
		logger.Errorf("Specify --dataset, --yaml, or both")
		os.Exit(1)
	}

	ok := true
	if *datasetDir != "" {
		summaries, err := dataset.Summarize(*datasetDir)
		check(err)
		for _, s := range summaries {
			status := "OK"
			if !s.HaveAnnotations {
				status = "MISSING ANNOTATIONS"
			} else if !s.Consistent() {
				status = "MISMATCH"
			}
			if status != "OK" {
				ok = false
			}
			fmt.Printf("%-6v %8v images %8v annotation lines  %v\n", s.Split, s.Images, s.AnnotationLines, status)
		}
	}

	if *yamlFile != "" {
		desc, err := yolo.ReadDescriptor(*yamlFile)
		if err == nil {
			err = desc.Validate()
		}
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		fmt.Printf("%v classes: %v\n", desc.NC, desc.Names)
		root := filepath.Dir(*yamlFile)
		for _, s := range desc.Splits {
			imagesDir := filepath.Join(root, filepath.FromSlash(s.Path))
			labelsDir := yolo.LabelsDir(filepath.Dir(imagesDir))
			if !iox.IsDir(imagesDir) || !iox.IsDir(labelsDir) {
				fmt.Printf("%-6v %v  MISSING\n", s.Split, imagesDir)
				ok = false
				continue
			}
			nImages, nLabels := countFiles(imagesDir), countFiles(labelsDir)
			status := "OK"
			if nImages != nLabels {
				status = "MISMATCH"
				ok = false
			}
			fmt.Printf("%-6v %8v images %8v label files  %v\n", s.Split, nImages, nLabels, status)
		}
	}

	if !ok {
		os.Exit(1)
	}
}

func countFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	check(err)
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}
