package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/dronedata/pkg/dataset"
	"github.com/cyclopcam/dronedata/pkg/storage"
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

	parser := argparse.NewParser("toyolo", "Convert a merged annotation file into a YOLO dataset split")
	annotations := parser.String("a", "annotations", &argparse.Options{Help: "Merged JSON-lines annotation file (eg Drone-detection/_train_annotation_custom.jsonl)", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Split directory (eg roboflow/train). The last part must be train, valid or test.", Required: true})
	classes := parser.String("c", "classes", &argparse.Options{Help: "Comma-separated list of class names, in index order", Default: "drone"})
	classFile := parser.String("", "classfile", &argparse.Options{Help: "Text file with one class name per line (overrides --classes)"})
	yamlFile := parser.String("y", "yaml", &argparse.Options{Help: "Dataset descriptor to write (default: data.yaml next to the split directory)"})
	splits := parser.String("", "splits", &argparse.Options{Help: "Comma-separated splits to list in the descriptor (default: every split that has an images directory)"})
	copyImages := parser.Flag("", "copy", &argparse.Options{Help: "Copy images instead of moving them"})
	store := parser.String("", "store", &argparse.Options{Help: "Publish the dataset to this location after conversion (a directory, or gs://bucket)"})
	prefix := parser.String("", "prefix", &argparse.Options{Help: "Path prefix inside --store", Default: "dataset"})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}

	classMapping := yolo.ParseClassList(*classes)
	if *classFile != "" {
		classMapping, err = yolo.LoadClassFile(*classFile)
		if err != nil {
			logger.Errorf("Failed to load class file: %v", err)
			os.Exit(1)
		}
	}

	_, err = yolo.Convert(logger, yolo.ConvertOptions{
		AnnotationFile: *annotations,
		SplitDir:       *output,
		Classes:        classMapping,
		CopyImages:     *copyImages,
	})
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	root := filepath.Dir(filepath.Clean(*output))
	if *yamlFile == "" {
		*yamlFile = filepath.Join(root, yolo.DescriptorFileName)
	}
	descriptorSplits := yolo.ExistingSplits(root)
	if *splits != "" {
		descriptorSplits = nil
		for _, s := range strings.Split(*splits, ",") {
			split, err := dataset.ParseSplit(strings.TrimSpace(s))
			if err != nil {
				logger.Errorf("%v", err)
				os.Exit(1)
			}
			descriptorSplits = append(descriptorSplits, split)
		}
	}
	if err := yolo.WriteDescriptor(*yamlFile, descriptorSplits, classMapping); err != nil {
		logger.Errorf("Failed to write %v: %v", *yamlFile, err)
		os.Exit(1)
	}
	logger.Infof("Wrote %v", *yamlFile)

	if *store != "" {
		s, err := storage.Open(logger, *store)
		if err != nil {
			logger.Errorf("Failed to open %v: %v", *store, err)
			os.Exit(1)
		}
		if _, err := yolo.Publish(logger, s, root, *prefix); err != nil {
			logger.Errorf("Failed to publish to %v: %v", *store, err)
			os.Exit(1)
		}
	}
}
