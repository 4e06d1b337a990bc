package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/dronedata/pkg/config"
	"github.com/cyclopcam/dronedata/pkg/dataset"
	"github.com/cyclopcam/dronedata/pkg/labeler"
	"github.com/cyclopcam/dronedata/pkg/nn"
	"github.com/cyclopcam/dronedata/pkg/nnload"
	"github.com/cyclopcam/dronedata/pkg/storage"
	"github.com/cyclopcam/dronedata/pkg/videox"
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

	parser := argparse.NewParser("dronedata", "Run the drone dataset pipeline: extract frames, label, reorganize, convert to YOLO")
	configFile := parser.String("c", "config", &argparse.Options{Help: "JSON config file", Default: "dronedata.json"})
	stages := parser.String("s", "stages", &argparse.Options{Help: "Comma-separated stages to run (extract,label,reorganize,yolo). Default is all."})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	run, err := config.ParseStages(*stages)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	for _, stage := range run {
		logger.Infof("Running stage '%v'", stage)
		if err := runStage(logger, cfg, stage); err != nil {
			logger.Errorf("Stage '%v' failed: %v", stage, err)
			os.Exit(1)
		}
	}
}

func runStage(log logs.Log, cfg *config.Config, stage string) error {
	switch stage {
	case config.StageExtract:
		if err := os.MkdirAll(cfg.FramesDir, 0755); err != nil {
			return err
		}
		_, err := videox.ExtractAllFrames(log, cfg.Extract.VideoDir, cfg.FramesDir, cfg.Extract.Extension, cfg.Extract.Match, cfg.Extract.FPS)
		return err
	case config.StageLabel:
		return label(log, cfg)
	case config.StageReorganize:
		_, err := dataset.Reorganize(log, dataset.ReorganizeOptions{
			FramesDir:      cfg.FramesDir,
			AnnotationFile: cfg.Label.Output,
			DatasetDir:     cfg.DatasetDir,
			Split:          dataset.Split(cfg.Split),
		})
		return err
	case config.StageYolo:
		return toYolo(log, cfg)
	}
	return fmt.Errorf("Unknown stage '%v'", stage)
}

func label(log logs.Log, cfg *config.Config) error {
	detector, err := nnload.LoadDetector(log, &nnload.LoadOptions{
		Backend:      cfg.Label.Backend,
		ModelDir:     cfg.Label.ModelDir,
		ModelName:    cfg.Label.ModelName,
		ModelBaseUrl: cfg.Label.ModelBaseUrl,
		OnnxLibrary:  cfg.Label.OnnxLibrary,
		Transform:    nn.DefaultTransform(),
		ServerUrl:    cfg.Label.ServerUrl,
		ApiKey:       os.Getenv("DETECTOR_API_KEY"),
	})
	if err != nil {
		return err
	}
	defer detector.Close()

	options := labeler.NewOptions()
	options.Prompt = cfg.Label.Prompt
	options.Params.BoxThreshold = cfg.Label.BoxThreshold
	options.Params.TextThreshold = cfg.Label.TextThreshold
	options.BatchSize = cfg.Label.BatchSize
	options.NmsIouThreshold = cfg.Label.NmsIouThreshold
	options.PerDetection = cfg.Label.PerDetection
	_, err = labeler.LabelToFile(log, detector, cfg.FramesDir, cfg.Label.Output, options)
	return err
}

func toYolo(log logs.Log, cfg *config.Config) error {
	split := dataset.Split(cfg.Split)
	classes := yolo.ClassMappingFromNames(cfg.Yolo.Classes)
	_, err := yolo.Convert(log, yolo.ConvertOptions{
		AnnotationFile: filepath.Join(cfg.DatasetDir, dataset.AnnotationFileName(split)),
		SplitDir:       cfg.SplitDir(),
		Classes:        classes,
		CopyImages:     cfg.Yolo.CopyImages,
	})
	if err != nil {
		return err
	}
	descriptor := filepath.Join(cfg.Yolo.Dir, yolo.DescriptorFileName)
	if err := yolo.WriteDescriptor(descriptor, yolo.ExistingSplits(cfg.Yolo.Dir), classes); err != nil {
		return err
	}
	if cfg.Yolo.Store == "" {
		return nil
	}
	store, err := storage.Open(log, cfg.Yolo.Store)
	if err != nil {
		return err
	}
	_, err = yolo.Publish(log, store, cfg.Yolo.Dir, cfg.Yolo.Prefix)
	return err
}
