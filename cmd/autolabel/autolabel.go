package main

import (
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/dronedata/pkg/labeler"
	"github.com/cyclopcam/dronedata/pkg/nn"
	"github.com/cyclopcam/dronedata/pkg/nnload"
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

	parser := argparse.NewParser("autolabel", "Label a folder of extracted frames with a text-prompted detector")
	images := parser.String("i", "images", &argparse.Options{Help: "Image folder (one subdirectory per video)", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Output JSON-lines file", Default: "output.jsonl"})
	backend := parser.Selector("b", "backend", []string{nnload.BackendOnnx, nnload.BackendRemote}, &argparse.Options{Help: "Detector backend", Default: nnload.BackendOnnx})
	modelDir := parser.String("", "modeldir", &argparse.Options{Help: "Path to NN model dir", Default: "models"})
	modelName := parser.String("m", "model", &argparse.Options{Help: "NN model name (eg groundingdino_swint -> <modeldir>/groundingdino_swint.onnx)", Default: "groundingdino_swint"})
	modelUrl := parser.String("", "modelurl", &argparse.Options{Help: "Download missing model files from this URL"})
	onnxLib := parser.String("", "onnxlib", &argparse.Options{Help: "Path to the onnxruntime shared library"})
	server := parser.String("s", "server", &argparse.Options{Help: "Detection server URL, for the remote backend"})
	prompt := parser.String("p", "prompt", &argparse.Options{Help: "Text prompt", Default: nn.DefaultPrompt})
	boxThreshold := parser.Float("", "box-threshold", &argparse.Options{Help: "Box confidence threshold", Default: float64(nn.DefaultBoxThreshold)})
	textThreshold := parser.Float("", "text-threshold", &argparse.Options{Help: "Text token threshold", Default: float64(nn.DefaultTextThreshold)})
	batchSize := parser.Int("", "batch", &argparse.Options{Help: "Images per batch", Default: labeler.DefaultBatchSize})
	nms := parser.Float("", "nms", &argparse.Options{Help: "Non-max suppression IoU threshold (0 to disable)", Default: 0.0})
	perDetection := parser.Flag("", "per-detection", &argparse.Options{Help: "Write one record per detection, instead of one per image"})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}

	detector, err := nnload.LoadDetector(logger, &nnload.LoadOptions{
		Backend:      *backend,
		ModelDir:     *modelDir,
		ModelName:    *modelName,
		ModelBaseUrl: *modelUrl,
		OnnxLibrary:  *onnxLib,
		Transform:    nn.DefaultTransform(),
		ServerUrl:    *server,
		ApiKey:       os.Getenv("DETECTOR_API_KEY"),
	})
	if err != nil {
		logger.Errorf("Failed to load detector: %v", err)
		os.Exit(1)
	}

	options := labeler.NewOptions()
	options.Prompt = *prompt
	options.Params.BoxThreshold = float32(*boxThreshold)
	options.Params.TextThreshold = float32(*textThreshold)
	options.BatchSize = *batchSize
	options.NmsIouThreshold = float32(*nms)
	options.PerDetection = *perDetection

	if err := run(logger, detector, *images, *output, options); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// run takes ownership of detector, and closes it before returning
func run(log logs.Log, detector nn.PromptDetector, images, output string, options *labeler.Options) error {
	defer detector.Close()
	_, err := labeler.LabelToFile(log, detector, images, output, options)
	return err
}
