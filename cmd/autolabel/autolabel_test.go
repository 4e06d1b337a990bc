package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bmharper/cimg/v2"
	"github.com/cyclopcam/dronedata/pkg/labeler"
	"github.com/cyclopcam/dronedata/pkg/nn"
	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

type closeTracker struct {
	closed int
}

func (c *closeTracker) Close() { c.closed++ }

func (c *closeTracker) Config() *nn.ModelConfig { return &nn.ModelConfig{Architecture: "fake"} }

func (c *closeTracker) DetectBatch(batch *nn.Batch, prompt string, params *nn.DetectionParams) ([][]nn.Detection, error) {
	return make([][]nn.Detection, batch.Len()), nil
}

func TestRunClosesDetector(t *testing.T) {
	log := logs.NewTestingLog(t)
	root := t.TempDir()
	output := filepath.Join(root, "output.jsonl")

	// Labeling fails, and the detector is still closed
	det := &closeTracker{}
	require.ErrorIs(t, run(log, det, filepath.Join(root, "missing"), output, labeler.NewOptions()), os.ErrNotExist)
	require.Equal(t, 1, det.closed)

	images := filepath.Join(root, "frames")
	require.NoError(t, os.MkdirAll(filepath.Join(images, "vidA"), 0755))
	jpg, err := cimg.Compress(cimg.NewImage(16, 16, cimg.PixelFormatRGB), cimg.MakeCompressParams(cimg.Sampling444, 90, 0))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(images, "vidA", "frame_0000.jpg"), jpg, 0644))

	det = &closeTracker{}
	require.NoError(t, run(log, det, images, output, labeler.NewOptions()))
	require.Equal(t, 1, det.closed)
	_, err = os.Stat(output)
	require.NoError(t, err)
}
