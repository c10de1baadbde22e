// Package kronk provides Kronk SDK setup and vision model management for the
// local analysis backend.
package kronk

import (
	"context"
	"fmt"
	"time"

	"github.com/ardanlabs/kronk/sdk/kronk"
	"github.com/ardanlabs/kronk/sdk/kronk/model"
	"github.com/ardanlabs/kronk/sdk/tools/defaults"
	"github.com/ardanlabs/kronk/sdk/tools/libs"
	"github.com/ardanlabs/kronk/sdk/tools/models"

	"github.com/ramon-reichert/photoshelf/internal/platform/logger"
)

const (
	VisionModelURL = "https://huggingface.co/ggml-org/Qwen2-VL-2B-Instruct-GGUF/resolve/main/Qwen2-VL-2B-Instruct-Q4_K_M.gguf"
	VisionProjURL  = "https://huggingface.co/ggml-org/Qwen2-VL-2B-Instruct-GGUF/resolve/main/mmproj-Qwen2-VL-2B-Instruct-Q8_0.gguf"
)

// InstallDependencies downloads the llama.cpp libraries.
func InstallDependencies(ctx context.Context, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	log(ctx, "installing dependencies")

	libsys, err := libs.New(libs.WithVersion(defaults.LibVersion("")))
	if err != nil {
		return fmt.Errorf("llama.cpp libs new: %w", err)
	}

	if _, err := libsys.Download(ctx, kronk.FmtLogger); err != nil {
		return fmt.Errorf("llama.cpp libs download: %w", err)
	}

	return nil
}

// DownloadVisionModel downloads the vision model files.
func DownloadVisionModel(ctx context.Context, log logger.Logger) (models.Path, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	log(ctx, "downloading vision model")

	mdls, err := models.New()
	if err != nil {
		return models.Path{}, fmt.Errorf("models new: %w", err)
	}

	vision, err := mdls.Download(ctx, kronk.FmtLogger, VisionModelURL, VisionProjURL)
	if err != nil {
		return models.Path{}, fmt.Errorf("vision download: %w", err)
	}

	return vision, nil
}

// Init initializes the Kronk runtime. Must be called once before loading models.
func Init() error {
	return kronk.Init()
}

// VisionConfig returns a model.Config suitable for vision inference.
func VisionConfig(mp models.Path) model.Config {
	return model.Config{
		ModelFiles:    mp.ModelFiles,
		ProjFile:      mp.ProjFile,
		ContextWindow: 8192,
		NBatch:        2048,
		NUBatch:       2048,
		CacheTypeK:    model.GGMLTypeQ8_0,
		CacheTypeV:    model.GGMLTypeQ8_0,
	}
}
