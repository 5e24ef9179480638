package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"btc-ltv-planner/internal/api/models"
	"btc-ltv-planner/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PresetHandler lists the scenario presets on disk.
type PresetHandler struct {
	presetsDir string
	log        zerolog.Logger
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(dir string, logger zerolog.Logger) *PresetHandler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger = logger.With().Str("component", "presets").Logger()
	logger.Info().Str("dir", dir).Msg("using presets directory")
	return &PresetHandler{presetsDir: dir, log: logger}
}

// Dir returns the presets directory path.
func (h *PresetHandler) Dir() string {
	return h.presetsDir
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.presetsDir)
	if err != nil {
		h.log.Warn().Err(err).Str("dir", h.presetsDir).Msg("read presets directory")
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !isPresetExt(ext) {
			continue
		}

		path := filepath.Join(h.presetsDir, entry.Name())
		info, err := loadPresetInfo(path, entry.Name())
		if err != nil {
			h.log.Warn().Err(err).Str("file", path).Msg("skipping invalid preset")
			continue
		}
		presets = append(presets, *info)
	}

	h.log.Debug().Int("count", len(presets)).Msg("listed presets")
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func loadPresetInfo(path, filename string) (*models.PresetInfo, error) {
	cfg, err := config.LoadUnchecked(path)
	if err != nil {
		return nil, err
	}

	// "conservative.yaml" -> "conservative"
	id := strings.TrimSuffix(filename, filepath.Ext(filename))

	name := cfg.Assumptions.Name
	if name == "" {
		name = id
	}

	return &models.PresetInfo{
		ID:       id,
		Name:     name,
		File:     path,
		Strategy: cfg.Strategy.Name,
		Inputs:   cfg.Assumptions.ToModelInputs(),
	}, nil
}

func isPresetExt(ext string) bool {
	for _, e := range presetExts {
		if ext == e {
			return true
		}
	}
	return false
}
