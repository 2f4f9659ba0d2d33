package main

import (
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// spawnCopier puts the current position on the clipboard as an arena spawn
// block, ready to paste into arena.yaml.
type spawnCopier struct {
	logger zerolog.Logger
	ready  bool
}

func newSpawnCopier(logger zerolog.Logger) *spawnCopier {
	c := &spawnCopier{logger: logger}
	if err := clipboard.Init(); err != nil {
		logger.Warn().Err(err).Msg("clipboard unavailable")
		return c
	}
	c.ready = true
	return c
}

func (c *spawnCopier) Copy(pos common.Vec3, yaw float64) {
	if !c.ready {
		return
	}
	b, err := yaml.Marshal(map[string]prefabs.SpawnSpec{"spawn": {Position: pos, Yaw: yaw}})
	if err != nil {
		c.logger.Error().Err(err).Msg("encode spawn")
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	c.logger.Info().Float64("x", pos.X).Float64("y", pos.Y).Float64("z", pos.Z).Msg("spawn copied")
}
