// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"sync"

	"github.com/ik5/wavtomp3"
	"github.com/ik5/wavtomp3/internal/env"
	"github.com/ik5/wavtomp3/internal/logger"
	"go.uber.org/zap"
)

var (
	logOnce sync.Once
	log     *zap.Logger
)

// bridgeLogger is built on first use from LOG_LEVEL and APP_ENV; the host
// process owns stdout so logs go to stderr.
func bridgeLogger() *zap.Logger {
	logOnce.Do(func() {
		log = zap.NewNop()

		cfg, err := env.Load("")
		if err != nil {
			return
		}
		if l, err := logger.New(cfg.LogLevel, cfg.AppEnv); err == nil {
			log = l.Named("wavtomp3")
		}
	})
	return log
}

func bridgeOptions(bitrate, quality int) wavtomp3.Options {
	opts := wavtomp3.DefaultOptions()
	opts.Bitrate = bitrate
	opts.Quality = quality
	opts.Logger = bridgeLogger()
	return opts
}

func convertWavToMp3(input, output string, bitrate, quality int) int {
	_, err := wavtomp3.ConvertWavToMp3(context.Background(), input, output, bridgeOptions(bitrate, quality))
	if err != nil {
		bridgeLogger().Error("WAV to MP3 conversion failed", zap.Error(err))
	}
	return wavtomp3.Status(err)
}

func convertAudioToMp3(input, output, format string, bitrate, quality int) int {
	_, err := wavtomp3.ConvertAudioToMp3(context.Background(), input, output, format, bridgeOptions(bitrate, quality))
	if err != nil {
		bridgeLogger().Error("audio to MP3 conversion failed", zap.Error(err))
	}
	return wavtomp3.Status(err)
}
