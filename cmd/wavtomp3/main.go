// SPDX-License-Identifier: EPL-2.0

// Command wavtomp3 converts an audio file to MP3, or decodes it to WAV.
//
//	wavtomp3 [flags] <input> <output>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/wavtomp3"
	"github.com/ik5/wavtomp3/encoder"
	"github.com/ik5/wavtomp3/internal/env"
	"github.com/ik5/wavtomp3/internal/logger"
	"github.com/ik5/wavtomp3/internal/tracing"
	"go.uber.org/zap"
)

const version = "1.0.0"

const (
	exitOK      = 0
	exitFailure = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wavtomp3", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		format   string
		engine   string
		envFile  string
		logLevel string
		bitrate  int
		quality  int
		rate     int
		mono     bool
		rawAAC   bool
		decode   bool
		asJSON   bool
	)
	fs.StringVar(&format, "format", "", "Input format hint, used when the extension is unknown")
	fs.IntVar(&bitrate, "bitrate", -1, "MP3 bitrate in kbps (-1 for 128)")
	fs.IntVar(&quality, "quality", -1, "LAME quality 0 (best) to 9 (-1 for 5)")
	fs.StringVar(&engine, "engine", "lame", "MP3 encoder: lame or shine")
	fs.BoolVar(&mono, "mono", false, "Downmix to mono")
	fs.BoolVar(&rawAAC, "raw-aac", false, "Read .aac input without an ADTS, ID3 or MP4 signature as raw PCM")
	fs.IntVar(&rate, "rate", 0, "Output sample rate (0 keeps the input rate)")
	fs.BoolVar(&decode, "decode", false, "Write 16-bit PCM WAV instead of MP3")
	fs.StringVar(&envFile, "env", ".env", "Optional .env file")
	fs.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&asJSON, "json", false, "Print the conversion report as JSON")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "wavtomp3 %s\n\nUsage: wavtomp3 [flags] <input> <output>\n\n", version)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitFailure
	}

	cfg, err := env.Load(envFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	// flags given on the command line win over the environment
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["bitrate"] {
		bitrate = cfg.Bitrate
	}
	if !set["quality"] {
		quality = cfg.Quality
	}
	if !set["engine"] {
		engine = cfg.Engine
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}

	log, err := logger.New(logLevel, cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() { _ = log.Sync() }()

	shutdown, err := tracing.Init(ctx, tracing.Config{
		Enabled:        cfg.OTELEnabled,
		ServiceName:    "wavtomp3",
		ServiceVersion: version,
		Endpoint:       cfg.OTELEndpoint,
	})
	if err != nil {
		log.Warn("failed to initialize OpenTelemetry", zap.Error(err))
	} else {
		defer func() { _ = shutdown(context.Background()) }()
	}

	eng, err := encoder.ParseEngine(engine)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	opts := wavtomp3.Options{
		Bitrate:      bitrate,
		Quality:      quality,
		Engine:       eng,
		Mono:         mono,
		RawAAC:       rawAAC,
		SampleRate:   rate,
		BufferFrames: wavtomp3.DefaultBufferFrames,
		Logger:       log,
	}

	input, output := fs.Arg(0), fs.Arg(1)

	var rep *wavtomp3.Report
	if decode {
		rep, err = wavtomp3.DecodeToWav(ctx, input, output, format, opts)
	} else {
		rep, err = wavtomp3.ConvertAudioToMp3(ctx, input, output, format, opts)
	}
	if wavtomp3.Status(err) != wavtomp3.StatusOK {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return exitFailure
		}
		return exitOK
	}

	fmt.Fprintf(stdout, "%s -> %s: %s, %d Hz, %d ch, %d bytes (ratio %.3f)\n",
		rep.InputPath, rep.OutputPath, rep.Format, rep.SampleRate, rep.Channels,
		rep.OutputSize, rep.CompressionRatio)
	return exitOK
}
