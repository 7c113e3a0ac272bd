// SPDX-License-Identifier: EPL-2.0

// Package api serves conversions over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ik5/wavtomp3"
	"github.com/ik5/wavtomp3/audio"
	"github.com/ik5/wavtomp3/encoder"
	"go.uber.org/zap"
)

const jobIDKey = "job_id"

type Config struct {
	// Defaults apply to fields a request leaves out.
	Defaults       wavtomp3.Options
	MaxUploadBytes int64
	// TempDir holds per-job files; empty uses os.TempDir.
	TempDir string
	Version string
}

type Handler struct {
	cfg Config
	log *zap.Logger
}

func NewHandler(cfg Config, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 64 << 20
	}
	return &Handler{cfg: cfg, log: log}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version,omitempty"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.cfg.Version,
	})
}

type FormatsResponse struct {
	Formats []string `json:"formats"`
	Engines []string `json:"engines"`
}

func (h *Handler) Formats(c *gin.Context) {
	c.JSON(http.StatusOK, FormatsResponse{
		Formats: wavtomp3.Formats(),
		Engines: []string{encoder.EngineLAME.String(), encoder.EngineShine.String()},
	})
}

// Convert takes a multipart upload in field "file" and answers with the MP3.
func (h *Handler) Convert(c *gin.Context) {
	jobID := uuid.NewString()
	c.Set(jobIDKey, jobID)
	c.Header("X-Job-ID", jobID)
	log := h.log.With(zap.String("job_id", jobID))

	if c.Request.ContentLength > h.cfg.MaxUploadBytes {
		problem(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.cfg.MaxUploadBytes))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			problem(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.cfg.MaxUploadBytes))
			return
		}
		problem(c, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}

	opts, err := h.options(c)
	if err != nil {
		problem(c, http.StatusBadRequest, err.Error())
		return
	}
	opts.Logger = log

	dir, err := os.MkdirTemp(h.cfg.TempDir, "wavtomp3-"+jobID+"-")
	if err != nil {
		log.Error("failed to create job directory", zap.Error(err))
		problem(c, http.StatusInternalServerError, "cannot allocate job storage")
		return
	}
	defer os.RemoveAll(dir)

	ext := strings.ToLower(filepath.Ext(file.Filename))
	input := filepath.Join(dir, "input"+ext)
	output := filepath.Join(dir, "output.mp3")

	if err := c.SaveUploadedFile(file, input); err != nil {
		log.Error("failed to store upload", zap.Error(err))
		problem(c, http.StatusInternalServerError, "cannot store upload")
		return
	}

	log.Info("conversion requested",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size),
		zap.String("engine", opts.Engine.String()))

	rep, err := wavtomp3.ConvertAudioToMp3(c.Request.Context(), input, output, c.PostForm("format"), opts)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
			problem(c, status, "conversion failed")
			return
		}
		problem(c, status, err.Error())
		return
	}

	data, err := os.ReadFile(output)
	if err != nil {
		log.Error("failed to read output", zap.Error(err))
		problem(c, http.StatusInternalServerError, "cannot read converted file")
		return
	}

	name := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)) + ".mp3"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("X-Input-Format", rep.Format)
	c.Header("X-Compression-Ratio", strconv.FormatFloat(rep.CompressionRatio, 'f', 4, 64))
	c.Header("X-MP3-Frames", strconv.Itoa(rep.Frames))
	c.Data(http.StatusOK, "audio/mpeg", data)
}

// options overlays request form values on the configured defaults.
func (h *Handler) options(c *gin.Context) (wavtomp3.Options, error) {
	opts := h.cfg.Defaults

	if v := c.PostForm("bitrate"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < -1 || n > 320 {
			return opts, fmt.Errorf("bitrate must be -1..320 kbps, got %q", v)
		}
		opts.Bitrate = n
	}
	if v := c.PostForm("quality"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < -1 || n > 9 {
			return opts, fmt.Errorf("quality must be -1..9, got %q", v)
		}
		opts.Quality = n
	}
	if v := c.PostForm("engine"); v != "" {
		e, err := encoder.ParseEngine(v)
		if err != nil {
			return opts, err
		}
		opts.Engine = e
	}
	if v := c.PostForm("mono"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("mono must be a boolean, got %q", v)
		}
		opts.Mono = b
	}
	return opts, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, wavtomp3.ErrDecode),
		errors.Is(err, wavtomp3.ErrUnsupportedFormat),
		errors.Is(err, audio.ErrInvalidRate),
		errors.Is(err, audio.ErrInvalidChannels),
		errors.Is(err, encoder.ErrUnsupportedChannels),
		errors.Is(err, encoder.ErrUnsupportedRate):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
