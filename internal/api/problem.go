// SPDX-License-Identifier: EPL-2.0

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const problemBase = "https://github.com/ik5/wavtomp3/problems"

// ProblemDetail is an RFC 7807 error body.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	TraceID  string `json:"trace_id,omitempty"`
	JobID    string `json:"job_id,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func problem(c *gin.Context, status int, detail string) {
	p := ProblemDetail{
		Type:     problemType(status),
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		TraceID:  c.GetString("trace_id"),
		JobID:    c.GetString(jobIDKey),
		Instance: c.Request.URL.Path,
	}

	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(status, p)
}

func problemType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return problemBase + "/bad-request"
	case http.StatusRequestEntityTooLarge:
		return problemBase + "/too-large"
	case http.StatusUnprocessableEntity:
		return problemBase + "/unprocessable-audio"
	case http.StatusInternalServerError:
		return problemBase + "/internal-error"
	default:
		return problemBase + "/error"
	}
}
