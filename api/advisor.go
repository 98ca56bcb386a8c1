/*
advisor.go - Fire-and-forget narrative advice dispatch

PURPOSE:
  After a calculation, callers may ask for an AI-generated narrative
  summary of their result. The advisor is an external collaborator: the
  engine never awaits it, never reads its output, and is unaffected by
  its failures. Dispatch posts a prompt to the configured endpoint in a
  background goroutine and logs the outcome.

DESIGN:
  - Nil-safe: a handler with no advisor simply skips dispatch
  - Bounded: each dispatch carries its own timeout, detached from the
    originating request's context
  - Silent failure: errors are logged at warn, never surfaced to users
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// AdvisorClient posts calculation summaries to a narrative-advice service.
type AdvisorClient struct {
	Endpoint   string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewAdvisorClient creates a client for the given endpoint.
func NewAdvisorClient(endpoint string) *AdvisorClient {
	return &AdvisorClient{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
		Timeout:    30 * time.Second,
	}
}

// advisorPayload is the request body the advice service accepts.
type advisorPayload struct {
	Prompt string `json:"prompt"`
}

// Dispatch sends the advice request in the background and returns
// immediately. The response, if any, is consumed by the advice service's
// own delivery channel; this process never reads it.
func (c *AdvisorClient) Dispatch(result ResultDTO, provinceName string) {
	if c == nil || c.Endpoint == "" {
		return
	}
	prompt := BuildPrompt(result, provinceName)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
		defer cancel()

		body, err := json.Marshal(advisorPayload{Prompt: prompt})
		if err != nil {
			log.WithError(err).Warn("advisor: failed to encode payload")
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
		if err != nil {
			log.WithError(err).Warn("advisor: failed to build request")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			log.WithError(err).Warn("advisor: dispatch failed")
			return
		}
		resp.Body.Close()
		log.WithField("status", resp.StatusCode).Debug("advisor: dispatched")
	}()
}

// BuildPrompt renders the consultant prompt for one calculation result.
// Exported so the prompt contract can be tested without a live endpoint.
func BuildPrompt(result ResultDTO, provinceName string) string {
	totalHours := 0.0
	if result.Hours != nil {
		totalHours = result.Hours.Regular + result.Hours.Overtime15 + result.Hours.Overtime20
	}
	return fmt.Sprintf(
		"System: You are a professional Canadian financial consultant.\n"+
			"User Data Analysis for %s:\n"+
			"- Province: %s\n"+
			"- Net Per Period: $%.2f (%s)\n"+
			"- Annual Gross: $%.2f\n"+
			"- Annual Net: $%.2f\n"+
			"- Period Hours: %.1f\n\n"+
			"Objective: Provide a 3-paragraph executive summary.\n"+
			"1. Evaluate the competitiveness of this pay in %s given current housing and inflation pressures.\n"+
			"2. Provide one tax optimization or investment strategy (TFSA, RRSP, or FHSA) for this income bracket.\n"+
			"3. A quick check on work-life balance based on the hours provided.\n\n"+
			"Constraints: Note that figures are simplified estimates, not filing advice.",
		provinceName, provinceName,
		result.NetPerPeriod, result.PayFrequency,
		result.GrossAnnual, result.NetAnnual,
		totalHours, provinceName,
	)
}
