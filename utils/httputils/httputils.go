// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils provides the HTTP transport decorators the collector
// stacks on its client.
package httputils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"
)

// Headers whose values never make it into a trace. The collector
// authenticates with an API key header, a pasted trace must not leak it.
var redactedHeaders = []string{"X-Goog-Api-Key", "Authorization"}

const (
	traceMaxLines = 256
	traceMaxChars = 512
)

// LoggingRoundTripper writes a readable dump of each HTTP exchange to
// Writer. A nil Writer disables tracing entirely.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Writer    io.Writer
	DumpBody  bool
}

func redact(line string) string {
	for _, h := range redactedHeaders {
		if len(line) > len(h) && strings.EqualFold(line[:len(h)], h) && line[len(h)] == ':' {
			return h + ": [redacted]"
		}
	}

	return line
}

// trim prefixes, redacts and truncates a dump for the trace log.
func trim(dump string, prefix byte) string {
	lines := strings.Split(dump, "\n")
	if len(lines) > traceMaxLines {
		lines = append(lines[:traceMaxLines], "…")
	}

	var sb strings.Builder

	for _, line := range lines {
		line = redact(line)
		if len(line) > traceMaxChars {
			line = line[:traceMaxChars] + "…"
		}

		sb.WriteByte(prefix)
		sb.WriteByte(' ')
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Writer == nil {
		return t.Transport.RoundTrip(req)
	}

	dump, err := httputil.DumpRequestOut(req, t.DumpBody)
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP request: %w", err)
	}

	if _, err := fmt.Fprint(t.Writer, trim(string(dump), '>')); err != nil {
		return nil, fmt.Errorf("tracing HTTP request: %w", err)
	}

	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	dump, err = httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP response: %w", err)
	}

	if _, err := fmt.Fprintf(t.Writer, "< RESPONSE: [%v]\n%s", time.Since(start), trim(string(dump), '<')); err != nil {
		return nil, fmt.Errorf("tracing HTTP response: %w", err)
	}

	return resp, nil
}

// AppendRequestHeadersRoundTripper sets a fixed set of headers on every
// outgoing request.
type AppendRequestHeadersRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *AppendRequestHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}

	return t.Transport.RoundTrip(req)
}
