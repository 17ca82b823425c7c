package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var (
	projectIDMu  sync.RWMutex
	projectIDSet bool
	projectID    string
)

// SetProjectID overrides the Google Cloud project used to build trace resource names.
// An empty id disables trace correlation.
func SetProjectID(id string) {
	projectIDMu.Lock()
	defer projectIDMu.Unlock()
	projectID = id
	projectIDSet = true
}

func resolveProjectID() string {
	projectIDMu.RLock()
	if projectIDSet {
		defer projectIDMu.RUnlock()
		return projectID
	}
	projectIDMu.RUnlock()

	projectIDMu.Lock()
	defer projectIDMu.Unlock()
	if !projectIDSet {
		projectID = firstNonEmpty(
			os.Getenv("FIREBASE_PROJECT_ID"),
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
		)
		projectIDSet = true
	}
	return projectID
}

func loggerWithTrace(base *zap.Logger, header, project, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header, project)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func traceFields(header, project string) []zap.Field {
	if project == "" {
		return nil
	}
	matches := traceHeaderRe.FindStringSubmatch(header)
	if len(matches) != 5 {
		return nil
	}
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", fmt.Sprintf("projects/%s/traces/%s", project, matches[2])),
		zap.String("logging.googleapis.com/spanId", matches[3]),
		zap.Bool("logging.googleapis.com/trace_sampled", matches[4] == "01"),
	}
}

func traceResource(header, project string) string {
	if project == "" {
		return ""
	}
	matches := traceHeaderRe.FindStringSubmatch(header)
	if len(matches) != 5 {
		return ""
	}
	return fmt.Sprintf("projects/%s/traces/%s", project, matches[2])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
