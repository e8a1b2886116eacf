package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context format: {version}-{trace-id}-{parent-id}-{trace-flags}
// Example: 00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
	projectIDMu     sync.RWMutex
	configuredID    string
)

// SetProjectID pins the Google Cloud project used to build trace resource names.
// An empty id falls back to the well-known project environment variables.
func SetProjectID(id string) {
	projectIDMu.Lock()
	defer projectIDMu.Unlock()
	configuredID = id
}

func loggerWithTrace(base *zap.Logger, header, projectID, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header, projectID)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// traceparent holds the parts of a W3C traceparent header used for Cloud
// Logging correlation.
type traceparent struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (traceparent, bool) {
	m := traceHeaderRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return traceparent{}, false
	}
	return traceparent{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
}

func traceFields(header, projectID string) []zap.Field {
	resource := traceResource(header, projectID)
	if resource == "" {
		return nil
	}
	tp, _ := parseTraceparent(header)
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", resource),
		zap.String("logging.googleapis.com/spanId", tp.spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", tp.sampled),
	}
}

// traceResource returns "projects/<id>/traces/<trace>" or "" when either part
// is unknown.
func traceResource(header, projectID string) string {
	if projectID == "" {
		return ""
	}
	tp, ok := parseTraceparent(header)
	if !ok {
		return ""
	}
	return fmt.Sprintf("projects/%s/traces/%s", projectID, tp.traceID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveProjectID() string {
	projectIDMu.RLock()
	id := configuredID
	projectIDMu.RUnlock()
	if id != "" {
		return id
	}
	projectIDOnce.Do(func() {
		cachedProjectID = firstNonEmpty(
			os.Getenv("USERS_FIREBASE_PROJECT_ID"),
			os.Getenv("FIREBASE_PROJECT_ID"),
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
			os.Getenv("GCLOUD_PROJECT"),
			os.Getenv("PROJECT_ID"),
		)
	})
	return cachedProjectID
}
