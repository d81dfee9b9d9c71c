package client

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Manu343726/nesview/pkg/utils"
)

// Trace records one backend request
type Trace struct {
	Operation string
	Operands  map[string]string
	Result    string
	Error     error
	Duration  time.Duration
}

func (t *Trace) resultString() string {
	if t.Error != nil {
		return fmt.Sprintf("error: %v", t.Error.Error())
	} else if len(t.Result) > 0 {
		return fmt.Sprintf("result: %v", t.Result)
	} else {
		return ""
	}
}

func (t *Trace) joinOperands() string {
	fields := utils.Map(utils.SortedKeys(t.Operands), func(name string) string {
		return name + ": " + t.Operands[name]
	})

	return utils.FormatSlice(fields, ", ")
}

func (t *Trace) String() string {
	return fmt.Sprintf("%v %v %s (%v)", t.Operation, t.joinOperands(), t.resultString(), t.Duration)
}

// Tracer receives request traces
type Tracer interface {
	SaveTrace(t *Trace)
}

// SlogTracer writes traces to a structured logger at debug level, or at
// warning level for failed requests
type SlogTracer struct {
	Logger *slog.Logger
}

func (t *SlogTracer) SaveTrace(trace *Trace) {
	attrs := make([]any, 0, 2*len(trace.Operands)+4)

	for _, name := range utils.SortedKeys(trace.Operands) {
		attrs = append(attrs, name, trace.Operands[name])
	}
	attrs = append(attrs, "duration", trace.Duration)

	if trace.Error != nil {
		t.Logger.Warn(trace.Operation, append(attrs, "error", trace.Error)...)
	} else {
		t.Logger.Debug(trace.Operation, append(attrs, "status", trace.Result)...)
	}
}

type tracedTransport struct {
	http.RoundTripper
	tracer Tracer
	now    func() time.Time
}

// NewTracedTransport wraps a transport so every round trip is reported to tracer
func NewTracedTransport(impl http.RoundTripper, tracer Tracer) http.RoundTripper {
	return &tracedTransport{
		RoundTripper: impl,
		tracer:       tracer,
		now:          time.Now,
	}
}

func (t *tracedTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	start := t.now()

	response, err := t.RoundTripper.RoundTrip(request)

	trace := &Trace{
		Operation: "backend request",
		Operands: map[string]string{
			"method": request.Method,
			"path":   request.URL.Path,
		},
		Error:    err,
		Duration: t.now().Sub(start),
	}
	if response != nil {
		trace.Result = response.Status
	}

	t.tracer.SaveTrace(trace)

	return response, err
}
