package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// LogEmitter implements Emitter by writing one line per event to a writer.
//
// Supports two output modes:
//   - Text mode (default): Human-readable format with key=value pairs
//   - JSON mode: Machine-readable JSON format, one event per line
//
// Example text output:
//
//	[node_expanded] runID=run-001 strategy=bfs step=3 depth=1 meta={"children":3,"frontier":7}
//
// Example JSON output:
//
//	{"runID":"run-001","strategy":"bfs","step":3,"depth":1,"msg":"node_expanded","meta":{"children":3,"frontier":7}}
//
// The "state" meta key is rendered with fmt (%v) rather than JSON so that
// client state types need no JSON support.
type LogEmitter struct {
	mu       sync.Mutex
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a new LogEmitter. A nil writer selects os.Stdout.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogEmitter{
		writer:   writer,
		jsonMode: jsonMode,
	}
}

// Emit writes event to the configured writer.
func (l *LogEmitter) Emit(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.jsonMode {
		l.emitJSON(event)
	} else {
		l.emitText(event)
	}
}

func (l *LogEmitter) emitJSON(event Event) {
	data, err := json.Marshal(struct {
		RunID    string                 `json:"runID"`
		Strategy string                 `json:"strategy"`
		Step     int                    `json:"step"`
		Depth    int                    `json:"depth"`
		Msg      string                 `json:"msg"`
		Meta     map[string]interface{} `json:"meta"`
	}{
		RunID:    event.RunID,
		Strategy: event.Strategy,
		Step:     event.Step,
		Depth:    event.Depth,
		Msg:      event.Msg,
		Meta:     printableMeta(event.Meta),
	})
	if err != nil {
		fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}

	fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogEmitter) emitText(event Event) {
	fmt.Fprintf(l.writer, "[%s] runID=%s strategy=%s step=%d depth=%d",
		event.Msg, event.RunID, event.Strategy, event.Step, event.Depth)

	if len(event.Meta) > 0 {
		metaJSON, err := json.Marshal(printableMeta(event.Meta))
		if err == nil {
			fmt.Fprintf(l.writer, " meta=%s", metaJSON)
		} else {
			fmt.Fprintf(l.writer, " meta=%v", event.Meta)
		}
	}

	fmt.Fprint(l.writer, "\n")
}

// printableMeta renders the client state with fmt so it always marshals.
func printableMeta(meta map[string]interface{}) map[string]interface{} {
	state, ok := meta["state"]
	if !ok {
		return meta
	}
	out := make(map[string]interface{}, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	out["state"] = fmt.Sprintf("%v", state)
	return out
}
