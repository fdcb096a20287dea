package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"planner/internal/dates"
	"planner/internal/storage"
)

// TaskwarriorImporter reads `task export` output, either a JSON array or
// newline-delimited JSON.
type TaskwarriorImporter struct{}

type taskwarriorTask struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Due         string `json:"due"`
	Entry       string `json:"entry"`
	End         string `json:"end"`
	UUID        string `json:"uuid"`
}

const maxNDJSONLineBytes = 4 << 20 // 4MiB

// Name returns the importer name.
func (t *TaskwarriorImporter) Name() string {
	return "taskwarrior"
}

// Parse reads the export. Deleted tasks are skipped.
func (t *TaskwarriorImporter) Parse(reader io.Reader) ([]storage.Task, error) {
	br := bufio.NewReader(reader)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var raw []taskwarriorTask
	if first == '[' {
		raw, err = decodeJSONArray(br)
	} else {
		raw, err = decodeNDJSON(br)
	}
	if err != nil {
		return nil, err
	}

	var tasks []storage.Task
	for _, tw := range raw {
		if task, ok := taskFromTaskwarrior(tw); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// peekNonSpace skips leading whitespace and returns the next byte unread.
func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b, r.UnreadByte()
	}
}

// decodeJSONArray streams the elements of a JSON array.
func decodeJSONArray(r io.Reader) ([]taskwarriorTask, error) {
	dec := json.NewDecoder(r)
	if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
		return nil, fmt.Errorf("failed to parse JSON array: expected '['")
	}
	var out []taskwarriorTask
	for i := 1; dec.More(); i++ {
		var v taskwarriorTask
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		out = append(out, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	return out, nil
}

func decodeNDJSON(r io.Reader) ([]taskwarriorTask, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxNDJSONLineBytes)

	var out []taskwarriorTask
	lineNo, records := 0, 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var tw taskwarriorTask
		if err := json.Unmarshal(line, &tw); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNo, err)
		}
		out = append(out, tw)
		records++
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("taskwarrior NDJSON line %d exceeds %d bytes", lineNo+1, maxNDJSONLineBytes)
		}
		return nil, fmt.Errorf("failed to read NDJSON: %w", err)
	}
	if records == 0 {
		return nil, fmt.Errorf("empty input")
	}
	return out, nil
}

// taskFromTaskwarrior dates a completed task by its end, otherwise by its due
// date, otherwise by its entry date.
func taskFromTaskwarrior(tw taskwarriorTask) (storage.Task, bool) {
	text := strings.TrimSpace(tw.Description)
	if tw.Status == "deleted" || text == "" {
		return storage.Task{}, false
	}

	done := tw.Status == "completed"
	date := ""
	candidates := []string{tw.Due, tw.Entry}
	if done {
		candidates = []string{tw.End, tw.Due, tw.Entry}
	}
	for _, c := range candidates {
		if date = parseTaskwarriorDate(c); date != "" {
			break
		}
	}

	return storage.Task{
		ID:        tw.UUID,
		Text:      text,
		Emoji:     taskwarriorMarker(tw.Priority),
		Completed: done,
		Date:      date,
	}, true
}

func taskwarriorMarker(priority string) string {
	switch strings.ToUpper(strings.TrimSpace(priority)) {
	case "H":
		return markerHigh
	case "M":
		return markerMedium
	case "L":
		return markerLow
	default:
		return ""
	}
}

var taskwarriorDateLayouts = []string{
	"20060102T150405Z",
	"2006-01-02T15:04:05Z",
	dates.KeyLayout,
}

// parseTaskwarriorDate converts a UTC Taskwarrior timestamp to a local date key.
func parseTaskwarriorDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range taskwarriorDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == dates.KeyLayout {
				return s
			}
			return dates.Key(t.Local())
		}
	}
	return ""
}
