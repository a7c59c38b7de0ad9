package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StampLayout names artifacts to the minute, so two runs in the same UTC
// minute write to the same files.
const StampLayout = "20060102-1504"

type Writer struct {
	Dir string
	Now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

func (w *Writer) Stamp() string {
	return w.Now().UTC().Format(StampLayout)
}

func (w *Writer) WriteText(prefix, ext, body string) (string, error) {
	return w.write(w.path(prefix, ext), []byte(body))
}

func (w *Writer) WriteJSON(prefix string, v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode %s: %w", prefix, err)
	}
	return w.write(w.path(prefix, "json"), bytes.TrimRight(buf.Bytes(), "\n"))
}

func (w *Writer) path(prefix, ext string) string {
	return filepath.Join(w.Dir, fmt.Sprintf("%s-%s.%s", prefix, w.Stamp(), ext))
}

func (w *Writer) write(path string, data []byte) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
