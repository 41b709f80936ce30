package caption

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-textkit/internal/format"
)

// Write renders captions to w in the given format.
func Write(w io.Writer, caps []Caption, f Format) error {
	switch f.OrDefault() {
	case VTTFormat:
		return WriteVTT(w, caps)
	case JSONFormat:
		return WriteJSON(w, caps)
	case TextFormat:
		return WriteText(w, caps)
	default:
		return WriteSRT(w, caps)
	}
}

// WriteSRT renders captions as SubRip: index, time range, text, and a blank
// line between entries. No captions writes nothing.
func WriteSRT(w io.Writer, caps []Caption) error {
	var sb strings.Builder
	for i, c := range caps {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n", i+1, format.SRTTimestamp(c.Start), format.SRTTimestamp(c.End), c.Text)
		if i < len(caps)-1 {
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteVTT renders captions as WebVTT.
func WriteVTT(w io.Writer, caps []Caption) error {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n")
	for _, c := range caps {
		fmt.Fprintf(&sb, "\n%s --> %s\n%s\n", format.VTTTimestamp(c.Start), format.VTTTimestamp(c.End), c.Text)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON renders captions as an indented JSON array.
// No captions renders as [].
func WriteJSON(w io.Writer, caps []Caption) error {
	if caps == nil {
		caps = []Caption{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(caps); err != nil {
		return fmt.Errorf("encode captions: %w", err)
	}
	return nil
}

// WriteText renders one caption per line as "[start - end] text".
func WriteText(w io.Writer, caps []Caption) error {
	var sb strings.Builder
	for _, c := range caps {
		fmt.Fprintf(&sb, "[%s - %s] %s\n", format.Seconds(c.Start), format.Seconds(c.End), c.Text)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
