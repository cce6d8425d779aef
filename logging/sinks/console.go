package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"legend-of-kiro/logging"
)

// Console renders one human-readable line per event.
type Console struct {
	logger *log.Logger
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = io.Discard
	}
	return &Console{logger: log.New(w, "", log.LstdFlags)}
}

func (s *Console) Write(event logging.Event) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Print(FormatLine(event))
	return nil
}

func (s *Console) Close(context.Context) error {
	return nil
}

// FormatLine produces the console representation of event without a
// timestamp prefix.
func FormatLine(event logging.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] tick=%d actor=%s severity=%s", event.Type, event.Tick, formatEntity(event.Actor), event.Severity)
	if len(event.Targets) > 0 {
		parts := make([]string, 0, len(event.Targets))
		for _, target := range event.Targets {
			parts = append(parts, formatEntity(target))
		}
		fmt.Fprintf(&b, " targets=%s", strings.Join(parts, ","))
	}
	if event.Payload != nil {
		data, err := json.Marshal(event.Payload)
		if err != nil {
			fmt.Fprintf(&b, " payload=%v", event.Payload)
		} else {
			fmt.Fprintf(&b, " payload=%s", data)
		}
	}
	if len(event.Extra) > 0 {
		keys := make([]string, 0, len(event.Extra))
		for k := range event.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, event.Extra[k])
		}
	}
	return b.String()
}

func formatEntity(ref logging.EntityRef) string {
	if ref.ID == "" {
		return string(ref.Kind)
	}
	if ref.Kind == "" {
		return ref.ID
	}
	return fmt.Sprintf("%s:%s", ref.Kind, ref.ID)
}
