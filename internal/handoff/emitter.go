package handoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"planweaver/internal/params"
)

// Format selects the handoff encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unknown output format %q (valid: text, json, yaml)", s)
	}
	return f, nil
}

// Palette
var (
	colorAccent      = lipgloss.Color("#8BC34A")
	colorDestructive = lipgloss.Color("#e53935")
	colorInfo        = lipgloss.Color("#2196F3")
	colorWarning     = lipgloss.Color("#FFC107")
)

// Emitter writes invocations and errors to w in one format.
type Emitter struct {
	w      io.Writer
	format Format

	title lipgloss.Style
	group lipgloss.Style
	key   lipgloss.Style
	err   lipgloss.Style
}

// NewEmitter creates an emitter. Styling follows the terminal capabilities of w, so plain
// writers get unstyled text.
func NewEmitter(w io.Writer, format Format) *Emitter {
	r := lipgloss.NewRenderer(w)
	return &Emitter{
		w:      w,
		format: format,
		title:  r.NewStyle().Bold(true).Foreground(colorAccent),
		group:  r.NewStyle().Bold(true).Foreground(colorInfo),
		key:    r.NewStyle().Foreground(colorWarning),
		err:    r.NewStyle().Bold(true).Foreground(colorDestructive),
	}
}

// Emit writes inv.
func (e *Emitter) Emit(inv Invocation) error {
	switch e.format {
	case FormatJSON:
		return e.writeJSON(inv)
	case FormatYAML:
		return e.writeYAML(inv)
	case FormatText:
		return e.writeText(inv)
	}
	return fmt.Errorf("unknown output format %q", e.format)
}

type errorDoc struct {
	Error errorBody `json:"error" yaml:"error"`
}

type errorBody struct {
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// EmitError writes a failure in the emitter's format. Validation errors keep their source
// and field.
func (e *Emitter) EmitError(err error) error {
	body := errorBody{Message: err.Error()}
	var verr *params.ValidationError
	if errors.As(err, &verr) {
		body = errorBody{Source: verr.Source, Field: verr.Field, Message: verr.Message}
	}

	switch e.format {
	case FormatJSON:
		return e.writeJSON(errorDoc{Error: body})
	case FormatYAML:
		return e.writeYAML(errorDoc{Error: body})
	}
	_, werr := fmt.Fprintln(e.w, e.err.Render("error:")+" "+err.Error())
	return werr
}

func (e *Emitter) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.w, string(data))
	return err
}

func (e *Emitter) writeYAML(v any) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (e *Emitter) writeText(inv Invocation) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", e.title.Render("operation:"), inv.Operation)
	fmt.Fprintf(&b, "%s %s\n", e.key.Render("id:"), inv.ID)

	groups := make([]string, 0, len(inv.Options))
	for g := range inv.Options {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	for _, g := range groups {
		fmt.Fprintf(&b, "%s\n", e.group.Render(g+":"))
		writeFields(&b, e.key, inv.Options[g])
	}

	if inv.Context != nil {
		fmt.Fprintf(&b, "%s\n", e.group.Render("context options:"))
		c := inv.Context
		writeFields(&b, e.key, map[string]any{
			"semantic_k":      c.SemanticK,
			"min_similarity":  c.MinSimilarity,
			"max_chars":       c.MaxChars,
			"per_section_max": c.PerSectionMax,
			"strategy":        c.Strategy,
		})
		if c.Label != "" {
			fmt.Fprintf(&b, "  %s %s\n", e.key.Render("label:"), c.Label)
		}
	}

	_, err := io.WriteString(e.w, b.String())
	return err
}

func writeFields(b *strings.Builder, key lipgloss.Style, fields map[string]any) {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintf(b, "  %s %s\n", key.Render(n+":"), formatValue(fields[n]))
	}
}

func formatValue(v any) string {
	if ss, ok := v.([]string); ok {
		return strings.Join(ss, ", ")
	}
	return fmt.Sprint(v)
}
