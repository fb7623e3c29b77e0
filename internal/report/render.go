package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Renderer writes a run report in one output format.
type Renderer interface {
	Render(w io.Writer, run *Run) error
	ContentType() string
}

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "yaml", "html"}

// NewRenderer returns the renderer for format.
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return TextRenderer{}, nil
	case "json":
		return JSONRenderer{Indent: "  "}, nil
	case "yaml", "yml":
		return YAMLRenderer{}, nil
	case "html":
		return HTMLRenderer{}, nil
	default:
		return nil, errors.Newf("unknown report format %q (want one of %s)",
			format, strings.Join(Formats, ", "))
	}
}

// JSONRenderer encodes the run as JSON.
type JSONRenderer struct {
	Indent string
}

func (r JSONRenderer) Render(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	if r.Indent != "" {
		enc.SetIndent("", r.Indent)
	}
	return errors.Wrap(enc.Encode(run), "encode json report")
}

func (JSONRenderer) ContentType() string { return "application/json" }

// YAMLRenderer encodes the run as YAML.
type YAMLRenderer struct{}

func (YAMLRenderer) Render(w io.Writer, run *Run) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(run); err != nil {
		return errors.Wrap(err, "encode yaml report")
	}
	return errors.Wrap(enc.Close(), "encode yaml report")
}

func (YAMLRenderer) ContentType() string { return "application/yaml" }
