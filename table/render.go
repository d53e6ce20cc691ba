package table

import (
	"fmt"
	"io"

	"github.com/arloliu/sectable/flagdict"
	"github.com/arloliu/sectable/internal/options"
	"github.com/arloliu/sectable/internal/pool"
	"github.com/arloliu/sectable/spec"
)

// defaultFlagFieldKey is the field rendered through the flag dictionary.
const defaultFlagFieldKey = "characteristics"

// Renderer turns a decoded table into a deterministic human-readable report.
//
// Rendering reads only already-decoded state: records appear in table order,
// fields in specification declaration order. A Renderer is immutable after
// construction and safe for concurrent use.
type Renderer struct {
	dict    *flagdict.Dict
	flagKey string
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption = options.Option[*Renderer]

// WithFlagDict sets the dictionary used to resolve the bitmask field into
// flag names. The default is flagdict.Default().
func WithFlagDict(d *flagdict.Dict) RendererOption {
	return options.New(func(r *Renderer) error {
		if d == nil {
			return fmt.Errorf("flag dictionary cannot be nil")
		}
		r.dict = d

		return nil
	})
}

// WithFlagField sets the field key rendered as a resolved flag list instead
// of a plain integer. The default is "characteristics".
func WithFlagField(key string) RendererOption {
	return options.New(func(r *Renderer) error {
		if key == "" {
			return fmt.Errorf("flag field key cannot be empty")
		}
		r.flagKey = key

		return nil
	})
}

// NewRenderer creates a Renderer.
//
// Returns:
//   - *Renderer: Configured renderer
//   - error: Option error
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		dict:    flagdict.Default(),
		flagKey: defaultFlagFieldKey,
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Render renders the table report as a string.
//
// For every record, every specification field is emitted as a "label: value"
// line: the string field as the decoded name, the flag field as a resolved
// flag name list, and every other integer field as decimal with its
// hexadecimal representation. Rendering the same decoded table twice yields
// identical text.
//
// Returns:
//   - string: Rendered report
//   - error: errs.ErrNotDecoded, or errs.ErrFieldNotFound on a
//     specification/model mismatch
func (r *Renderer) Render(t *Table) (string, error) {
	buf := pool.GetRenderBuffer()
	defer pool.PutRenderBuffer(buf)

	if err := r.render(buf, t); err != nil {
		return "", err
	}

	return string(buf.Bytes()), nil
}

// RenderTo renders the table report into w.
//
// Returns:
//   - error: Render errors per Render, or the writer's error
func (r *Renderer) RenderTo(w io.Writer, t *Table) error {
	buf := pool.GetRenderBuffer()
	defer pool.PutRenderBuffer(buf)

	if err := r.render(buf, t); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)

	return err
}

func (r *Renderer) render(buf *pool.ByteBuffer, t *Table) error {
	if err := t.ensureDecoded(); err != nil {
		return err
	}

	// A rendered record runs a few hundred bytes; pre-grow once instead of
	// reallocating per entry on large tables.
	buf.Grow(64 + len(t.headers)*256)

	fmt.Fprintf(buf, "-----------------\nSection Table\n-----------------\n\n")

	for _, h := range t.headers {
		fmt.Fprintf(buf, "entry number %d:\n...............\n\n", h.number)
		if err := r.renderHeader(buf, t, h); err != nil {
			return err
		}
		fmt.Fprintf(buf, "\n")
	}

	return nil
}

func (r *Renderer) renderHeader(buf *pool.ByteBuffer, t *Table, h Header) error {
	for _, f := range t.spec.Fields() {
		switch {
		case f.Kind == spec.KindString:
			fmt.Fprintf(buf, "%s: %s\n", f.Label, h.name)
		case f.Key == r.flagKey:
			value, err := h.Field(f.Key)
			if err != nil {
				return err
			}
			fmt.Fprintf(buf, "%s:\n", f.Label)
			for _, flag := range r.dict.Resolve(value) {
				fmt.Fprintf(buf, "  * %s\n", flag.Name)
			}
		default:
			value, err := h.Field(f.Key)
			if err != nil {
				return err
			}
			fmt.Fprintf(buf, "%s: %d (0x%x)\n", f.Label, value, value)
		}
	}

	return nil
}
