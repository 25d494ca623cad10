package render

import "context"

// Renderer turns a named page into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page string, options RenderOptions) ([]byte, error)
}
