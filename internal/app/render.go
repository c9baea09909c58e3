package app

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/displaygen/internal/core"
)

// RenderClient defines dependencies required by the render command.
type RenderClient interface {
	Render(req core.RenderRequest) (string, error)
}

// RenderUseCase substitutes command-line values into a template.
type RenderUseCase struct {
	client RenderClient
}

// NewRenderUseCase creates a render use-case.
func NewRenderUseCase(client RenderClient) *RenderUseCase {
	if client == nil {
		panic("NewRenderUseCase: client dependency cannot be nil")
	}
	return &RenderUseCase{client: client}
}

// RenderInput holds parsed render options.
type RenderInput struct {
	Template string
	Args     []string
	Truncate bool
	Output   io.Writer
}

// Execute renders the template and prints it followed by a newline.
func (u *RenderUseCase) Execute(input RenderInput) error {
	out, err := u.client.Render(core.RenderRequest{
		Template: input.Template,
		Args:     input.Args,
		Truncate: input.Truncate,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(input.Output, out)
	return err
}
