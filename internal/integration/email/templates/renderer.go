// Package templates renders the transactional email bodies.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var files embed.FS

// PasswordReset is rendered with PasswordResetData.
const PasswordReset = "password_reset"

// PasswordResetData fills the password reset email.
type PasswordResetData struct {
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// Body is one template rendered in both formats.
type Body struct {
	HTML string
	Text string
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// Renderer holds every embedded template. Each name has a NAME.html file
// with escaping and a NAME.txt plain-text twin.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates once.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(files, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(files, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render executes both formats of name with data.
func (r *Renderer) Render(name string, data any) (Body, error) {
	html, err := execute(r.html, name+".html", data)
	if err != nil {
		return Body{}, err
	}
	text, err := execute(r.text, name+".txt", data)
	if err != nil {
		return Body{}, err
	}
	return Body{HTML: html, Text: text}, nil
}

func execute(t executor, file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, file, data); err != nil {
		return "", fmt.Errorf("render %s: %w", file, err)
	}
	return buf.String(), nil
}
