package mail

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/99minutos/job-board/internal/core/ports"
)

//go:embed templates/*.hbs
var templateFS embed.FS

// Template parts, named <name>.<part>.hbs on disk.
const (
	partSubject = "subject"
	partText    = "text"
	partHTML    = "html"
)

type emailTemplate struct {
	subject *raymond.Template
	text    *raymond.Template
	html    *raymond.Template
}

// TemplateRenderer renders Handlebars email templates parsed once at startup.
type TemplateRenderer struct {
	templates map[string]*emailTemplate
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	return NewTemplateRendererFS(templateFS, "templates")
}

// NewTemplateRendererFS parses every <name>.<part>.hbs file under dir.
// Each template needs a subject part and at least one body part.
func NewTemplateRendererFS(fsys fs.FS, dir string) (*TemplateRenderer, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	r := &TemplateRenderer{templates: make(map[string]*emailTemplate)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".hbs") {
			continue
		}
		name, part, ok := strings.Cut(strings.TrimSuffix(entry.Name(), ".hbs"), ".")
		if !ok {
			continue
		}

		content, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", entry.Name(), err)
		}
		tmpl, err := raymond.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", entry.Name(), err)
		}

		t := r.templates[name]
		if t == nil {
			t = &emailTemplate{}
			r.templates[name] = t
		}
		switch part {
		case partSubject:
			t.subject = tmpl
		case partText:
			t.text = tmpl
		case partHTML:
			t.html = tmpl
		default:
			return nil, fmt.Errorf("template %s: unknown part %q", entry.Name(), part)
		}
	}

	for name, t := range r.templates {
		if t.subject == nil {
			return nil, fmt.Errorf("template %s: missing subject", name)
		}
		if t.text == nil && t.html == nil {
			return nil, fmt.Errorf("template %s: missing body", name)
		}
	}
	return r, nil
}

// Render executes every part of the named template with data.
func (r *TemplateRenderer) Render(name string, data map[string]any) (*ports.RenderedEmail, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", name)
	}

	subject, err := t.subject.Exec(data)
	if err != nil {
		return nil, fmt.Errorf("render %s subject: %w", name, err)
	}

	out := &ports.RenderedEmail{Subject: strings.TrimSpace(subject)}
	if t.text != nil {
		if out.Text, err = t.text.Exec(data); err != nil {
			return nil, fmt.Errorf("render %s text: %w", name, err)
		}
	}
	if t.html != nil {
		if out.HTML, err = t.html.Exec(data); err != nil {
			return nil, fmt.Errorf("render %s html: %w", name, err)
		}
	}
	return out, nil
}
