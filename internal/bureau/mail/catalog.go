// Package mail renders the fixed catalogue of transactional emails and
// delivers them through a Mailer.
package mail

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"slices"
	texttemplate "text/template"

	"gopkg.in/yaml.v3"

	"github.com/applybureau/bureau/internal/bureau/domain"
)

//go:embed templates.yaml
var defaultCatalog []byte

var (
	ErrUnknownTemplate = errors.New("mail: unknown template")
	ErrMissingVar      = errors.New("mail: missing template variable")
)

// Vars are the values substituted into a template.
type Vars map[string]string

// Email is a rendered template.
type Email struct {
	Template string
	Subject  string
	HTML     string
}

type catalogFile struct {
	Layout    string                  `yaml:"layout"`
	Templates map[string]templateSpec `yaml:"templates"`
}

type templateSpec struct {
	Subject  string   `yaml:"subject"`
	Required []string `yaml:"required"`
	Optional []string `yaml:"optional"`
	HTML     string   `yaml:"html"`
}

type entry struct {
	spec    templateSpec
	subject *texttemplate.Template
	body    *htmltemplate.Template
}

// Catalog holds the parsed templates. It is safe for concurrent use.
type Catalog struct {
	entries map[string]entry
}

// LoadCatalog parses the embedded catalogue.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog parses a catalogue document and validates it: every template
// must render using only its declared variables, and every lifecycle
// transition must have a template.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mail: parse catalogue: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, errors.New("mail: catalogue has no templates")
	}

	c := &Catalog{entries: make(map[string]entry, len(f.Templates))}
	for name, spec := range f.Templates {
		e, err := compile(name, f.Layout, spec)
		if err != nil {
			return nil, err
		}
		c.entries[name] = e
	}

	for _, from := range domain.Statuses {
		for _, to := range domain.AllowedTargets(from) {
			name, ok := TemplateForTransition(from, to)
			if !ok {
				return nil, fmt.Errorf("mail: no template for %s -> %s", from, to)
			}
			if _, ok := c.entries[name]; !ok {
				return nil, fmt.Errorf("mail: %w %q for %s -> %s", ErrUnknownTemplate, name, from, to)
			}
		}
	}
	for _, name := range []string{
		TemplateConsultationReceived,
		TemplateStaffNewConsultation,
		TemplateContactReceived,
		TemplateStaffNewContact,
	} {
		if _, ok := c.entries[name]; !ok {
			return nil, fmt.Errorf("mail: %w %q", ErrUnknownTemplate, name)
		}
	}

	return c, nil
}

func compile(name, layout string, spec templateSpec) (entry, error) {
	if spec.Subject == "" || spec.HTML == "" {
		return entry{}, fmt.Errorf("mail: template %q needs a subject and html", name)
	}

	subject, err := texttemplate.New(name).Option("missingkey=error").Parse(spec.Subject)
	if err != nil {
		return entry{}, fmt.Errorf("mail: template %q subject: %w", name, err)
	}

	if layout == "" {
		layout = `{{template "content" .}}`
	}
	body, err := htmltemplate.New(name).Option("missingkey=error").Parse(layout)
	if err != nil {
		return entry{}, fmt.Errorf("mail: layout: %w", err)
	}
	if _, err := body.New("content").Parse(spec.HTML); err != nil {
		return entry{}, fmt.Errorf("mail: template %q html: %w", name, err)
	}

	e := entry{spec: spec, subject: subject, body: body}

	// A dry run with only the declared variables catches references to
	// undeclared ones.
	probe := Vars{}
	for _, v := range spec.Required {
		probe[v] = "x"
	}
	if _, err := e.render(name, probe); err != nil {
		return entry{}, fmt.Errorf("mail: template %q uses an undeclared variable: %w", name, err)
	}
	return e, nil
}

// Render fills the named template. Every required variable must be present
// and non-empty.
func (c *Catalog) Render(name string, vars Vars) (Email, error) {
	e, ok := c.entries[name]
	if !ok {
		return Email{}, fmt.Errorf("%w %q", ErrUnknownTemplate, name)
	}
	for _, v := range e.spec.Required {
		if vars[v] == "" {
			return Email{}, fmt.Errorf("%w: %s needs %s", ErrMissingVar, name, v)
		}
	}
	return e.render(name, vars)
}

func (e entry) render(name string, vars Vars) (Email, error) {
	data := make(map[string]string, len(e.spec.Required)+len(e.spec.Optional))
	for _, v := range e.spec.Optional {
		data[v] = ""
	}
	for _, v := range e.spec.Required {
		data[v] = vars[v]
	}
	for _, v := range e.spec.Optional {
		if s, ok := vars[v]; ok {
			data[v] = s
		}
	}

	var subject, body bytes.Buffer
	if err := e.subject.Execute(&subject, data); err != nil {
		return Email{}, err
	}
	if err := e.body.Execute(&body, data); err != nil {
		return Email{}, err
	}
	return Email{Template: name, Subject: subject.String(), HTML: body.String()}, nil
}

// Names lists the catalogue's templates in order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
