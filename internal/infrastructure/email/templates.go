package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltmpl "html/template"
	"strings"
	texttmpl "text/template"
)

const (
	TemplateFormLinkIssued     = "form_link_issued"
	TemplateFormSubmittedAdmin = "form_submitted_admin"
	TemplateOfferStatusAdmin   = "offer_status_admin"
)

//go:embed templates/*.txt templates/*.gohtml
var templateFS embed.FS

type templateSet struct {
	text *texttmpl.Template
	html *htmltmpl.Template
}

type contextData struct {
	AppName string
	Data    any
}

// Renderer turns a template name and data into subject, text and HTML bodies.
// Every template is parsed together with its _base layout of the same extension.
type Renderer struct {
	appName string
	sets    map[string]templateSet
}

func NewRenderer(appName string) (*Renderer, error) {
	r := &Renderer{appName: appName, sets: make(map[string]templateSet)}
	for _, name := range []string{TemplateFormLinkIssued, TemplateFormSubmittedAdmin, TemplateOfferStatusAdmin} {
		text, err := texttmpl.ParseFS(templateFS, "templates/_base.txt", "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("parsing %s.txt: %w", name, err)
		}
		html, err := htmltmpl.ParseFS(templateFS, "templates/_base.gohtml", "templates/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parsing %s.gohtml: %w", name, err)
		}
		r.sets[name] = templateSet{
			text: text.Option("missingkey=error"),
			html: html.Option("missingkey=error"),
		}
	}
	return r, nil
}

// Render fills msg's subject and bodies from the named template.
func (r *Renderer) Render(msg *Message, name string, data any) error {
	set, ok := r.sets[name]
	if !ok {
		return fmt.Errorf("unknown email template %q", name)
	}
	ctx := contextData{AppName: r.appName, Data: data}

	var subject bytes.Buffer
	if err := set.text.ExecuteTemplate(&subject, "subject", ctx); err != nil {
		return fmt.Errorf("rendering %s subject: %w", name, err)
	}
	var text bytes.Buffer
	if err := set.text.ExecuteTemplate(&text, "_base.txt", ctx); err != nil {
		return fmt.Errorf("rendering %s.txt: %w", name, err)
	}
	var html bytes.Buffer
	if err := set.html.ExecuteTemplate(&html, "_base.gohtml", ctx); err != nil {
		return fmt.Errorf("rendering %s.gohtml: %w", name, err)
	}

	msg.Template = name
	msg.Subject = strings.TrimSpace(subject.String())
	msg.Text = strings.TrimSpace(text.String())
	msg.HTML = html.String()
	return nil
}
