package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateData carries values into an email template.
type TemplateData map[string]interface{}

// TemplateManager renders named HTML templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

const verificationTemplate = `<p>Hello{{if .Name}}, {{.Name}}{{end}}!</p>
<p>Please confirm your email address by following the link below:</p>
<p><a href="{{.VerifyURL}}" target="_blank">Confirm email</a></p>
<p>If you did not sign up, just ignore this message.</p>`

// NewTemplateManager returns a manager preloaded with the built-in
// templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Built-ins cannot fail to parse; a panic here is a programming error.
	if err := tm.AddTemplate("verification", verificationTemplate); err != nil {
		panic(err)
	}
	return tm
}

// Render executes the named template with data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate registers or replaces a template.
func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
