package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"officebot/internal/core/domain"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

//go:embed templates/*.html
var templateFS embed.FS

type vmRow struct {
	Label  string
	ID     int
	Status domain.VMStatus
}

type vmCreated struct {
	Label    string
	IP       string
	Password string
}

// Templates renders replies from the embedded HTML templates, each with a plain-text twin.
type Templates struct {
	templates *template.Template
}

func New() (*Templates, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	return &Templates{templates: t}, nil
}

func (t *Templates) VMList(vms map[string]domain.VMRecord) (string, string, error) {
	rows := make([]vmRow, 0, len(vms))
	for label, vm := range vms {
		rows = append(rows, vmRow{Label: label, ID: vm.ID, Status: vm.Status})
	}

	slices.SortFunc(rows, func(a, b vmRow) int {
		return strings.Compare(a.Label, b.Label)
	})

	html, err := t.execute("vm_list.html", rows)
	if err != nil {
		return "", "", err
	}

	plain := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Label", "ID", "Status")
	for _, row := range rows {
		plain.Row(row.Label, strconv.Itoa(row.ID), string(row.Status))
	}

	return html, plain.String(), nil
}

func (t *Templates) VMCreated(label, ip, password string) (string, string, error) {
	html, err := t.execute("vm_created.html", vmCreated{Label: label, IP: ip, Password: password})
	if err != nil {
		return "", "", err
	}

	text := fmt.Sprintf("%s is ready\nIP: %s\nRoot password: %s", label, ip, password)

	return html, text, nil
}

func (t *Templates) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("error rendering %s: %w", name, err)
	}

	return strings.TrimSpace(buf.String()), nil
}
