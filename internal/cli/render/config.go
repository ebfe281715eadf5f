package render

import (
	"fmt"
	"io"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// RenderConfig renders the stored and effective settings
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("No %s file found, showing effective values only", getRelativePath(result.ConfigPath))))
		fmt.Fprintln(r.out)
	}

	t := newTable()
	t.AppendHeader(table.Row{"Key", "Stored", "Effective"})
	for _, setting := range result.Settings {
		t.AppendRow(table.Row{nameStyle.Sprint(string(setting.Key)), faintStyle.Sprint(orNotSet(setting.Stored)), orNotSet(setting.Effective)})
	}
	fmt.Fprintln(r.out, t.Render())

	if result.Exists {
		fmt.Fprintf(r.out, "\n📁 config file: %s\n", getRelativePath(result.ConfigPath))
	}
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	if result.Fallback == "" {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s from config (pass it as a flag from now on)", result.Key)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Reset %s to: %s", result.Key, result.Fallback)))
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
