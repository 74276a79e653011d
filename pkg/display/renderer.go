// Package display renders command results for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/tekdi/tekdi-cursor-rules/pkg/commands"
	"github.com/tekdi/tekdi-cursor-rules/pkg/style"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// Column width for outcome/state labels.
const labelWidth = 11

// RenderInstallResult renders the full install report.
func RenderInstallResult(result *types.InstallResult) string {
	var output strings.Builder

	header := fmt.Sprintf("Install %s", selectionLabel(result.Selection))
	if result.DryRun {
		header += " (dry run)"
	}
	output.WriteString(style.TitleStyle.Render(header) + "\n\n")

	if len(result.Files) == 0 {
		output.WriteString("No rule files matched the selection.\n")
		return output.String()
	}

	for _, file := range result.Files {
		label := style.OutcomeStyle(file.Outcome).Sprint(pad(string(file.Outcome)))
		output.WriteString(fmt.Sprintf("  %s %s", label, file.RelPath))
		if file.BackupPath != "" {
			output.WriteString(style.MutedStyle.Render(fmt.Sprintf("  (backup: %s)", file.BackupPath)))
		}
		output.WriteString("\n")
	}

	output.WriteString("\n")
	output.WriteString(renderInstallSummary(result))
	return output.String()
}

func renderInstallSummary(result *types.InstallResult) string {
	s := result.Summary
	parts := []string{}
	if s.Installed > 0 {
		parts = append(parts, fmt.Sprintf("%d installed", s.Installed))
	}
	if s.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", s.Updated))
	}
	if s.Unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", s.Unchanged))
	}
	if s.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d would be copied", s.Skipped))
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing to do")
	}

	summary := "Summary: " + strings.Join(parts, ", ") + "\n"
	summary += style.MutedStyle.Render(fmt.Sprintf("Target: %s", result.TargetDir)) + "\n"
	if result.BackupDir != "" {
		summary += style.MutedStyle.Render(fmt.Sprintf("Backups: %s", result.BackupDir)) + "\n"
	}
	if result.DryRun {
		summary += "\nDRY RUN MODE - No changes were made\n"
	}
	return summary
}

// RenderStatusReport renders the drift report.
func RenderStatusReport(report *types.StatusReport) string {
	var output strings.Builder

	output.WriteString(style.TitleStyle.Render("Status") + "\n\n")

	if report.Stale {
		output.WriteString(fmt.Sprintf("Rules were installed from %s, source is now at %s. Run install again to refresh.\n\n",
			shortRevision(report.ManifestRevision), shortRevision(report.SourceRevision)))
	}

	if len(report.Files) == 0 {
		output.WriteString("No rules installed.\n")
		return output.String()
	}

	for _, file := range report.Files {
		label := style.StateStyle(file.State).Sprint(pad(string(file.State)))
		output.WriteString(fmt.Sprintf("  %s %s\n", label, file.RelPath))
	}

	output.WriteString("\n")
	output.WriteString(style.MutedStyle.Render(fmt.Sprintf("Target: %s", report.TargetDir)) + "\n")
	return output.String()
}

// RenderListResult renders the catalog inventory or the resolved file
// list.
func RenderListResult(result *commands.ListResult) string {
	var output strings.Builder

	if len(result.Files) > 0 {
		output.WriteString(style.TitleStyle.Render(fmt.Sprintf("Rules for %s", selectionLabel(result.Selection))) + "\n\n")
		for _, file := range result.Files {
			output.WriteString(fmt.Sprintf("  %s %s\n", pad(string(file.Layer)), file.RelPath))
		}
		return output.String()
	}

	output.WriteString(style.TitleStyle.Render("Available rules") + "\n\n")
	if len(result.Types) == 0 {
		output.WriteString("The catalog has no project types.\n")
		return output.String()
	}
	for _, ptype := range result.Types {
		output.WriteString(fmt.Sprintf("  %s\n", ptype.Name))
		for _, language := range ptype.Languages {
			output.WriteString(fmt.Sprintf("    %s", language.Name))
			if len(language.Frameworks) > 0 {
				output.WriteString(style.MutedStyle.Render(fmt.Sprintf("  (%s)", strings.Join(language.Frameworks, ", "))))
			}
			output.WriteString("\n")
		}
	}
	return output.String()
}

// RenderUninstallResult renders the uninstall report.
func RenderUninstallResult(result *commands.UninstallResult) string {
	var output strings.Builder

	header := "Uninstall"
	if result.DryRun {
		header += " (dry run)"
	}
	output.WriteString(style.TitleStyle.Render(header) + "\n\n")

	if len(result.Removed) == 0 && len(result.Kept) == 0 {
		output.WriteString("Nothing installed here.\n")
		return output.String()
	}

	for _, path := range result.Removed {
		output.WriteString(fmt.Sprintf("  %s %s\n", pad("removed"), path))
	}
	for _, path := range result.Kept {
		output.WriteString(fmt.Sprintf("  %s %s %s\n", pad("kept"), path, style.MutedStyle.Render("(modified)")))
	}
	if result.DryRun {
		output.WriteString("\nDRY RUN MODE - No changes were made\n")
	}
	return output.String()
}

func selectionLabel(sel types.Selection) string {
	label := sel.Type + "/" + sel.Language
	if sel.Framework != "" {
		label += "/" + sel.Framework
	}
	return label
}

func shortRevision(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	if rev == "" {
		return "(unknown)"
	}
	return rev
}

func pad(label string) string {
	if len(label) >= labelWidth {
		return label
	}
	return label + strings.Repeat(" ", labelWidth-len(label))
}
