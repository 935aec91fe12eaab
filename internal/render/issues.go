package render

import (
	"fmt"
	"io"

	"campaignwiki/internal/validate"
)

// Issues prints a validation report split into errors and warnings.
func Issues(w io.Writer, report *validate.Report) {
	errs, warnings := report.Split()
	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(w, "No issues found.")
		return
	}

	if len(errs) > 0 {
		fmt.Fprintln(w, styleError.Render(fmt.Sprintf("Errors (%d):", len(errs))))
		printIssues(w, errs)
	}
	if len(warnings) > 0 {
		if len(errs) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styleWarning.Render(fmt.Sprintf("Warnings (%d):", len(warnings))))
		printIssues(w, warnings)
	}
}

func printIssues(w io.Writer, issues []validate.Issue) {
	for _, issue := range issues {
		location := issue.Entity
		if issue.CampaignID != "" {
			location = fmt.Sprintf("%s [%s]", issue.Entity, issue.CampaignID)
		}
		if issue.FilePath != "" {
			location = fmt.Sprintf("%s (%s)", location, issue.FilePath)
		}
		fmt.Fprintf(w, "  - %s: %s %s\n", location, issue.Message, styleMuted.Render("("+issue.Code+")"))
	}
}
