package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"campaignwiki/internal/connection"
	"campaignwiki/internal/dashboard"
	"campaignwiki/internal/grouping"
	"campaignwiki/internal/search"
	"campaignwiki/internal/store"
	"campaignwiki/internal/tooltip"
	"campaignwiki/internal/viewmodel"
)

func Entry(w io.Writer, entry viewmodel.Entry) {
	fmt.Fprintln(w, badge(entry.Config.Label, entry.Config.Color)+" "+styleTitle.Render(entry.Name))
	if entry.HeroSubtitle != "" {
		fmt.Fprintln(w, styleSubtitle.Render(entry.HeroSubtitle))
	}
	if entry.StatusInfo.Display != "" {
		fmt.Fprintln(w, "Status: "+toned(entry.StatusInfo.Display, entry.StatusInfo.Tone))
	}
	fmt.Fprintln(w, styleMuted.Render(entry.Path))
	if entry.BackgroundImage != "" {
		fmt.Fprintln(w, styleMuted.Render("Image: "+entry.BackgroundImage))
	}
	if entry.FullDescription != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, entry.FullDescription)
	}
	if len(entry.Connections) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleHeading.Render("Connections"))
		Connections(w, entry.Connections)
	}
}

func Connections(w io.Writer, conns []connection.Connection) {
	if len(conns) == 0 {
		fmt.Fprintln(w, styleMuted.Render("No connections."))
		return
	}
	for _, conn := range conns {
		line := fmt.Sprintf("  %s %s %s", badge(conn.TypeLabel, conn.Theme.Color), conn.Name, styleMuted.Render("("+conn.Role+")"))
		if conn.Placeholder {
			line += styleMuted.Render(" unresolved")
		}
		fmt.Fprintln(w, line)
	}
}

// Sidebar prints grouped listings with tree entries indented by depth.
func Sidebar(w io.Writer, groups []grouping.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, styleMuted.Render("No entities found."))
		return
	}
	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if group.Title != "" {
			fmt.Fprintf(w, "%s (%d)\n", styleHeading.Render(group.Title), len(group.Items))
		}
		printNodes(w, group.Items, 0)
	}
}

func printNodes(w io.Writer, nodes []*grouping.Node, depth int) {
	for _, node := range nodes {
		indent := strings.Repeat("  ", depth+1)
		line := indent + node.Name
		if node.FooterLabel != "" {
			line += " " + styleMuted.Render(node.FooterLabel)
		}
		fmt.Fprintln(w, line)
		printNodes(w, node.Children, depth+1)
	}
}

func Tooltip(w io.Writer, tip tooltip.Tooltip) {
	lines := []string{badge(tip.Label, tip.Color) + " " + styleTitle.Render(tip.Name)}
	if tip.Subtitle != "" {
		lines = append(lines, styleSubtitle.Render(tip.Subtitle))
	}
	if len(tip.Tags) > 0 {
		tags := make([]string, 0, len(tip.Tags))
		for _, tag := range tip.Tags {
			tags = append(tags, toned(tag.Value, tag.Tone))
		}
		lines = append(lines, strings.Join(tags, "  "))
	}
	var stats []string
	if tip.Stats.HP != "" {
		stats = append(stats, "HP "+tip.Stats.HP)
	}
	if tip.Stats.ArmorClass != "" {
		stats = append(stats, "AC "+tip.Stats.ArmorClass)
	}
	if tip.Stats.Movement != "" {
		stats = append(stats, "Speed "+tip.Stats.Movement)
	}
	if tip.Stats.Ruler != "" {
		stats = append(stats, "Ruler "+tip.Stats.Ruler)
	}
	if len(stats) > 0 {
		lines = append(lines, strings.Join(stats, " | "))
	}
	if tip.Stats.Personality != "" {
		lines = append(lines, styleSubtitle.Render(tip.Stats.Personality))
	}
	if tip.Description != "" {
		lines = append(lines, tip.Description)
	}
	fmt.Fprintln(w, styleCard.Render(strings.Join(lines, "\n")))
}

func Search(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, styleMuted.Render("No results."))
		return
	}
	for _, result := range results {
		fmt.Fprintf(w, "%s %s %s\n", badge(result.Label, result.Color), styleTitle.Render(result.Name), styleMuted.Render(result.Path))
		if result.Description != "" {
			fmt.Fprintln(w, "  "+result.Description)
		}
	}
}

func Campaigns(w io.Writer, campaigns []store.Campaign) {
	if len(campaigns) == 0 {
		fmt.Fprintln(w, styleMuted.Render("No campaigns ingested."))
		return
	}
	for _, campaign := range campaigns {
		fmt.Fprintf(w, "%s %s\n", styleTitle.Render(campaign.Name), styleMuted.Render("("+campaign.ID+")"))
		for _, arc := range campaign.Arcs {
			fmt.Fprintf(w, "  %d. %s\n", arc.Order, arc.Title)
		}
	}
}

func Dashboard(w io.Writer, dash dashboard.Dashboard) {
	fmt.Fprintln(w, styleTitle.Render(dash.Campaign.Name))
	if dash.Campaign.Description != "" {
		fmt.Fprintln(w, styleSubtitle.Render(dash.Campaign.Description))
	}

	c := dash.Counts
	counts := []string{
		fmt.Sprintf("Sessions %d", c.Sessions),
		fmt.Sprintf("Arcs %d", c.Arcs),
		fmt.Sprintf("Quests %d", c.Quests),
		fmt.Sprintf("NPCs %d", c.NPCs),
		fmt.Sprintf("Locations %d", c.Locations),
		fmt.Sprintf("Encounters %d", c.Encounters),
	}
	fmt.Fprintln(w, styleCard.Render(strings.Join(counts, "  ")))

	if dash.Current.Arc != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleHeading.Render("Current arc: "+dash.Current.Arc.Title))
		if latest := dash.Current.LatestSession; latest != nil {
			fmt.Fprintf(w, "  Latest session: %s\n", latest.Name)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styleHeading.Render("Active threads"))
	if len(dash.Threads) == 0 {
		fmt.Fprintln(w, styleMuted.Render("  No open quests."))
	}
	for _, thread := range dash.Threads {
		line := "  " + thread.Name + " " + styleMuted.Render(thread.Meta.QuestType)
		if thread.Meta.Priority != "" {
			line += " " + priorityStyle(thread.Meta.Priority).Render(thread.Meta.Priority)
		}
		fmt.Fprintln(w, line)
	}

	if len(dash.ActiveParty) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleHeading.Render("Party"))
		for _, member := range dash.ActiveParty {
			line := "  " + member.Name
			if member.HeroSubtitle != "" {
				line += " " + styleMuted.Render(member.HeroSubtitle)
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(dash.OtherArcs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleHeading.Render("Earlier arcs"))
		for _, arc := range dash.OtherArcs {
			fmt.Fprintf(w, "  %s %s\n", arc.Title, styleMuted.Render(fmt.Sprintf("(%d sessions)", len(arc.Sessions))))
		}
	}
}

func priorityStyle(priority string) lipgloss.Style {
	switch strings.ToLower(priority) {
	case "critical", "high":
		return styleError
	case "medium":
		return styleWarning
	default:
		return styleMuted
	}
}
