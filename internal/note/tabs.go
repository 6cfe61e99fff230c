package note

import "strings"

// GroupTabs replaces every maximal run of consecutive tablature lines with a
// single fenced code block. Non-tab lines pass through unchanged.
func GroupTabs(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if !IsTabLine(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		var block []string
		for i < len(lines) && IsTabLine(lines[i]) {
			block = append(block, lines[i])
			i++
		}
		out = append(out, "```\n"+strings.Join(block, "\n")+"\n```")
	}
	return out
}

// RenderContent joins grouped content lines and trims surrounding
// whitespace. Internal blank lines survive.
func RenderContent(lines []string) string {
	return strings.TrimSpace(strings.Join(GroupTabs(lines), "\n"))
}
