package ai

import "strings"

// Only this many context entries make it into the prompt, however many the
// caller hands over.
const maxPromptContexts = 20

// BuildTaskPrompt renders the single-task enrichment prompt. The wording is a
// contract with the model: identical inputs must produce an identical prompt.
func BuildTaskPrompt(task TaskRef, contexts []ContextItem) string {
	var b strings.Builder

	b.WriteString("You are a task assistant. Given the task and recent user context, ")
	b.WriteString("return a JSON object only (no prose) with keys:\n")
	b.WriteString("priority_score (integer 0-10), deadline (YYYY-MM-DD or null), ")
	b.WriteString("improved_description (string), suggested_category (string or null).\n")

	b.WriteString("\nTask:\n")
	b.WriteString("title: ")
	b.WriteString(task.Title)
	b.WriteString("\ndescription: ")
	b.WriteString(task.Description)
	b.WriteString("\n")

	b.WriteString("\nRecent context (most recent first):\n")
	n := len(contexts)
	if n > maxPromptContexts {
		n = maxPromptContexts
	}
	for _, c := range contexts[:n] {
		b.WriteString("- (")
		b.WriteString(c.SourceType)
		b.WriteString(") ")
		b.WriteString(c.Content)
		b.WriteString("\n")
	}

	b.WriteString("\nReturn only JSON. Example:\n")
	b.WriteString(`{"priority_score":8,"deadline":"2025-08-15","improved_description":"...","suggested_category":"Work"}`)
	b.WriteString("\n")

	return b.String()
}
