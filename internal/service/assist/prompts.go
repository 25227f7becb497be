package assist

import (
	"fmt"
	"strings"

	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
)

// Operation names, used as log/metric labels and in CollaboratorError
const (
	OpGenerateReadme   = "generate_readme"
	OpAnalyzeProject   = "analyze_project"
	OpAnalyzeEcosystem = "analyze_ecosystem"
	opAssistPrefix     = "assist:"
)

const pairProgrammerInstruction = "You are an expert AI pair programmer."

const noNotes = "None."

func readmePrompt(projectName, description string) hubSvc.PromptContext {
	var b strings.Builder
	b.WriteString("Generate a professional README.md file for a project with the following details:\n")
	fmt.Fprintf(&b, "Project Name: %s\n", projectName)
	fmt.Fprintf(&b, "Description: %s\n\n", description)
	b.WriteString("The README should be well-structured with sections like:\n")
	b.WriteString("- A project title (using the project name)\n")
	b.WriteString("- A short description (using the provided description)\n")
	b.WriteString("- A \"Features\" section with a few bullet points based on the description.\n")
	b.WriteString("- A \"Getting Started\" section with placeholder installation instructions.\n")
	b.WriteString("- A \"Usage\" section with a placeholder example.\n")
	b.WriteString("- A \"License\" section (e.g., mentioning MIT License).\n\n")
	b.WriteString("Output only the raw Markdown content. Do not include any explanatory text before or after the Markdown content.")

	return hubSvc.PromptContext{Operation: OpGenerateReadme, Prompt: b.String()}
}

// assistancePrompt builds the code-assistance prompt for a mode.
// userPrompt is only used in chat mode.
func assistancePrompt(code, userPrompt string, mode models.AssistanceMode) hubSvc.PromptContext {
	codeBlock := "\n\n```\n" + code + "\n```"

	var prompt string
	switch mode {
	case models.ModeExplain:
		prompt = "Explain the following code snippet. Describe its purpose, how it works, and any potential improvements." + codeBlock
	case models.ModeRefactor:
		prompt = "Refactor the following code. Improve its readability, performance, and maintainability without changing its functionality. " +
			"Provide the refactored code inside a single markdown code block." + codeBlock
	case models.ModeTest:
		prompt = "Generate unit tests for the following code. Use a popular testing framework relevant to the code's language. " +
			"Provide the test code inside a single markdown code block." + codeBlock
	case models.ModeDebug:
		prompt = "Analyze the following code for bugs or potential issues. Describe any problems you find and suggest fixes." + codeBlock
	case models.ModeChat:
		prompt = "The user is working on the following code snippet and has a question.\n\n" + codeBlock +
			"\n\nUser question: \"" + userPrompt + "\"\n\nYour answer:"
	}

	return hubSvc.PromptContext{
		Operation:         opAssistPrefix + string(mode),
		SystemInstruction: pairProgrammerInstruction,
		Prompt:            prompt,
	}
}

func projectAnalysisPrompt(files []models.FileSummary) hubSvc.PromptContext {
	lines := make([]string, len(files))
	for i, f := range files {
		lines[i] = fmt.Sprintf("- %s (%s, %s)", f.Name, f.Kind, f.Size)
	}

	var b strings.Builder
	b.WriteString("As an expert project analyst, examine the following list of files from a project directory.\n\n")
	b.WriteString("File List:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nBased on this file list, provide a concise analysis in the following structure:\n\n")
	b.WriteString("**Identified Project Type:**\n(e.g., React Web Application, Python API, Document Archive, etc.)\n\n")
	b.WriteString("**Key Summary:**\n(A 2-3 sentence summary of the project's likely purpose.)\n\n")
	b.WriteString("**File Distribution:**\n(A brief overview of the file types and their roles.)\n\n")
	b.WriteString("**Suggestions & Next Steps:**\n(Provide 2-3 actionable suggestions, like \"Consider adding a README.md,\" " +
		"\"A .gitignore file would be beneficial,\" or \"Unit tests for the application logic could be created.\")\n\n")
	b.WriteString("Keep the analysis clear, professional, and directly to the point.")

	return hubSvc.PromptContext{Operation: OpAnalyzeProject, Prompt: b.String()}
}

func ecosystemPrompt(listing, notes string) hubSvc.PromptContext {
	if strings.TrimSpace(notes) == "" {
		notes = noNotes
	}

	var b strings.Builder
	b.WriteString("You are a senior engineer specialised in distributed ecosystems, modular applications and knowledge bases. ")
	b.WriteString("Act as a full-context analyser of a system made of local drives with directory indexes, ")
	b.WriteString("cloud storage services, applications and integrable external tools.\n\n")
	b.WriteString("Produce:\n")
	b.WriteString("- An executive summary\n")
	b.WriteString("- Comparison tables: duplicates, versions, heavy files, repeated sources\n")
	b.WriteString("- A semantic classification: masters, historical, redundant; projects and apps by purpose\n")
	b.WriteString("- Strategic recommendations: consolidation, integrations, automations\n")
	b.WriteString("- A modular map of the connections between units, apps and external sources\n")
	b.WriteString("- Forward-looking ideas: knowledge graphs, dashboards, semantic queries\n")
	b.WriteString("- Under-used resources worth activating\n\n")
	b.WriteString("Be exhaustive but hierarchical and clear. Never propose destructive actions: analysis and proposals only.\n\n")
	b.WriteString("**Input Data:**\n```\n" + listing + "\n```\n\n")
	b.WriteString("**Additional Notes:**\n```\n" + notes + "\n```")

	return hubSvc.PromptContext{Operation: OpAnalyzeEcosystem, Prompt: b.String()}
}
