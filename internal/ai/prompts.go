package ai

import _ "embed"

var (
	//go:embed prompts/resume_parse.txt
	resumeParseSystem string
	//go:embed prompts/summarize_notes.txt
	summarizeNotesSystem string
	//go:embed prompts/followups.txt
	followupsSystem string
	//go:embed prompts/score_adjust.txt
	scoreAdjustSystem string
)
