package openai

import (
	"fmt"
	"time"
)

// analysisResponseSchema is the strict schema every analyzer response must
// satisfy. additionalProperties is forbidden so extra fields are rejected
// instead of silently dropped on the floor.
const analysisResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "phrases": {
      "type": "array",
      "items": {"type": "string"}
    },
    "keypoints": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["phrases", "keypoints"],
  "additionalProperties": false
}`

const analyzerPromptTemplate = `You are an AI assistant that analyzes uploaded text, files or transcription.
Extract all data and details suitable for embedding creation and integration
into vector database as a knowledge base. The knowledge base should be
searchable and retrievable by the user.

Output ONLY valid JSON which complies with the schema given below. Do not include
any preamble, explanation, greeting, or acknowledgment. Start your response
directly with the opening brace { and end with the closing brace }. Your output
must exactly follow this schema:

%s

Rules:
- Phrases should contain frequently asked questions regarding this chunk of information.
- Keypoints should contain extracted, factual data from the text. Numbers, dates, names, laws, paragraphs, etc.
- Respond in the analyzed text's original language.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Current date and time: %s`

// buildAnalyzerPrompt creates the analyzer system prompt with the schema and
// the current timestamp embedded.
func buildAnalyzerPrompt(now time.Time) string {
	return fmt.Sprintf(analyzerPromptTemplate,
		analysisResponseSchema,
		now.Format("2006-01-02 15:04:05"))
}

// extractionPrompt instructs the model to turn a binary document into plain
// text suitable for chunking and analysis.
const extractionPrompt = `You are an AI assistant that extracts text from uploaded files.
Extract all data and details suitable for embedding creation.
Do not use markdown, just plain text.
If suitable add a quick summary at the end.`
