package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/querygen/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "keywords": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "keyword": {
            "type": "string",
            "pattern": "^[a-z0-9.+#]+( [a-z0-9.+#]+)*$"
          },
          "category": {
            "type": "string"
          },
          "weight": {
            "type": "number",
            "minimum": 1,
            "maximum": 10
          }
        },
        "required": ["keyword", "category", "weight"],
        "additionalProperties": false
      }
    }
  },
  "required": ["keywords"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Extract the keywords a technical recruiter would search on from the given job description and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Keyword terms must be lowercase, 1-3 words each. Keep technology punctuation ("node.js", "c#", "c++").
- Category must match exactly one of the listed values: %s.
- Weight is a number from 1 (peripheral) to 10 (central). Rate based on how essential the keyword is to the position.
- Job titles are "role". Technologies, tools, languages, and methods are "skill". Degrees, certifications, and experience requirements are "qualification".
- Include only keywords that are explicitly mentioned or clearly implied by the text. Do not hallucinate.
- Return at most %d keywords, most important first.
- If no keywords can be identified, return "keywords": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "We are hiring a Senior Software Engineer with deep React and Node.js experience. A BS in Computer Science is required."
Output:
{
  "keywords": [
    {"keyword":"software engineer","category":"role","weight":9},
    {"keyword":"react","category":"skill","weight":8},
    {"keyword":"node.js","category":"skill","weight":8},
    {"keyword":"computer science","category":"qualification","weight":6}
  ]
}

Example (informal posting):
Input: "looking for a devops person, must know kubernetes + terraform, aws cert a plus"
Output:
{
  "keywords": [
    {"keyword":"devops","category":"role","weight":9},
    {"keyword":"kubernetes","category":"skill","weight":8},
    {"keyword":"terraform","category":"skill","weight":8},
    {"keyword":"aws certification","category":"qualification","weight":5}
  ]
}`

// buildSystemPrompt creates the system prompt with keyword categories embedded.
func buildSystemPrompt(maxKeywords int) string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		strings.Join(ai.KeywordCategories, ", "),
		maxKeywords)
}
