package extract

import (
	"fmt"
	"strings"
)

// extractionPromptTemplate instructs the model to return schema-shaped
// JSON only. Category values mirror the domain category constants.
const extractionPromptTemplate = `You are a recipe extraction system. Extract the recipe from the page text below.

Respond with ONLY a JSON object, no markdown, no commentary, matching exactly this schema:
{
  "title": "recipe name",
  "category": "breakfast|lunch|dinner|dessert|snack|drink|other",
  "ingredients": [{"item": "ingredient name", "quantity": "amount with unit"}],
  "instructions": ["step 1", "step 2"],
  "notes": "any tips or notes, empty string if none",
  "prepTime": "preparation time or empty string",
  "cookTime": "cooking time or empty string",
  "servings": "number of servings or empty string"
}

Rules:
- instructions must be ordered cooking steps, one step per array element
- do not invent ingredients or steps that are not in the text
- if a field is unknown use an empty string

Page text:
%s`

// repairPromptTemplate asks for a syntactic fix of invalid output without
// changing its content.
const repairPromptTemplate = `The following was supposed to be a valid JSON object but is not parseable. Return the SAME content as syntactically valid JSON. Respond with ONLY the corrected JSON object, no markdown, no commentary.

Invalid output:
%s`

func buildExtractionPrompt(cleanedText string) string {
	return fmt.Sprintf(extractionPromptTemplate, cleanedText)
}

func buildRepairPrompt(invalidOutput string) string {
	return fmt.Sprintf(repairPromptTemplate, strings.TrimSpace(invalidOutput))
}

// imageSelectionPromptTemplate instructs the vision model to pick exactly
// one URL or the literal "none".
const imageSelectionPromptTemplate = `You are selecting the best representative photo of a finished dish for a recipe. Below is a numbered list of candidate image URLs from the recipe page.

Return EXACTLY ONE of the URLs verbatim - the one most likely to show the finished dish. If none of them shows a finished dish, return the single word: none

Candidates:
%s`

func buildImagePrompt(urls []string) string {
	var sb strings.Builder
	for i, u := range urls {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, u)
	}
	return fmt.Sprintf(imageSelectionPromptTemplate, sb.String())
}
