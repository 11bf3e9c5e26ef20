package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const MAX_EXTRACT_TAGS = 8

const EXTRACT_METADATA_PROMPT = `
Analyze the following Hybris/SAP Commerce code snippet or text.

1. Provide a short, descriptive Title (5-10 words).
2. Generate a list of relevant Tags as plain keywords (NO # symbols):
   - Include item type names (e.g., Product, Order, Customer)
   - Include attribute/column names mentioned
   - Include query type (flexsearch, groovy, impex, beanshell, etc.)
   - Include domain concepts (price, stock, checkout, etc.)
   - Maximum 8 tags, most specific and relevant
3. Provide a brief Summary (1-2 sentences) of what it does.

Input Text:
{text}

Output JSON format (return ONLY valid JSON, no markdown):
{
    "title": "...",
    "tags": ["tag1", "tag2", "tag3"],
    "summary": "..."
}
`

const CLEAN_CONTENT_PROMPT = `
You are a Knowledge Base Cleaner. Your task is to extract the PURE KNOWLEDGE from a chat response.

Input Text:
{text}

Instructions:
1. REMOVE conversational filler (e.g., "Here is the code", "Sure", "You can use this", "Hope this helps").
2. REMOVE "Copy" button artifacts.
3. IF CODE EXISTS: Return ONLY the code block(s). Preserve comments inside the code.
4. IF NO CODE: Return the factual information as a professional, neutral statement.
5. REMOVE any "General Knowledge" warnings.
6. Do NOT markdown-fence the output unless necessary for structure within the content. Return the raw content that belongs in the file.

Output:
`

type ExtractResult struct {
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

// MetadataExtractor derives title/tags/summary from raw content and cleans
// conversational answers into storable knowledge. Both operations ride on the
// completion service.
type MetadataExtractor struct {
	completer Completer
}

func NewMetadataExtractor(completer Completer) *MetadataExtractor {
	return &MetadataExtractor{completer: completer}
}

func (e *MetadataExtractor) ExtractMetadata(ctx context.Context, text string) (ExtractResult, error) {
	raw, err := e.completer.Complete(ctx, RenderPrompt(EXTRACT_METADATA_PROMPT, map[string]string{"text": text}))
	if err != nil {
		return ExtractResult{}, fmt.Errorf("MetadataExtractor.ExtractMetadata: %w", err)
	}

	var result ExtractResult
	if err = DecodeFencedJSON(raw, &result); err != nil {
		return ExtractResult{}, fmt.Errorf("MetadataExtractor.ExtractMetadata.Decode: %w", err)
	}

	result.Tags = lo.Map(result.Tags, func(tag string, _ int) string {
		return strings.TrimSpace(strings.TrimPrefix(tag, "#"))
	})
	result.Tags = lo.Filter(result.Tags, func(tag string, _ int) bool {
		return tag != ""
	})
	if len(result.Tags) > MAX_EXTRACT_TAGS {
		result.Tags = result.Tags[:MAX_EXTRACT_TAGS]
	}

	return result, nil
}

// CleanForStorage drops conversational filler, keeping code verbatim. On
// failure the original text is returned so a flaky model never loses content.
func (e *MetadataExtractor) CleanForStorage(ctx context.Context, text string) (string, error) {
	raw, err := e.completer.Complete(ctx, RenderPrompt(CLEAN_CONTENT_PROMPT, map[string]string{"text": text}))
	if err != nil {
		return text, fmt.Errorf("MetadataExtractor.CleanForStorage: %w", err)
	}
	return strings.TrimSpace(raw), nil
}
