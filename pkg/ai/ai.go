package ai

import (
	"context"
	"encoding/json"
	"strings"
)

// Completer is the narrow view of the completion service: one prompt in,
// generated text out. Network, quota and timeout failures surface as errors.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// YesNoJudge answers constrained yes/no questions. Callers decide the
// fail-open/fail-closed default when the judge errors.
type YesNoJudge interface {
	JudgeYesNo(ctx context.Context, prompt string) (bool, error)
}

// Judge adapts any Completer into a YesNoJudge by interpreting a
// constrained yes|no response.
type Judge struct {
	Completer
}

func (j Judge) JudgeYesNo(ctx context.Context, prompt string) (bool, error) {
	raw, err := j.Complete(ctx, prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}

// StripCodeFence removes surrounding markdown code-fence markers that some
// models insist on wrapping around structured output.
func StripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// DecodeFencedJSON unmarshals a JSON payload that may be wrapped in
// code-fence markers.
func DecodeFencedJSON(raw string, dst any) error {
	return json.Unmarshal([]byte(StripCodeFence(raw)), dst)
}

// RenderPrompt fills {placeholder} slots in a prompt template.
func RenderPrompt(tpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}
