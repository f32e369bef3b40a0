package dataset

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Mistral instruction-format delimiters. These are a compatibility contract
// with the fine-tuning consumer and must be rendered bit-exact: opening tag,
// instruction, closing tag, one space, response, end tag.
const (
	InstructionOpen  = "<s>[INST]"
	InstructionClose = "[/INST]"
	EndOfSample      = "</s>"
)

// Sample is the final prompt/response unit stored in dataset partitions.
// Immutable once built.
type Sample struct {
	Text string `json:"text"`
}

// Render wraps an instruction/response pair in the Mistral prompt template.
func Render(instruction, response string) string {
	return InstructionOpen + " " + instruction + " " + InstructionClose + " " + response + EndOfSample
}

// marshalIndent serializes a response payload as indented JSON without HTML
// escaping, so angle brackets inside content survive verbatim.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
