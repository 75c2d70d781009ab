package ai

import "fmt"

// BuildValidationPrompt formats the highlighter agent's input: the source
// record followed by the nurse-confirmed summary. The labels are part of the
// fine-tuned model's expected format and must not be localized.
func BuildValidationPrompt(original, summary string) string {
	return fmt.Sprintf("#申請會診單：\n%s\n\n#護理師確認結果：\n%s", original, ExtractAnswer(summary))
}
