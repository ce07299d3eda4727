package assistant

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"chatbots/internal/transcript"
)

const DefaultLanguage = "python"

// MinSummaryInput is the shortest text worth summarizing. Callers check it before
// calling Summarize.
const MinSummaryInput = 50

const summarizeSystemPrompt = `You are an expert at summarizing information clearly and concisely.
Provide a well-structured summary of the text that:

1. Includes the main points and key information
2. Omits unnecessary details
3. Is organized with headings and bullet points where appropriate
4. Is significantly shorter than the original text

Your summary should be accurate and comprehensive despite its brevity.`

func codeSystemPrompt(language string) string {
	return fmt.Sprintf(`You are an expert %[1]s developer.
Your task is to generate clean, efficient, well-documented %[1]s code
based on the user's requirements. Include:

1. Appropriate imports and dependencies
2. Clear comments explaining logic
3. Error handling where appropriate
4. Examples of usage where helpful

Format your response using Markdown code blocks with the appropriate language tag.`, language)
}

// CodeResult is a code generation response. CodePath is empty when the response
// had no fenced code block.
type CodeResult struct {
	Result
	Language string
	CodePath string
}

// CodeGeneration asks for an implementation in language (python when empty) and
// saves the first fenced code block of the answer as generated_code_<stamp>.<ext>
// in the output directory.
func (s *Suite) CodeGeneration(ctx context.Context, prompt, language string) (CodeResult, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}
	res, err := s.Send(ctx, prompt, SendOptions{SystemPrompt: codeSystemPrompt(language)})
	if err != nil {
		return CodeResult{}, err
	}
	out := CodeResult{Result: res, Language: language}
	code, ok := transcript.FirstCodeBlock(res.Content)
	if !ok {
		return out, nil
	}
	name := "generated_code_" + s.now().Format(transcript.FileStamp) + "." + transcript.Extension(language)
	path := filepath.Join(s.outputDir, name)
	if err := writeCode(path, code); err != nil {
		log.Printf("could not save generated code: %v", err)
		out.Warnings = append(out.Warnings, fmt.Errorf("%w: generated code: %w", ErrPersistence, err))
		return out, nil
	}
	out.CodePath = path
	return out, nil
}

func writeCode(path, code string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure dir: %w", err)
		}
	}
	return os.WriteFile(path, []byte(code), 0o644)
}

// Summarize asks for a structured summary of text.
func (s *Suite) Summarize(ctx context.Context, text string) (Result, error) {
	prompt := "Please summarize the following text:\n\n" + text
	return s.Send(ctx, prompt, SendOptions{SystemPrompt: summarizeSystemPrompt})
}
