package summarize

import "fmt"

// Default prompts for research paper summarization, keyed by style.

const laymanPrompt = `You are an expert science communicator. Your task is to create a clear, engaging summary of a research paper that can be easily understood by non-experts.

Please follow these guidelines:
1. Use simple, everyday language and avoid jargon
2. Explain complex concepts in relatable terms
3. Focus on the main findings and their practical implications
4. Keep the summary between 150-300 words
5. Structure it with a clear beginning, middle, and end
6. Make it engaging and accessible to a general audience

The summary should answer:
- What problem does this research address?
- What did the researchers do?
- What did they find?
- Why does this matter to everyday people?`

const technicalPrompt = `You are a research analyst. Create a concise technical summary of this research paper for other researchers in the field.

Please include:
1. The research question or hypothesis
2. Methodology and approach
3. Key findings and results
4. Significance and implications for the field
5. Limitations or future work mentioned

Keep the summary between 200-400 words and maintain technical accuracy while being concise.`

const executivePrompt = `You are preparing an executive summary for decision-makers and stakeholders. Create a brief, impactful summary that focuses on:

1. The business or policy relevance of the research
2. Key findings that could influence decisions
3. Practical applications and opportunities
4. Potential risks or considerations
5. Return on investment or cost-benefit implications

Keep it under 200 words and focus on actionable insights.`

const educationalPrompt = `You are creating educational content for students. Write a summary that:

1. Clearly explains the research context and background
2. Describes the methodology in an educational manner
3. Presents findings with supporting examples
4. Connects the research to broader concepts in the field
5. Includes questions for further exploration

Make it engaging and informative for learning purposes, around 250-350 words.`

// stylePrompts is the fixed prompt table. Duplicate keys are rejected
// by the compiler.
var stylePrompts = map[string]string{
	"layman":      laymanPrompt,
	"technical":   technicalPrompt,
	"executive":   executivePrompt,
	"educational": educationalPrompt,
}

// PromptForStyle returns the prompt for a summary style.
func PromptForStyle(style string) (string, error) {
	p, ok := stylePrompts[style]
	if !ok {
		return "", fmt.Errorf("unknown summary style: %s", style)
	}
	return p, nil
}

// TranslatePrompt builds the prompt for translating a summary.
func TranslatePrompt(language string) string {
	return fmt.Sprintf(`You are a professional translator. Translate the following text into %s. Preserve the meaning, tone and paragraph structure. Output only the translation.`, language)
}
