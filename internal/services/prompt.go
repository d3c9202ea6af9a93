package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildReviewPrompt creates the resume review prompt. The same inputs always
// produce the same prompt.
func (pb *PromptBuilder) BuildReviewPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert resume reviewer.
Compare the following Resume and Job Description, and provide:
1. Relevance Score (0–100) as a single number, on the first line in the form "Relevance Score: <number>".
2. A clear, structured review with these sections:

Experience Alignment:
- Briefly explain how the candidate's work history aligns (or does not) with the job requirements.

Skills Match:
- Compare the listed skills in the resume to the job description requirements.

Education:
- Evaluate if the candidate's education meets the job requirements.

Summary Alignment:
- Check if the resume's professional summary aligns with the job focus.

Nice-to-Have Skills:
- Mention any additional skills or certifications that add value beyond the core requirements.

Missing Skills/Projects/Certifications:
- List any important skills, projects, or certifications from the job description that are missing in the resume.

Areas for Improvement (Not affecting relevance score much):
- Mention small gaps that could be improved.

Verdict:
- Give a final verdict on the candidate's suitability for the job (High / Medium / Low suitability).

Suggestions for Student Improvement:
- Provide actionable suggestions for the candidate to improve their resume or profile for this job.

Overall Brief Summary:
- A 2–3 sentence summary of how well the candidate fits the job.

Format your output with:
- Section headings (no stars, no markdown)
- Bulleted lists for details under each section
- No extra symbols, no markdown formatting
- Keep the output clean, readable, and professional

Resume:
%s

Job Description:
%s
`, resumeText, jobDescription)
}
