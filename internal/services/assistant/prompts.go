// File: internal/services/assistant/prompts.go
package assistant

// documentContextFormat wraps extracted document text before it is
// prepended as system context on a question.
const documentContextFormat = "The following document has been uploaded for reference:\n\n\"\"\"%s\"\"\"\n\n"

// followupPrompt asks the model for suggested next questions after an
// answer; the reply is parsed one question per line.
const followupPrompt = `Based on the previous answer, suggest 3 relevant follow-up questions a user might ask next. Respond with each question on a new line, no numbering or extra text.`

const summarySystemPrompt = `You are an expert at creating comprehensive, dynamic summaries for professional infographic generation. Analyze the document thoroughly and extract ALL key information including: main topic, statistics, data points, processes, methodologies, findings, conclusions, percentages, ratios, measurable outcomes, timelines, benefits, and impacts. Focus on creating a complete picture that captures the essence of the research or document.`

const summaryUserPromptFormat = `Create a comprehensive, dynamic summary of this document for infographic generation. Extract ALL relevant information:

REQUIRED ELEMENTS TO EXTRACT:
1. MAIN TOPIC: The central theme or research focus
2. KEY STATISTICS: All numbers, percentages, ratios, measurements, and data points
3. PROCESSES/METHODOLOGIES: All steps, procedures, techniques, and methods mentioned
4. FINDINGS/CONCLUSIONS: All main results, discoveries, and conclusions
5. TIMELINES/DATES: Any temporal information, milestones, or timeframes
6. BENEFITS/IMPACTS: All advantages, improvements, outcomes, and effects
7. TECHNICAL DETAILS: Any technical specifications, requirements, or parameters
8. COMPARISONS: Any comparative data, benchmarks, or relative measurements

IMPORTANT:
- Extract EVERY number, statistic, and data point you find
- Include ALL processes and methodologies mentioned
- Capture ALL findings and conclusions
- Note any graphs, charts, or visual data mentioned
- Identify the document's theme and color scheme if mentioned
- Be comprehensive - don't miss any important information

Document content:
%s`

const contentSystemPrompt = `You are an expert at creating dynamic, comprehensive infographic content. Analyze the summary thoroughly and extract the MOST IMPORTANT and IMPACTFUL information that would work best in a visual infographic. Focus on the most compelling data points, key processes, and significant findings that tell the complete story.`

const contentUserPromptFormat = `Based on this comprehensive summary, create a COMPLETE infographic that captures the FULL picture of the research:

%s

PROFESSIONAL COMPREHENSIVE INFOGRAPHIC CONTENT REQUIREMENTS:

Generate a COMPLETE overview with EXACT formatting - include ALL significant information:

TITLE: [Compelling main topic - 6-10 words, descriptive and specific to the research]
STAT 1: [Important statistic with exact numbers/percentages]
STAT 2: [Second important statistic with exact numbers/percentages]
STAT 3: [Third important statistic with exact numbers/percentages]
STAT 4: [Fourth important statistic if available]
STAT 5: [Fifth important statistic if available]
PROCESS 1: [Important process/methodology - 4-8 words]
PROCESS 2: [Second important process/methodology - 4-8 words]
PROCESS 3: [Third important process if available - 4-8 words]
FINDING 1: [Important finding/conclusion - 5-8 words]
FINDING 2: [Second important finding/conclusion - 5-8 words]
FINDING 3: [Third important finding if available - 5-8 words]
IMPACT 1: [Important impact/benefit - 5-8 words]
IMPACT 2: [Second important impact/benefit - 5-8 words]
IMPACT 3: [Third important impact if available - 5-8 words]
TIMELINE: [Key timeline information if available - 4-8 words]
COMPARISON: [Key comparison data if available - 4-8 words]

CRITICAL PROFESSIONAL GUIDELINES:
- Extract EVERY significant piece of information from the summary
- Include ALL numbers, percentages, and data points found
- Use EXACT technical terms and measurements from the document
- Include ALL processes, methodologies, and techniques mentioned
- Capture ALL findings, conclusions, and results
- Include ALL impacts, benefits, and outcomes
- Use longer, more descriptive text (4-8 words per element)
- Fill the infographic with comprehensive information
- Don't skip any important data - be thorough
- Create a complete picture that tells the full story
- Include technical details and specifications
- Use specific terminology from the research
- Ensure the infographic provides a complete overview of the document`

// imageStyleRequirements is appended to every image-generation prompt; the
// layout constraints keep the model from clipping text at the frame edges.
const imageStyleRequirements = `Visual Design Requirements:
- Title should be at the VERY TOP, centered, in bold title case, with excellent contrast
- Section headers: large, uppercase, clearly separated
- Use icons next to each bullet point (bar chart, gear, lightbulb, etc.)
- Use pie charts or bar graphs for statistics
- Use arrows and icons in the PROCESS section
- Align content into a 2x3 grid layout if space allows
- Clean, modern academic theme with light neutral background
- Use navy blue, teal, and gray tones for contrast
- Avoid large white gaps: keep layout tight and well-aligned
- Make sure all text is visible and not cut off
- Overall layout should match an academic research infographic or poster
- Output in 1024x1024 square layout
- BACKGROUND THEME COLOR: Suggest a subtle background color based on the overall theme of the document (e.g. green for crops, blue for oceans, beige for industry)
- Add a 1-2 sentence overview at the top or bottom of the image to summarize the entire infographic at a glance

CRITICAL LAYOUT REQUIREMENTS:
- Avoid any content overflow - ensure all text and icons are fully visible
- Leave generous margins (at least 15% on all sides) to prevent clipping
- Use compact text layout to fit all content within safe margins
- Ensure NO text or icons are clipped at the bottom edges
- Use smaller, readable fonts if needed to prevent overflow
- Prioritize content visibility over density - better to have less content than clipped text
- Test layout to ensure all elements fit within the 1024x1024 frame`
