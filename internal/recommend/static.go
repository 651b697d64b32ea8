package recommend

import "ailit/internal/scoring"

// Category names fixed by the question catalog.
const (
	CategoryDelegation     = "Delegation"
	CategoryCommunication  = "Communication"
	CategoryDiscernment    = "Discernment"
	CategoryResponsibility = "Responsibility"
)

// StaticRecommendation returns the deterministic fallback recommendation for
// a category at the given score. It is the guaranteed last resort: total,
// dependency-free, and non-empty for every input. Bands follow the maturity
// classifier thresholds so the advice always matches the label shown next to
// it.
func StaticRecommendation(category string, score float64) string {
	level := scoring.Classify(score)
	if texts, ok := staticTable[category]; ok {
		return texts[level.Ord()]
	}
	return genericRecommendation[level.Ord()]
}

// staticTable holds the fixed decision table: 4 categories x 4 bands.
var staticTable = map[string][4]string{
	CategoryDelegation: {
		"Start by identifying 2-3 repetitive tasks you can delegate to AI this week. Practice writing clear, context-rich prompts that include: the problem, desired outcome, constraints, and success criteria. Experiment with approved AI assistants for drafting, research, or analysis tasks.",
		"Level up by creating a delegation playbook for your team. Document which tasks are best suited for AI vs. human expertise. Practice breaking complex projects into discrete, AI-delegable components. Focus on providing rich context and clear success metrics in your prompts.",
		"You're ready to architect AI-human workflows. Design systems where AI handles parallel workstreams while you focus on strategic oversight. Experiment with multi-step AI processes and teach your team to identify high-value delegation opportunities. Consider creating templates for common delegation patterns.",
		"You're operating at an expert level. Share your delegation frameworks with the organization. Mentor others on sophisticated AI delegation strategies. Push boundaries by exploring emerging AI capabilities and creating innovative workflows that weren't previously possible.",
	},
	CategoryCommunication: {
		"Practice the five W's framework when working with AI: Who (audience), What (deliverable), When (timeline), Where (context), Why (purpose). Start documenting your processes in simple, step-by-step language. This clarity will improve both AI interactions and team communication.",
		"Develop your prompt engineering skills by creating reusable templates for common tasks. Practice articulating not just what you want, but why it matters and how it fits into the bigger picture. Build a library of effective prompts and share them with your team.",
		"You excel at clear communication. Now focus on teaching others. Create communication frameworks for your team that work for both AI and human collaboration. Document your process for translating business objectives into actionable, specific requirements.",
		"Your communication skills are exceptional. Lead workshops on effective AI communication. Create organizational standards for prompt engineering and process documentation. Help others develop the clarity that makes AI collaboration successful.",
	},
	CategoryDiscernment: {
		"Build your AI quality checklist: Does the output answer the question? Is it factually accurate? Does it align with your standards? Always verify AI outputs against your domain expertise. Treat AI as a first draft that requires your expert review and refinement.",
		"Develop your critical evaluation skills by actively looking for gaps, biases, and logical flaws in AI outputs. Create rubrics for good vs. great work in your domain. Practice giving specific, actionable feedback to improve AI-generated content. Stay current with industry best practices.",
		"You have strong discernment skills. Use them to coach others on quality evaluation. Create frameworks for assessing AI outputs in your domain. Help your team develop the critical thinking skills needed to separate signal from noise and identify when AI is hallucinating or missing context.",
		"Your discernment is exceptional. Lead the organization in establishing quality standards for AI-assisted work. Create training programs on critical evaluation. Push the boundaries by identifying novel applications where your expert judgment can unlock new AI capabilities.",
	},
	CategoryResponsibility: {
		"Start by reviewing your company's AI usage policies and data protection guidelines. Never share customer data, proprietary code, or confidential information with AI tools. Use only approved platforms. When in doubt, ask your security team. Build the habit of thinking \"Is this safe to share?\" before every AI interaction.",
		"Establish a human-in-the-loop practice for your team. Ensure someone always reviews AI outputs before they go to customers or stakeholders. Create guidelines for your team on responsible AI use. Actively look for potential biases in AI outputs and challenge assumptions.",
		"You're modeling responsible AI use. Create a culture where AI errors are learning opportunities, not failures. Develop team practices that embed your company's values into AI workflows. Share your approach to ethical AI use with other teams. Help others navigate the balance between innovation and responsibility.",
		"You're a leader in responsible AI use. Champion ethical AI practices across the organization. Create frameworks that help others align AI use with company values. Use AI strategically to amplify what makes your organization unique. Set the standard for how AI can enhance, not replace, human judgment.",
	},
}

// genericRecommendation covers category names outside the fixed catalog so
// the fallback can never come back empty.
var genericRecommendation = [4]string{
	"Start small: pick one recurring task this week and try completing it with an approved AI tool. Focus on writing a clear prompt with context, the desired outcome, and success criteria.",
	"Build consistency: turn your successful AI interactions into reusable prompts and simple checklists, and share them with your team.",
	"Extend your practice: design multi-step AI workflows for your area and coach teammates on where AI adds the most value.",
	"Lead the way: share your AI practices across the organization and push into use cases that weren't previously possible.",
}
