package models

// Static course catalog. Lessons, quizzes and required scores are
// reference data; nothing in this service mutates them.

var AICodingCourse = Course{
	ID:    "ai-coding-course",
	Title: "AI Coding Course",
	Price: 99000,
	Lessons: []Lesson{
		{ID: 1, Title: "Getting Started with AI Coding", Duration: "12:40"},
		{
			ID: 2, Title: "Prompting Fundamentals", Duration: "18:05",
			Quiz: &Quiz{
				RequiredScore:    70,
				TimeLimitMinutes: 5,
				Questions: []Question{
					{
						ID: 1, Kind: QuestionMultiple,
						Question: "Which part of a prompt most directly controls the output format?",
						Options:  []string{"The greeting", "The explicit format instruction", "The model name", "The temperature"},
						Correct:  1,
					},
					{
						ID: 2, Kind: QuestionTrueFalse,
						Question: "Shorter prompts always produce better code.",
						Correct:  AnswerFalse,
					},
					{
						ID: 3, Kind: QuestionMultiple,
						Question: "What should you do first when generated code fails to compile?",
						Options:  []string{"Regenerate blindly", "Read the error and feed it back", "Switch languages", "Delete the project"},
						Correct:  1,
					},
				},
			},
		},
		{ID: 3, Title: "Building a Small Web App", Duration: "24:30"},
		{
			ID: 4, Title: "Debugging with AI", Duration: "16:12",
			Quiz: &Quiz{
				RequiredScore: 70,
				Questions: []Question{
					{
						ID: 1, Kind: QuestionTrueFalse,
						Question: "Pasting a stack trace into the prompt gives the model useful context.",
						Correct:  AnswerTrue,
					},
					{
						ID: 2, Kind: QuestionMultiple,
						Question: "Which habit catches AI-introduced bugs earliest?",
						Options:  []string{"Running tests after each change", "Reviewing once a week", "Trusting the output", "Disabling the linter"},
						Correct:  0,
					},
				},
			},
		},
	},
}

var ChatGPTAgentCourse = Course{
	ID:    "chatgpt-agent-beginner",
	Title: "ChatGPT Agent Beginner",
	Price: 149000,
	Lessons: []Lesson{
		{ID: 1, Title: "What Is an Agent?", Duration: "10:22"},
		{ID: 2, Title: "Setting Up Your First Agent", Duration: "21:47"},
		{
			ID: 3, Title: "Tools and Actions", Duration: "19:33",
			Quiz: &Quiz{
				RequiredScore:    70,
				TimeLimitMinutes: 3,
				Questions: []Question{
					{
						ID: 1, Kind: QuestionMultiple,
						Question: "What does an agent use a tool for?",
						Options:  []string{"Styling replies", "Acting outside the conversation", "Saving tokens", "Faster typing"},
						Correct:  1,
					},
					{
						ID: 2, Kind: QuestionTrueFalse,
						Question: "An agent can call more than one tool in a single task.",
						Correct:  AnswerTrue,
					},
				},
			},
		},
		{ID: 4, Title: "Shipping an Agent Workflow", Duration: "25:01"},
	},
}

var AllCourses = []*Course{&AICodingCourse, &ChatGPTAgentCourse}

// CourseByID looks a course up in the catalog, or returns nil.
func CourseByID(id string) *Course {
	for _, c := range AllCourses {
		if c.ID == id {
			return c
		}
	}
	return nil
}
