package content

import "google.golang.org/genai"

func namedItemSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString},
			"description": {Type: genai.TypeString, Description: description},
		},
		Required: []string{"name", "description"},
	}
}

// countrySchema constrains the model output to entities.CountryFacts.
var countrySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":    {Type: genai.TypeString, Description: "The common name of the country"},
		"capital": {Type: genai.TypeString, Description: "The capital city"},
		"languages": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Main languages spoken",
		},
		"population": {
			Type:        genai.TypeString,
			Description: "Approximate population in a kid-friendly format (e.g., '67 million')",
		},
		"currency": {Type: genai.TypeString, Description: "Currency used"},
		"funFact": {
			Type:        genai.TypeString,
			Description: "A short, surprising, and fun fact about the country suitable for a 5th grader",
		},
		"landmarks": {
			Type:        genai.TypeArray,
			Items:       namedItemSchema("Short description of the landmark"),
			Description: "Two famous landmarks",
		},
		"foods": {
			Type:        genai.TypeArray,
			Items:       namedItemSchema("Short description of the food"),
			Description: "Two traditional foods",
		},
		"emoji": {Type: genai.TypeString, Description: "The country's flag emoji"},
	},
	Required: []string{
		"name", "capital", "languages", "population", "currency",
		"funFact", "landmarks", "foods", "emoji",
	},
}

// quizSchema constrains the model output to a list of entities.QuizQuestion.
var quizSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {Type: genai.TypeString, Description: "The quiz question"},
			"options": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "4 multiple choice options",
			},
			"correctAnswerIndex": {
				Type:        genai.TypeInteger,
				Description: "The index (0-3) of the correct answer",
			},
			"explanation": {
				Type:        genai.TypeString,
				Description: "A brief explanation of why the answer is correct",
			},
		},
		Required: []string{"question", "options", "correctAnswerIndex", "explanation"},
	},
}
