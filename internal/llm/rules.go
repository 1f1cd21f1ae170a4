package llm

import (
	"context"
	"regexp"
	"strings"
)

// topicRule maps a keyword pattern to a canned answer. Rules are tried in
// order and the first match wins.
type topicRule struct {
	name    string
	pattern *regexp.Regexp
	answer  string
}

var topicRules = []topicRule{
	{"greeting", regexp.MustCompile(`\b(hi|hello|hey|greetings)\b`),
		"Hello! I'm your HealthSync assistant. How can I help you today?"},
	{"how_are_you", regexp.MustCompile(`\b(how are you|how're you|how are you doing)\b`),
		"I'm functioning well, thank you for asking! How can I assist with your health today?"},
	{"thanks", regexp.MustCompile(`\b(thanks|thank you|appreciate|grateful)\b`),
		"You're welcome! Is there anything else I can help you with?"},
	{"goodbye", regexp.MustCompile(`\b(bye|goodbye|see you|talk to you later|farewell)\b`),
		"Goodbye! Remember to take care of your health. Feel free to chat anytime you have health questions."},
	{"symptom", regexp.MustCompile(`\b(headache|pain|fever|cough|cold|flu|nausea|vomiting|diarrhea|constipation|rash|itch|sore|fatigue|tired|exhausted|dizzy|dizziness)\b`),
		"I understand you're experiencing some symptoms. It's important to track them regularly. Could you provide more details about what you're experiencing, including when it started and any potential triggers?"},
	{"diet", regexp.MustCompile(`\b(diet|nutrition|food|eat|eating|meal|meals|healthy eating|balanced diet)\b`),
		"A balanced diet is essential for good health. Try to include a variety of fruits, vegetables, whole grains, lean proteins, and healthy fats in your meals. Would you like specific nutrition recommendations?"},
	{"exercise", regexp.MustCompile(`\b(exercise|workout|fitness|training|cardio|strength|yoga|run|running|jog|jogging|walk|walking)\b`),
		"Regular physical activity is important for overall health. Aim for at least 150 minutes of moderate exercise per week."},
	{"sleep", regexp.MustCompile(`\b(sleep|insomnia|rest|nap|drowsy|drowsiness)\b`),
		"Good sleep is crucial for health. Aim for 7-9 hours of quality sleep each night."},
	{"stress", regexp.MustCompile(`\b(stress|anxiety|anxious|worry|worried|tension|pressure|overwhelm|overwhelmed)\b`),
		"Stress management is important for both mental and physical health. Deep breathing, meditation, and physical activity can help reduce stress."},
	{"medication", regexp.MustCompile(`\b(medicine|medication|drug|pill|tablet|capsule|prescription|dose|dosage)\b`),
		"It's important to take medications as prescribed by your healthcare provider. If you have questions about your medications, it's best to consult with your doctor or pharmacist directly."},
	{"doctor", regexp.MustCompile(`\b(doctor|physician|specialist|appointment|clinic|hospital|medical|healthcare provider)\b`),
		"Regular check-ups with healthcare providers are an important part of preventive care. Is there a specific medical concern you'd like to discuss?"},
}

const fallbackAnswer = "I can assist with questions about symptoms, diet, exercise, sleep, and stress management. How can I help you today?"

// RuleBased answers from keyword rules. It never fails and ignores the
// system prompt.
type RuleBased struct{}

func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

func (RuleBased) Name() string {
	return "rules"
}

func (RuleBased) Complete(_ context.Context, _, user string) (string, error) {
	return matchTopic(user).answer, nil
}

// matchTopic returns the first rule matching message, or a general rule.
func matchTopic(message string) topicRule {
	lower := strings.ToLower(message)
	for _, r := range topicRules {
		if r.pattern.MatchString(lower) {
			return r
		}
	}
	return topicRule{name: "general", answer: fallbackAnswer}
}
