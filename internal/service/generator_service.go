package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
)

const generatorSystemPrompt = `You are a helpful assistant that breaks down projects, tasks, or bulk text into structured todo items.

Your task:
- Parse the user's input (could be a project description, a list of tasks, or scattered thoughts)
- Break it down into clear, actionable todo items
- Each todo should have a concise title (max 100 chars)
- Add helpful descriptions when needed to clarify the task
- Suggest a category name if the input seems to be a project
- Suggest a category color (hex format) that fits the project theme
- Only suggest due dates if they're explicitly mentioned or critical

Return a JSON object with this structure:
{
  "categoryName": "Optional category name if this is a project",
  "categoryColor": "Optional hex color like #FF6B6B",
  "todos": [
    {
      "title": "Clear, actionable task title",
      "description": "Optional clarifying details",
      "dueDate": "Optional ISO date string like 2024-01-15",
      "priority": "low|medium|high (optional)"
    }
  ]
}

Guidelines:
- Break large tasks into smaller, actionable steps
- Use clear, action-oriented language (start with verbs like "Create", "Review", "Setup")
- Keep titles concise but descriptive
- Only add descriptions if they add value
- If input is just one task, return one todo
- If it's a project, suggest a category name
- Default priority is medium if not specified`

// GeneratedTodo is one item proposed by the model.
type GeneratedTodo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// GeneratedPlan is the full structured answer: an optional category
// suggestion plus the todo list.
type GeneratedPlan struct {
	CategoryName  string          `json:"categoryName,omitempty"`
	CategoryColor string          `json:"categoryColor,omitempty"`
	Todos         []GeneratedTodo `json:"todos"`
}

// chatClient is the slice of the OpenAI client the generator uses.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GeneratorService turns free text into a validated todo plan through the
// language-model API. The model's output is untrusted: it is parsed and
// checked field by field, never executed or stored blindly.
type GeneratorService struct {
	client chatClient
}

// NewGeneratorService builds the service. An empty API key leaves the client
// nil and Generate reports unconfigured.
func NewGeneratorService(apiKey string) *GeneratorService {
	if apiKey == "" {
		return &GeneratorService{}
	}
	return &GeneratorService{client: openai.NewClient(apiKey)}
}

// Generate asks the model to break input into todos and validates the reply.
func (s *GeneratorService) Generate(ctx context.Context, input string) (*GeneratedPlan, error) {
	if s.client == nil {
		return nil, apperr.New(apperr.Invalid, "OpenAI API key not configured")
	}
	if input == "" {
		return nil, apperr.New(apperr.Invalid, "Input text is required")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: generatorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to generate todos", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, apperr.New(apperr.Internal, "No response from AI")
	}

	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &plan); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Invalid AI response format", err)
	}
	if err := validatePlan(&plan); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Invalid AI response format", err)
	}
	return &plan, nil
}

// validatePlan enforces the schema on the model's untrusted output.
func validatePlan(plan *GeneratedPlan) error {
	if len(plan.Todos) == 0 {
		return fmt.Errorf("no todos in response")
	}
	if plan.CategoryColor != "" && !hexColorPattern.MatchString(plan.CategoryColor) {
		// A bad color suggestion is dropped, not fatal.
		plan.CategoryColor = ""
	}
	for i, todo := range plan.Todos {
		if todo.Title == "" {
			return fmt.Errorf("todo %d: missing title", i)
		}
		if len(todo.Title) > 100 {
			plan.Todos[i].Title = todo.Title[:100]
		}
		switch todo.Priority {
		case "", "low", "medium", "high":
		default:
			return fmt.Errorf("todo %d: invalid priority %q", i, todo.Priority)
		}
		if todo.DueDate != "" {
			if _, err := time.Parse("2006-01-02", todo.DueDate); err != nil {
				if _, err := time.Parse(time.RFC3339, todo.DueDate); err != nil {
					return fmt.Errorf("todo %d: invalid due date %q", i, todo.DueDate)
				}
			}
		}
	}
	return nil
}
