package tools

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// WeatherTool returns mock weather data so the function-calling demo
// works without any external service.
type WeatherTool struct{}

type weatherEntry struct {
	temp      int // celsius
	condition string
}

var weatherData = map[string]weatherEntry{
	"san francisco": {22, "sunny"},
	"new york":      {18, "cloudy"},
	"london":        {15, "rainy"},
	"tokyo":         {25, "partly cloudy"},
	"sydney":        {28, "sunny"},
}

func (w *WeatherTool) Name() string {
	return "get_weather"
}

func (w *WeatherTool) Description() string {
	return "Get the current weather for a location"
}

func (w *WeatherTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"location": map[string]interface{}{
			"type":        "string",
			"description": "The city and state/country, e.g. 'San Francisco, CA'",
		},
		"unit": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"celsius", "fahrenheit"},
			"description": "Temperature unit",
		},
	}
}

func (w *WeatherTool) RequiredParameters() []string {
	return []string{"location"}
}

func (w *WeatherTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	location, ok := args["location"].(string)
	if !ok {
		return nil, fmt.Errorf("location parameter must be a string")
	}

	unit := "celsius"
	if u, ok := args["unit"].(string); ok && u != "" {
		unit = strings.ToLower(u)
	}

	// Look up by city name only, "Tokyo, Japan" -> "tokyo"
	key := strings.ToLower(strings.TrimSpace(strings.Split(location, ",")[0]))
	entry, found := weatherData[key]
	if !found {
		return fmt.Sprintf("Sorry, I don't have weather data for %s.", location), nil
	}

	temp := float64(entry.temp)
	symbol := "°C"
	if unit == "fahrenheit" {
		temp = temp*9/5 + 32
		symbol = "°F"
	}

	return fmt.Sprintf("The weather in %s is %s with a temperature of %s%s.",
		location, entry.condition, formatNumber(temp), symbol), nil
}

// CalculatorTool evaluates arithmetic expressions with the local
// parser, never by executing anything.
type CalculatorTool struct{}

func (c *CalculatorTool) Name() string {
	return "calculate_math"
}

func (c *CalculatorTool) Description() string {
	return "Safely evaluate a mathematical expression"
}

func (c *CalculatorTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"expression": map[string]interface{}{
			"type":        "string",
			"description": "Mathematical expression to evaluate, e.g. '2 + 3 * 4' or 'sqrt(16)'",
		},
	}
}

func (c *CalculatorTool) RequiredParameters() []string {
	return []string{"expression"}
}

func (c *CalculatorTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	expression, ok := args["expression"].(string)
	if !ok {
		return nil, fmt.Errorf("expression parameter must be a string")
	}

	result, err := evalExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("error calculating %s: %v", expression, err)
	}

	return fmt.Sprintf("The result of %s is %s", expression, formatNumber(result)), nil
}

// RandomNumberTool generates a random integer in a range.
type RandomNumberTool struct{}

func (r *RandomNumberTool) Name() string {
	return "generate_random_number"
}

func (r *RandomNumberTool) Description() string {
	return "Generate a random number within a specified range"
}

func (r *RandomNumberTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"min_value": map[string]interface{}{
			"type":        "integer",
			"description": "Minimum value (inclusive)",
		},
		"max_value": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum value (inclusive)",
		},
	}
}

func (r *RandomNumberTool) RequiredParameters() []string {
	return []string{} // No required parameters
}

func (r *RandomNumberTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	minValue, maxValue := 1, 100

	// JSON numbers decode as float64
	if v, ok := args["min_value"].(float64); ok {
		minValue = int(v)
	}
	if v, ok := args["max_value"].(float64); ok {
		maxValue = int(v)
	}
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}

	number := minValue + rand.Intn(maxValue-minValue+1)
	return fmt.Sprintf("Random number between %d and %d: %d", minValue, maxValue, number), nil
}

// KnowledgeSearchTool searches a small built-in knowledge base.
type KnowledgeSearchTool struct{}

var knowledgeBase = map[string]map[string]string{
	"programming": {
		"python":           "Python is a high-level programming language known for its simplicity and readability.",
		"go":               "Go is a statically typed language designed at Google for building simple, reliable software.",
		"javascript":       "JavaScript is a programming language commonly used for web development.",
		"machine learning": "Machine learning is a subset of AI that enables computers to learn without explicit programming.",
	},
	"science": {
		"photosynthesis": "Photosynthesis is the process by which plants convert sunlight into energy.",
		"gravity":        "Gravity is a fundamental force that attracts objects with mass toward each other.",
		"dna":            "DNA is the genetic material that contains instructions for life.",
	},
	"general": {
		"coffee":   "Coffee is a popular caffeinated beverage made from roasted coffee beans.",
		"exercise": "Regular exercise helps maintain physical health and mental well-being.",
		"reading":  "Reading is fundamental for learning and expanding knowledge.",
	},
}

func (k *KnowledgeSearchTool) Name() string {
	return "search_knowledge_base"
}

func (k *KnowledgeSearchTool) Description() string {
	return "Search a knowledge base for information"
}

func (k *KnowledgeSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"type":        "string",
			"description": "Search query",
		},
		"category": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"programming", "science", "general"},
			"description": "Category to search in",
		},
	}
}

func (k *KnowledgeSearchTool) RequiredParameters() []string {
	return []string{"query"}
}

func (k *KnowledgeSearchTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query, ok := args["query"].(string)
	if !ok {
		return nil, fmt.Errorf("query parameter must be a string")
	}

	category := "general"
	if c, ok := args["category"].(string); ok && c != "" {
		category = c
	}
	entries, found := knowledgeBase[category]
	if !found {
		entries = knowledgeBase["general"]
		category = "general"
	}

	queryLower := strings.ToLower(query)
	var matches []string
	for key, value := range entries {
		if strings.Contains(queryLower, key) || strings.Contains(key, queryLower) {
			matches = append(matches, fmt.Sprintf("%s: %s", titleCase(key), value))
		}
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No results found for '%s' in %s category.", query, category), nil
	}
	return fmt.Sprintf("Found %d result(s) in %s:\n%s",
		len(matches), category, strings.Join(matches, "\n")), nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CurrentTimeTool returns the current time
type CurrentTimeTool struct{}

func (c *CurrentTimeTool) Name() string {
	return "current_time"
}

func (c *CurrentTimeTool) Description() string {
	return "Get the current date and time"
}

func (c *CurrentTimeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"format": map[string]interface{}{
			"type":        "string",
			"description": "Time format. Common formats: 'iso' (default), 'human', 'date', 'time', 'unix', or Go format string like '2006-01-02 15:04:05'",
		},
	}
}

func (c *CurrentTimeTool) RequiredParameters() []string {
	return []string{} // No required parameters
}

func (c *CurrentTimeTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	now := time.Now()
	format := time.RFC3339 // default

	if f, exists := args["format"]; exists {
		if formatStr, ok := f.(string); ok {
			// Handle common format names
			switch formatStr {
			case "iso", "":
				format = time.RFC3339
			case "human":
				format = "January 2, 2006 at 3:04 PM MST"
			case "date":
				format = "2006-01-02"
			case "time":
				format = "15:04:05"
			case "unix":
				return now.Unix(), nil
			default:
				// Try to use the format string directly (Go format)
				format = formatStr
			}
		}
	}

	return now.Format(format), nil
}

// RegisterBuiltinTools registers all builtin demo tools to a registry
func RegisterBuiltinTools(registry *Registry) error {
	builtins := []Tool{
		&WeatherTool{},
		&CalculatorTool{},
		&RandomNumberTool{},
		&KnowledgeSearchTool{},
		&CurrentTimeTool{},
	}
	for _, tool := range builtins {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}
	return nil
}
