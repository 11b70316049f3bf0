package tools

import (
	"context"
	"strconv"
	"strings"
	"testing"
)

func TestRegisterBuiltinTools(t *testing.T) {
	r := NewRegistry()
	if err := RegisterBuiltinTools(r); err != nil {
		t.Fatalf("RegisterBuiltinTools: %v", err)
	}

	want := []string{
		"get_weather",
		"calculate_math",
		"generate_random_number",
		"search_knowledge_base",
		"current_time",
	}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Registering twice must fail on the first duplicate
	if err := RegisterBuiltinTools(r); err == nil {
		t.Error("second RegisterBuiltinTools should fail")
	}
}

func TestWeatherTool(t *testing.T) {
	tool := &WeatherTool{}
	ctx := context.Background()

	result, err := tool.Execute(ctx, map[string]interface{}{"location": "Tokyo, Japan"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	text := result.(string)
	if !strings.Contains(text, "partly cloudy") || !strings.Contains(text, "25°C") {
		t.Errorf("unexpected weather: %q", text)
	}

	// Fahrenheit conversion
	result, err = tool.Execute(ctx, map[string]interface{}{
		"location": "san francisco",
		"unit":     "fahrenheit",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if text := result.(string); !strings.Contains(text, "71.6°F") {
		t.Errorf("fahrenheit conversion wrong: %q", text)
	}

	// Unknown city is a polite answer, not an error
	result, err = tool.Execute(ctx, map[string]interface{}{"location": "Atlantis"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if text := result.(string); !strings.Contains(text, "don't have weather data") {
		t.Errorf("unknown city: %q", text)
	}

	if _, err := tool.Execute(ctx, map[string]interface{}{"location": 42}); err == nil {
		t.Error("non-string location should fail")
	}
}

func TestCalculatorTool(t *testing.T) {
	tool := &CalculatorTool{}
	ctx := context.Background()

	result, err := tool.Execute(ctx, map[string]interface{}{"expression": "sqrt(144) + 5 * 3"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if text := result.(string); !strings.Contains(text, "is 27") {
		t.Errorf("result = %q", text)
	}

	if _, err := tool.Execute(ctx, map[string]interface{}{"expression": "1 / 0"}); err == nil {
		t.Error("division by zero should surface as an error")
	}
}

func TestRandomNumberTool(t *testing.T) {
	tool := &RandomNumberTool{}
	ctx := context.Background()

	// Swapped bounds are tolerated
	result, err := tool.Execute(ctx, map[string]interface{}{
		"min_value": float64(10),
		"max_value": float64(5),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	text := result.(string)
	if !strings.HasPrefix(text, "Random number between 5 and 10: ") {
		t.Fatalf("result = %q", text)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(text, "Random number between 5 and 10: "))
	if err != nil || n < 5 || n > 10 {
		t.Errorf("value out of range: %q", text)
	}
}

func TestKnowledgeSearchTool(t *testing.T) {
	tool := &KnowledgeSearchTool{}
	ctx := context.Background()

	result, err := tool.Execute(ctx, map[string]interface{}{
		"query":    "python",
		"category": "programming",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if text := result.(string); !strings.Contains(text, "Python is a high-level") {
		t.Errorf("result = %q", text)
	}

	// Unknown category falls back to general
	result, err = tool.Execute(ctx, map[string]interface{}{
		"query":    "coffee",
		"category": "cooking",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if text := result.(string); !strings.Contains(text, "general") {
		t.Errorf("fallback result = %q", text)
	}

	result, err = tool.Execute(ctx, map[string]interface{}{"query": "zzz"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if text := result.(string); !strings.Contains(text, "No results found") {
		t.Errorf("no-match result = %q", text)
	}
}

func TestCurrentTimeTool(t *testing.T) {
	tool := &CurrentTimeTool{}
	ctx := context.Background()

	result, err := tool.Execute(ctx, map[string]interface{}{"format": "date"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	text := result.(string)
	if len(text) != len("2006-01-02") {
		t.Errorf("date format result = %q", text)
	}

	result, err = tool.Execute(ctx, map[string]interface{}{"format": "unix"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := result.(int64); !ok {
		t.Errorf("unix format should return int64, got %T", result)
	}
}
