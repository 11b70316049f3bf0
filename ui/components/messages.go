package components

import (
	"strings"

	"github.com/Rorical/RoriTutor/internal/models"
	"github.com/Rorical/RoriTutor/ui/styles"
)

func RenderMessages(messages []models.Message) string {
	var b strings.Builder

	systemStyle := styles.SystemStyle()
	userStyle := styles.UserStyle()
	assistantStyle := styles.AssistantStyle()
	programStyle := styles.ProgramStyle()
	toolCallStyle := styles.ToolCallStyle()
	toolResultStyle := styles.ToolResultStyle()

	for _, msg := range messages {
		switch msg.Type {
		case models.System:
			b.WriteString(systemStyle.Render(msg.Content) + "\n\n")
		case models.User:
			b.WriteString(userStyle.Render("You: "+msg.Content) + "\n\n")
		case models.Assistant:
			b.WriteString(assistantStyle.Render("Assistant: "+msg.Content) + "\n\n")
		case models.Program:
			b.WriteString(programStyle.Render(msg.Content) + "\n\n")
		case models.ToolCall:
			b.WriteString(toolCallStyle.Render("Calling "+msg.ToolName+" "+msg.ToolArgs) + "\n\n")
		case models.ToolResult:
			b.WriteString(toolResultStyle.Render(msg.ToolName+" → "+msg.Content) + "\n\n")
		}
	}

	return b.String()
}
