package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

type mockTool struct {
	def mcp.Tool
}

func (m *mockTool) Name() string         { return m.def.Name }
func (m *mockTool) Description() string  { return m.def.Description }
func (m *mockTool) Definition() mcp.Tool { return m.def }
func (m *mockTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(""), nil
}

func TestPrintTool(t *testing.T) {
	tests := []struct {
		name           string
		tool           *mockTool
		expectedOutput []string
		notExpected    []string
	}{
		{
			name: "No arguments",
			tool: &mockTool{def: mcp.NewTool("listThings",
				mcp.WithDescription("List all things"),
				mcp.WithReadOnlyHintAnnotation(true),
			)},
			expectedOutput: []string{
				"TOOL: listThings",
				"List all things",
				"Hints: read-only",
			},
			notExpected: []string{
				"Arguments:",
			},
		},
		{
			name: "With arguments",
			tool: &mockTool{def: mcp.NewTool("moveThing",
				mcp.WithDescription("Move a thing"),
				mcp.WithString("thingId", mcp.Required(), mcp.Description("Thing ID")),
				mcp.WithString("where", mcp.Description("Destination")),
			)},
			expectedOutput: []string{
				"TOOL: moveThing",
				"Move a thing",
				"Arguments:",
				"  thingId (string, required)",
				"    Thing ID",
				"  where (string, optional)",
				"    Destination",
			},
			notExpected: []string{
				"read-only",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			printTool(buf, tt.tool, false)
			output := buf.String()

			for _, exp := range tt.expectedOutput {
				if !strings.Contains(output, exp) {
					t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
				}
			}
			for _, notExp := range tt.notExpected {
				if strings.Contains(output, notExp) {
					t.Errorf("Expected output NOT to contain %q, but it did.\nOutput:\n%s", notExp, output)
				}
			}
			if strings.Index(output, "thingId") > strings.Index(output, "where") {
				t.Errorf("arguments must be sorted by name.\nOutput:\n%s", output)
			}
		})
	}
}

func TestToolsListCmd(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedOutput []string
		notExpected    []string
	}{
		{
			name: "Default Output",
			args: []string{"tools", "list"},
			expectedOutput: []string{
				"----------------------------------------",
				"TOOL: linkTasks",
				"Link tasks together by creating dependencies",
				"dependsOnTaskIds (string, required)",
			},
		},
		{
			name: "Quiet Output",
			args: []string{"tools", "list", "-q"},
			expectedOutput: []string{
				"createProject\n",
				"unlinkTasks\n",
			},
			notExpected: []string{
				"TOOL:",
				"----------------------------------------",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, code, err := run(t, tt.args...)
			if err != nil || code != 0 {
				t.Fatalf("run() code=%d error=%v", code, err)
			}
			for _, exp := range tt.expectedOutput {
				if !strings.Contains(output, exp) {
					t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
				}
			}
			for _, notExp := range tt.notExpected {
				if strings.Contains(output, notExp) {
					t.Errorf("Expected output NOT to contain %q, but it did.\nOutput:\n%s", notExp, output)
				}
			}
		})
	}
}

func TestToolsListCmd_QuietListsEveryTool(t *testing.T) {
	output, _, err := run(t, "tools", "list", "-q")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	names := strings.Split(strings.TrimSpace(output), "\n")
	if len(names) != 27 {
		t.Fatalf("expected 27 tools, got %d: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("tools not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestToolsShowCmd(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedOutput []string
		expectError    bool
	}{
		{
			name: "Show Existing Tool",
			args: []string{"tools", "show", "getTask"},
			expectedOutput: []string{
				"TOOL: getTask",
				"Get a specific task by ID",
				"Hints: read-only",
				"taskId (string, required)",
			},
		},
		{
			name:        "Show Non-Existent Tool",
			args:        []string{"tools", "show", "non-existent-tool"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, _, err := run(t, tt.args...)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, exp := range tt.expectedOutput {
				if !strings.Contains(output, exp) {
					t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
				}
			}
		})
	}
}
