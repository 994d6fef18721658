package service

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/chlyn/COSC369-Final-Project/internal/model"
)

// PromptInput everything the model sees for one chat turn.
type PromptInput struct {
	Semester   string
	Catalog    []model.Course
	Enrolled   []model.Course
	Transcript []model.Message // prior turns, oldest first
	Message    string          // the new user message
}

const promptInstructions = `You are a helpful academic scheduling assistant for a university student.
Answer using only the course data below. If the data does not contain the answer, say so briefly.`

const promptInterpretation = `INTERPRETATION RULES:
- "my classes", "my schedule", "I am taking" and similar phrases refer to ENROLLED_CLASSES.
- "other classes", "available classes", "what else" and similar phrases refer to COURSE_CATALOG.
- When the student asks about classes they could add, exclude courses already in ENROLLED_CLASSES.`

const promptFormatting = `FORMATTING RULES:
- When the student asks for a list of classes, reply with exactly one short sentence, then a Markdown table with these columns in this order:
  | Course ID | Name | Professor | Location | Days | Time |
- Days are joined with ", ". Time is "<start> - <end>".
- Write nothing after the table.
- For any other question, answer in plain prose without a table.`

// promptCourse fixes the field names and order the model sees.
type promptCourse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Professor string   `json:"professor"`
	Location  string   `json:"location"`
	Days      []string `json:"days"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
}

// BuildPrompt renders the single text prompt sent to the model. It is a pure
// function of its input: the same input always yields the same string.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString(promptInstructions)
	b.WriteString("\n\n")
	b.WriteString(promptInterpretation)
	b.WriteString("\n\n")
	b.WriteString(promptFormatting)
	b.WriteString("\n\n")

	b.WriteString("CURRENT_SEMESTER: ")
	b.WriteString(in.Semester)
	b.WriteString("\n\n")

	b.WriteString("COURSE_CATALOG (JSON):\n")
	b.WriteString(coursesJSON(in.Catalog))
	b.WriteString("\n\n")

	b.WriteString("ENROLLED_CLASSES (JSON):\n")
	b.WriteString(coursesJSON(in.Enrolled))
	b.WriteString("\n\n")

	b.WriteString("CONVERSATION SO FAR:\n")
	if len(in.Transcript) == 0 {
		b.WriteString("(none)\n")
	}
	for _, m := range in.Transcript {
		b.WriteString(roleLabel(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}

	b.WriteString("\nUser: ")
	b.WriteString(in.Message)

	return b.String()
}

func roleLabel(role string) string {
	if role == model.RoleAssistant {
		return "Assistant"
	}
	return "User"
}

func coursesJSON(courses []model.Course) string {
	out := make([]promptCourse, 0, len(courses))
	for _, c := range courses {
		days := []string(c.Days)
		if days == nil {
			days = []string{}
		}
		out = append(out, promptCourse{
			ID:        c.CourseID,
			Name:      c.Name,
			Professor: c.Professor,
			Location:  c.Location,
			Days:      days,
			Start:     c.Start,
			End:       c.End,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		// only plain strings are encoded
		return "[]"
	}
	return strings.TrimRight(buf.String(), "\n")
}
