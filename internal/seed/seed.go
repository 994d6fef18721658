// Package seed holds the static course dataset loaded into an empty catalog.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/chlyn/COSC369-Final-Project/internal/model"
)

//go:embed courses.json
var coursesJSON []byte

type courseRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Professor string   `json:"professor"`
	Location  string   `json:"location"`
	Days      []string `json:"days"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
}

// Courses decodes the embedded dataset. Ids are upper-cased and trimmed so
// they match the normalized lookup key.
func Courses() ([]model.Course, error) {
	return decode(coursesJSON)
}

func decode(data []byte) ([]model.Course, error) {
	var records []courseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode course seed: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	courses := make([]model.Course, 0, len(records))
	for _, r := range records {
		id := model.NormalizeCourseCode(r.ID)
		if id == "" {
			return nil, fmt.Errorf("course seed: record %q has no id", r.Name)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("course seed: duplicate id %s", id)
		}
		seen[id] = struct{}{}

		days := r.Days
		if days == nil {
			days = []string{}
		}
		courses = append(courses, model.Course{
			CourseID:  id,
			Name:      r.Name,
			Professor: r.Professor,
			Location:  r.Location,
			Days:      days,
			Start:     r.Start,
			End:       r.End,
		})
	}
	return courses, nil
}
