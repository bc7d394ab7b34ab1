package importer

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/akashch1512/Prep-Tester/models"
	"gorm.io/gorm"
)

// The import document mirrors the catalog hierarchy: branches own subjects,
// subjects own tests, tests own questions. Branch, Subject and Test are
// matched by natural key; Question by (test, text).

type BranchDoc struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Subjects    []SubjectDoc `json:"subjects"`
}

type SubjectDoc struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tests       []TestDoc `json:"tests"`
}

type TestDoc struct {
	Name            string        `json:"name"`
	DurationMinutes int           `json:"duration_minutes"`
	TotalMarks      int           `json:"total_marks"`
	Questions       []QuestionDoc `json:"questions"`
}

type QuestionDoc struct {
	Text          string  `json:"text"`
	Option1       string  `json:"option1"`
	Option2       string  `json:"option2"`
	Option3       string  `json:"option3"`
	Option4       string  `json:"option4"`
	CorrectOption FlexInt `json:"correct_option"`
	Solution      string  `json:"solution"`
}

// FlexInt accepts both 3 and "3"; anything unparseable decodes to zero so a
// single malformed question cannot abort the whole document, it just fails
// validation later and gets skipped.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

type Summary struct {
	Processed int
	Created   int
	Updated   int
	Skipped   int
}

func (s Summary) String() string {
	return fmt.Sprintf("processed=%d created=%d updated=%d skipped=%d",
		s.Processed, s.Created, s.Updated, s.Skipped)
}

func Parse(data []byte) ([]BranchDoc, error) {
	var doc []BranchDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %v", err)
	}
	return doc, nil
}

func (q QuestionDoc) valid() bool {
	if q.Text == "" || q.Option1 == "" || q.Option2 == "" || q.Option3 == "" || q.Option4 == "" {
		return false
	}
	return q.CorrectOption >= 1 && q.CorrectOption <= 4
}

// Run upserts the document inside one transaction. Importing the same
// document twice without updateExisting is a no-op for existing questions;
// with it, changed fields overwrite what is stored.
func Run(db *gorm.DB, doc []BranchDoc, updateExisting bool) (Summary, error) {
	var sum Summary

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, branchDoc := range doc {
			if branchDoc.Name == "" {
				log.Println("Skipping branch with no name")
				continue
			}

			var branch models.Branch
			if err := tx.Where("name = ?", branchDoc.Name).
				Attrs(models.Branch{Name: branchDoc.Name, Description: branchDoc.Description}).
				FirstOrCreate(&branch).Error; err != nil {
				return fmt.Errorf("branch %q: %w", branchDoc.Name, err)
			}

			for _, subjectDoc := range branchDoc.Subjects {
				if subjectDoc.Name == "" {
					log.Printf("Skipping subject with no name in branch %s", branch.Name)
					continue
				}

				var subject models.Subject
				if err := tx.Where("name = ? AND branch_id = ?", subjectDoc.Name, branch.ID).
					Attrs(models.Subject{Name: subjectDoc.Name, BranchID: branch.ID, Description: subjectDoc.Description}).
					FirstOrCreate(&subject).Error; err != nil {
					return fmt.Errorf("subject %q: %w", subjectDoc.Name, err)
				}

				for _, testDoc := range subjectDoc.Tests {
					if testDoc.Name == "" {
						log.Printf("Skipping test with no name in subject %s", subject.Name)
						continue
					}

					duration := testDoc.DurationMinutes
					if duration == 0 {
						duration = 60
					}
					marks := testDoc.TotalMarks
					if marks == 0 {
						marks = 100
					}

					var test models.Test
					if err := tx.Where("name = ? AND subject_id = ?", testDoc.Name, subject.ID).
						Attrs(models.Test{Name: testDoc.Name, SubjectID: subject.ID, DurationMinutes: duration, TotalMarks: marks}).
						FirstOrCreate(&test).Error; err != nil {
						return fmt.Errorf("test %q: %w", testDoc.Name, err)
					}

					var sortOrder int64
					if res := tx.Model(&models.Question{}).Where("test_id = ?", test.ID).Count(&sortOrder); res.Error != nil {
						return res.Error
					}

					for _, questionDoc := range testDoc.Questions {
						sum.Processed++

						if !questionDoc.valid() {
							log.Printf("Skipping question with missing required fields in test %s", test.Name)
							sum.Skipped++
							continue
						}

						var existing models.Question
						found := tx.Where("test_id = ? AND text = ?", test.ID, questionDoc.Text).
							First(&existing).Error == nil

						if found && !updateExisting {
							sum.Skipped++
							continue
						}

						var solution *string
						if questionDoc.Solution != "" {
							s := questionDoc.Solution
							solution = &s
						}

						if found {
							existing.Option1 = questionDoc.Option1
							existing.Option2 = questionDoc.Option2
							existing.Option3 = questionDoc.Option3
							existing.Option4 = questionDoc.Option4
							existing.CorrectOption = int(questionDoc.CorrectOption)
							existing.Solution = solution
							if err := tx.Save(&existing).Error; err != nil {
								return fmt.Errorf("updating question in test %q: %w", test.Name, err)
							}
							sum.Updated++
							continue
						}

						question := models.Question{
							TestID:        test.ID,
							Text:          questionDoc.Text,
							Option1:       questionDoc.Option1,
							Option2:       questionDoc.Option2,
							Option3:       questionDoc.Option3,
							Option4:       questionDoc.Option4,
							CorrectOption: int(questionDoc.CorrectOption),
							Solution:      solution,
							SortOrder:     int(sortOrder),
						}
						if err := tx.Create(&question).Error; err != nil {
							return fmt.Errorf("creating question in test %q: %w", test.Name, err)
						}
						sortOrder++
						sum.Created++
					}
				}
			}
		}
		return nil
	})

	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}
