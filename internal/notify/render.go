package notify

import (
	"bytes"
	"dailyq/internal/question"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// maxCompanies is how many company names are listed before collapsing the rest.
	maxCompanies = 10
	// maxDescription is the description length, in characters, kept in a message.
	maxDescription = 800

	truncatedSuffix = "...\n\n[View full problem on LeetCode]"
)

//go:embed templates/*.tmpl
var templates embed.FS

var dailyTemplate = template.Must(template.ParseFS(templates, "templates/daily.html.tmpl"))

type questionView struct {
	Number          int
	Title           string
	DifficultyClass string
	DifficultyLabel string
	FAANG           bool
	Companies       string
	Frequency       string
	Likes           string
	Acceptance      string
	Rating          string
	Description     string
	URL             string
}

// Subject is the message subject for a batch sent at now.
func Subject(now time.Time) string {
	return "Daily LeetCode - " + now.Format("Jan 02, 2006")
}

// Render produces the HTML message body for batch.
func Render(batch []question.Question, now time.Time) (string, error) {
	views := make([]questionView, len(batch))
	for i := range batch {
		views[i] = newQuestionView(i+1, batch[i])
	}

	var buf bytes.Buffer
	err := dailyTemplate.Execute(&buf, struct {
		Date      string
		Questions []questionView
	}{
		Date:      now.Format("Monday, January 2, 2006"),
		Questions: views,
	})
	if err != nil {
		return "", fmt.Errorf("render message: %w", err)
	}
	return buf.String(), nil
}

func newQuestionView(number int, q question.Question) questionView {
	return questionView{
		Number:          number,
		Title:           q.Title,
		DifficultyClass: strings.ToLower(q.Difficulty),
		DifficultyLabel: strings.ToUpper(q.Difficulty),
		FAANG:           q.AskedByFAANG,
		Companies:       CompanySummary(q),
		Frequency:       fmt.Sprintf("%.1f", question.Value(q.Frequency)),
		Likes:           humanize.Comma(int64(question.Value(q.Likes))),
		Acceptance:      strconv.FormatFloat(question.Value(q.AcceptanceRate), 'f', -1, 64),
		Rating:          fmt.Sprintf("%.1f", question.Value(q.Rating)),
		Description:     TruncateDescription(q.Description),
		URL:             q.URL,
	}
}

// CompanySummary lists the companies asking q, collapsing long lists
// to the first names followed by "and N more".
func CompanySummary(q question.Question) string {
	companies := q.CompanyList()
	if len(companies) == 0 {
		return "N/A"
	}
	if len(companies) > maxCompanies {
		return fmt.Sprintf("%s and %d more", strings.Join(companies[:maxCompanies], ", "), len(companies)-maxCompanies)
	}
	return strings.Join(companies, ", ")
}

// TruncateDescription shortens long descriptions and substitutes a placeholder for empty ones.
func TruncateDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return "No description available"
	}
	runes := []rune(description)
	if len(runes) <= maxDescription {
		return description
	}
	return string(runes[:maxDescription]) + truncatedSuffix
}
