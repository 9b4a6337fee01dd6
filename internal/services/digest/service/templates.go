package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"assistant/internal/core/scope"
)

type taskView struct {
	Title       string
	Notes       string
	Tag         string
	Project     string
	Date        string
	StatusClass string
	StatusLabel string
}

type taskSection struct {
	Title string
	Tasks []taskView
}

type friendSummaryData struct {
	RecipientName string
	UserName      string
	Date          string
	TaskCount     int
	Sections      []taskSection
}

type mealView struct {
	MealType    string
	Description string
	Calories    float64
}

type personalSummaryData struct {
	UserName string
	Date     string
	Tasks    []taskView
	Meals    []mealView
}

const summaryStyle = `
	body {
		font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Arial, sans-serif;
		line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;
	}
	.header {
		background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
		color: white; padding: 30px; border-radius: 10px; margin-bottom: 30px;
	}
	.greeting { font-size: 24px; font-weight: bold; margin-bottom: 10px; }
	.date { font-size: 14px; opacity: 0.9; }
	.section { margin-bottom: 30px; }
	.section-title {
		font-size: 18px; font-weight: bold; margin-bottom: 15px;
		padding-bottom: 10px; border-bottom: 2px solid #f0f0f0;
	}
	.task-list { list-style: none; padding: 0; }
	.task-item {
		background: #f8f9fa; padding: 15px; margin-bottom: 10px;
		border-radius: 8px; border-left: 4px solid #667eea;
	}
	.task-title { font-weight: 600; margin-bottom: 5px; }
	.task-meta { font-size: 13px; color: #666; }
	.status-badge {
		display: inline-block; padding: 3px 10px; border-radius: 12px;
		font-size: 12px; font-weight: 500; margin-right: 8px;
	}
	.status-todo { background: #fef3c7; color: #92400e; }
	.status-progress { background: #dbeafe; color: #1e40af; }
	.status-done { background: #d1fae5; color: #065f46; }
	.footer {
		margin-top: 40px; padding-top: 20px; border-top: 1px solid #e5e7eb;
		font-size: 13px; color: #666; text-align: center;
	}
`

const taskListPartial = `{{define "tasks"}}<ul class="task-list">
{{range .}}<li class="task-item">
	<div class="task-title">{{.Title}}</div>
	<div class="task-meta">
		<span class="status-badge status-{{.StatusClass}}">{{.StatusLabel}}</span>
		{{if .Date}}<span>📅 {{.Date}}</span>{{end}}
		{{if .Tag}} <span>🏷️ {{.Tag}}</span>{{end}}
		{{if .Project}} <span>📁 {{.Project}}</span>{{end}}
		{{if .Notes}}<br><span style="margin-top: 5px; display: block;">💬 {{.Notes}}</span>{{end}}
	</div>
</li>
{{end}}</ul>{{end}}`

var friendSummaryTmpl = template.Must(template.New("friend").Parse(taskListPartial + `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>` + summaryStyle + `</style>
</head>
<body>
	<div class="header">
		<div class="greeting">Merhaba {{.RecipientName}}! 👋</div>
		<div class="date">{{.Date}} tarihli görev özeti</div>
	</div>

	<p>{{.UserName}}, sizinle paylaşmak istediği {{.TaskCount}} görevi var:</p>

	{{range .Sections}}<div class="section">
		<div class="section-title">{{.Title}}</div>
		{{template "tasks" .Tasks}}
	</div>
	{{end}}
	<div class="footer">
		<p>Bu email Personal Assistant uygulaması tarafından otomatik olarak gönderilmiştir.</p>
	</div>
</body>
</html>`))

var personalSummaryTmpl = template.Must(template.New("personal").Parse(taskListPartial + `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>` + summaryStyle + `</style>
</head>
<body>
	<div class="header">
		<div class="greeting">Merhaba {{.UserName}}! 👋</div>
		<div class="date">{{.Date}} günlük planınız</div>
	</div>

	{{if .Tasks}}<div class="section">
		<div class="section-title">📋 Bugünün Görevleri ({{len .Tasks}})</div>
		{{template "tasks" .Tasks}}
	</div>
	{{end}}
	{{if .Meals}}<div class="section">
		<div class="section-title">🍽️ Bugünün Öğünleri ({{len .Meals}})</div>
		<ul class="task-list">
		{{range .Meals}}<li class="task-item">
			<div class="task-title">{{.MealType}}</div>
			<div class="task-meta">{{.Description}}{{if .Calories}} · {{.Calories}} kcal{{end}}</div>
		</li>
		{{end}}</ul>
	</div>
	{{end}}
	<div class="footer">
		<p>Bu email Personal Assistant uygulaması tarafından otomatik olarak gönderilmiştir.</p>
	</div>
</body>
</html>`))

// formatTaskDate renders a client timestamp as DD.MM.YYYY HH:MM, the raw
// value passes through when it does not parse
func formatTaskDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02.01.2006 15:04")
		}
	}
	return raw
}

func toTaskView(t scope.Task) taskView {
	v := taskView{
		Title:   t.Title,
		Notes:   t.Notes,
		Tag:     t.Tag,
		Project: t.Project,
		Date:    formatTaskDate(t.StartDate),
	}
	if v.Title == "" {
		v.Title = "Başlıksız Görev"
	}
	switch strings.ToLower(t.Status) {
	case "in progress":
		v.StatusClass, v.StatusLabel = "progress", "Devam Ediyor"
	case "done":
		v.StatusClass, v.StatusLabel = "done", "Tamamlandı"
	default:
		v.StatusClass, v.StatusLabel = "todo", "Yapılacak"
	}
	return v
}

// taskSections splits tasks by status, empty groups are omitted
func taskSections(tasks []scope.Task) []taskSection {
	var todo, progress, done []taskView
	for _, t := range tasks {
		v := toTaskView(t)
		switch v.StatusClass {
		case "progress":
			progress = append(progress, v)
		case "done":
			done = append(done, v)
		default:
			todo = append(todo, v)
		}
	}

	var out []taskSection
	if len(todo) > 0 {
		out = append(out, taskSection{Title: fmt.Sprintf("📌 Yapılacak (%d)", len(todo)), Tasks: todo})
	}
	if len(progress) > 0 {
		out = append(out, taskSection{Title: fmt.Sprintf("🚀 Devam Eden (%d)", len(progress)), Tasks: progress})
	}
	if len(done) > 0 {
		out = append(out, taskSection{Title: fmt.Sprintf("✅ Tamamlanan (%d)", len(done)), Tasks: done})
	}
	return out
}

func renderFriendSummary(recipientName, userName, date string, tasks []scope.Task) (string, error) {
	var buf bytes.Buffer
	err := friendSummaryTmpl.Execute(&buf, friendSummaryData{
		RecipientName: recipientName,
		UserName:      userName,
		Date:          date,
		TaskCount:     len(tasks),
		Sections:      taskSections(tasks),
	})
	return buf.String(), err
}

func renderPersonalSummary(userName, date string, tasks []scope.Task, meals []scope.Meal) (string, error) {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	mealViews := make([]mealView, 0, len(meals))
	for _, m := range meals {
		mealViews = append(mealViews, mealView{MealType: m.MealType, Description: m.Description, Calories: m.Calories})
	}

	var buf bytes.Buffer
	err := personalSummaryTmpl.Execute(&buf, personalSummaryData{
		UserName: userName,
		Date:     date,
		Tasks:    views,
		Meals:    mealViews,
	})
	return buf.String(), err
}
