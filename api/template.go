package api

import (
	"html/template"
	"log"
	"net/http"

	"github.com/ohdongsik/contents-rate/models"
)

// pageData feeds the index template. Report is nil until a form submit.
type pageData struct {
	URL         string
	ContentType string
	Error       string
	Report      *models.EvaluationReport
}

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"stars": func(score float64) string {
		out := ""
		full := int(score)
		for i := 0; i < full; i++ {
			out += "★"
		}
		if score-float64(full) >= 0.5 {
			out += "½"
		}
		return out
	},
}).Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sally 콘텐츠 평가기</title>
<style>
body { font-family: 'Apple SD Gothic Neo', 'Malgun Gothic', sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { font-size: 1.5rem; }
form { display: flex; gap: .5rem; flex-wrap: wrap; margin-bottom: 1.5rem; }
input[type=url] { flex: 1; min-width: 280px; padding: .5rem; }
select, button { padding: .5rem .8rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #ddd; padding: .5rem .7rem; text-align: left; vertical-align: top; }
th { background: #f7f7f7; white-space: nowrap; }
.error { color: #b00020; }
.summary { background: #f0f6ff; padding: .8rem 1rem; border-radius: 6px; }
.notes li { color: #8a6d00; }
</style>
</head>
<body>
<h1>Sally 콘텐츠 평가기</h1>
<form method="post" action="/">
<select name="content_type">
<option value="blog"{{if ne .ContentType "instagram"}} selected{{end}}>네이버 블로그 포스팅</option>
<option value="instagram"{{if eq .ContentType "instagram"}} selected{{end}}>인스타그램 피드</option>
</select>
<input type="url" name="url" placeholder="평가할 콘텐츠 URL" value="{{.URL}}" required>
<button type="submit">평가하기</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{with .Report}}
<h2>콘텐츠 개요</h2>
<ul>
{{range .Overview}}<li>{{.}}</li>
{{end}}</ul>
<h2>항목별 평가</h2>
<table>
<tr><th>항목</th><th>별점</th><th>평가</th></tr>
{{$reviews := .Reviews}}
{{range .Scores}}<tr><td>{{.Name}}</td><td>{{stars .Value}} {{printf "%.1f" .Value}}</td><td>{{index $reviews .Name}}</td></tr>
{{end}}</table>
<p><strong>{{printf "평균 별점: %.1f / 5" .Average}}</strong></p>
<p class="summary">{{.Summary}}</p>
{{if .Notes}}<ul class="notes">
{{range .Notes}}<li>{{.}}</li>
{{end}}</ul>{{end}}
{{end}}
</body>
</html>
`))

// renderPage writes the index page. Template auto-escaping keeps fetched
// page content (titles, snippets) inert in the output.
func renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("template render error: %v", err)
	}
}
