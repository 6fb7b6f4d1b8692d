package report

import (
	"bytes"
	"html/template"
	"path/filepath"
	"time"
)

// HTMLWriter writes a single self-contained HTML page
type HTMLWriter struct {
	Path string
}

func (w *HTMLWriter) Name() string { return ReporterHTML }

func (w *HTMLWriter) Write(result RunResult) error {
	data, err := HTML(result, filepath.Dir(w.Path))
	if err != nil {
		return err
	}
	return writeFile(w.Path, data)
}

type htmlView struct {
	RunResult
	Passed  int
	Failed  int
	Skipped int
}

// HTML renders result. Artifact links are made relative to baseDir so the
// report can be moved together with its artifacts.
func HTML(result RunResult, baseDir string) ([]byte, error) {
	rel := func(path string) string {
		if r, err := filepath.Rel(baseDir, path); err == nil {
			return filepath.ToSlash(r)
		}
		return filepath.ToSlash(path)
	}
	ms := func(d time.Duration) string { return d.Round(time.Millisecond).String() }
	funcs := template.FuncMap{"ms": ms, "rel": rel, "base": filepath.Base}
	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return nil, err
	}

	view := htmlView{RunResult: result}
	view.Passed, view.Failed, view.Skipped = result.Counts()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>shopcheck {{.RunID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
td, th { border-bottom: 1px solid #ddd; padding: .4rem; text-align: left; vertical-align: top; }
.passed { color: #1a7f37; }
.failed { color: #cf222e; }
.skipped { color: #9a6700; }
.steps { font-size: .85rem; margin: 0; padding-left: 1rem; }
</style>
</head>
<body>
<h1>shopcheck run</h1>
<p>Run <code>{{.RunID}}</code> against <code>{{.BaseURL}}</code> on {{.Browser}}{{if .Profile}} (profile {{.Profile}}){{end}}</p>
<p><span class="passed">{{.Passed}} passed</span>, <span class="failed">{{.Failed}} failed</span>{{if .Skipped}}, <span class="skipped">{{.Skipped}} skipped</span>{{end}} in {{ms .Duration}}</p>
<table>
<tr><th>Test</th><th>Status</th><th>Duration</th><th>Details</th></tr>
{{range .Tests}}<tr>
<td>{{.ID}} {{.Name}}<br><small>{{.File}}{{range .Tags}} @{{.}}{{end}}</small></td>
<td class="{{.Status}}">{{.Status}}{{if .Kind}} ({{.Kind}}){{end}}</td>
<td>{{ms .Duration}}</td>
<td>{{if .Error}}<pre>{{.Error}}</pre>{{end}}
<ul class="steps">{{range .Steps}}<li class="{{.Status}}">{{.Name}} ({{ms .Duration}})</li>{{end}}</ul>
{{range .Artifacts}}{{if .Screenshot}}<a href="{{rel .Screenshot}}">{{base .Screenshot}}</a> {{end}}{{if .Trace}}<a href="{{rel .Trace}}">{{base .Trace}}</a> {{end}}{{if .Video}}<a href="{{rel .Video}}">{{base .Video}}</a>{{end}}{{end}}
</td>
</tr>
{{end}}</table>
</body>
</html>
`
