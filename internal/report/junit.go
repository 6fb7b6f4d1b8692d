package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// JUnitWriter writes a JUnit XML file with one testsuite per scenario file
type JUnitWriter struct {
	Path string
}

func (w *JUnitWriter) Name() string { return ReporterJUnit }

func (w *JUnitWriter) Write(result RunResult) error {
	data, err := JUnit(result)
	if err != nil {
		return err
	}
	return writeFile(w.Path, data)
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// JUnit renders result as JUnit XML
func JUnit(result RunResult) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	passed, failed, skipped := result.Counts()
	root := doc.CreateElement("testsuites")
	root.CreateAttr("name", "shopcheck")
	root.CreateAttr("tests", strconv.Itoa(passed+failed+skipped))
	root.CreateAttr("failures", strconv.Itoa(failed))
	root.CreateAttr("skipped", strconv.Itoa(skipped))
	root.CreateAttr("time", seconds(result.Duration))

	type suite struct {
		el       *etree.Element
		tests    int
		failures int
		skipped  int
		time     time.Duration
	}
	var order []*suite
	suites := map[string]*suite{}
	for _, t := range result.Tests {
		s, ok := suites[t.File]
		if !ok {
			el := root.CreateElement("testsuite")
			el.CreateAttr("name", t.File)
			el.CreateAttr("timestamp", result.Start.UTC().Format(time.RFC3339))
			s = &suite{el: el}
			suites[t.File] = s
			order = append(order, s)
		}
		s.tests++
		s.time += t.Duration

		tc := s.el.CreateElement("testcase")
		tc.CreateAttr("name", t.FullName())
		tc.CreateAttr("classname", "shopcheck."+t.File)
		tc.CreateAttr("time", seconds(t.Duration))

		switch {
		case t.Failed():
			s.failures++
			f := tc.CreateElement("failure")
			f.CreateAttr("message", t.Error)
			f.CreateAttr("type", string(t.Kind))
			f.SetText(stepLog(t.Steps))
		case t.Skipped():
			s.skipped++
			tc.CreateElement("skipped").CreateAttr("message", t.Error)
		}
		var attachments []string
		for _, a := range t.Artifacts {
			for _, p := range a.Paths() {
				attachments = append(attachments, fmt.Sprintf("[[ATTACHMENT|%s]]", p))
			}
		}
		if len(attachments) > 0 {
			tc.CreateElement("system-out").SetText(strings.Join(attachments, "\n"))
		}
	}
	for _, s := range order {
		s.el.CreateAttr("tests", strconv.Itoa(s.tests))
		s.el.CreateAttr("failures", strconv.Itoa(s.failures))
		s.el.CreateAttr("skipped", strconv.Itoa(s.skipped))
		s.el.CreateAttr("time", seconds(s.time))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func stepLog(steps []StepResult) string {
	var b strings.Builder
	for _, s := range steps {
		mark := "ok  "
		if s.Status == StatusFailed {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", mark, s.Name, s.Duration.Round(time.Millisecond))
		if s.Error != "" {
			fmt.Fprintf(&b, "     %s\n", s.Error)
		}
	}
	return b.String()
}
