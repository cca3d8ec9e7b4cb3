package diagfmt

import (
	"encoding/xml"
	"fmt"
	"io"

	"stylint/internal/diag"
)

// JUnit output: one testcase per linted file, failing when the file had
// findings. CI systems ingest it without knowing anything about lint
// categories.

type junitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

type junitTestCase struct {
	Name    string         `xml:"name,attr"`
	Failure *junitFailure  `xml:"failure,omitempty"`
}

type junitSuite struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Errors   int             `xml:"errors,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

func renderJUnit(w io.Writer, items []diag.Diagnostic, tally *diag.Tally) error {
	_ = tally

	// Group findings per file, preserving input file order.
	order := make([]string, 0)
	perFile := make(map[string][]diag.Diagnostic)
	for _, d := range items {
		if _, seen := perFile[d.Path]; !seen {
			order = append(order, d.Path)
		}
		perFile[d.Path] = append(perFile[d.Path], d)
	}

	suite := junitSuite{
		Name:     "stylint",
		Tests:    len(order),
		Failures: len(order),
	}
	if len(order) == 0 {
		suite.Tests = 1
		suite.Cases = []junitTestCase{{Name: "passed"}}
	}

	for _, path := range order {
		body := ""
		for _, d := range perFile[path] {
			body += fmt.Sprintf("%d: %s [%s] [%d]\n", d.Line, d.Message, d.Category, d.Confidence)
		}
		suite.Cases = append(suite.Cases, junitTestCase{
			Name: path,
			Failure: &junitFailure{
				Message: fmt.Sprintf("%d findings", len(perFile[path])),
				Body:    body,
			},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suite); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
