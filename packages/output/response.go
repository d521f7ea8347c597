package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/pretty"

	"github.com/abdul-hamid-achik/axotly/packages/core/runner"
	"github.com/abdul-hamid-achik/axotly/packages/http"
)

// FormatResponse writes the status line, the sorted headers and the body of
// resp. JSON bodies are pretty printed. Every line is prefixed with indent.
func FormatResponse(w io.Writer, resp *http.Response, indent string) {
	fmt.Fprintf(w, "%s%s\n", indent, statusColor(resp).Sprint(statusLine(resp)))
	for _, name := range resp.HeaderNames() {
		fmt.Fprintf(w, "%s%s: %s\n", indent, name, resp.Headers[name])
	}
	if len(resp.Body) == 0 {
		return
	}

	body := resp.Body
	if resp.IsJSON() {
		body = pretty.Pretty(body)
	}
	fmt.Fprintln(w)
	for _, line := range strings.Split(strings.TrimRight(string(body), "\n"), "\n") {
		fmt.Fprintf(w, "%s%s\n", indent, line)
	}
}

func statusLine(resp *http.Response) string {
	proto := resp.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	status := resp.Status
	if status == "" {
		status = strconv.Itoa(resp.StatusCode)
	}
	return proto + " " + status
}

// statusColor picks the status line colour from the response status class.
func statusColor(resp *http.Response) *color.Color {
	switch {
	case resp.IsSuccess():
		return color.New(color.Bold, color.FgGreen)
	case resp.IsRedirect():
		return color.New(color.Bold, color.FgCyan)
	case resp.IsClientError():
		return color.New(color.Bold, color.FgYellow)
	case resp.IsServerError():
		return color.New(color.Bold, color.FgRed)
	}
	return color.New(color.Bold)
}

// writeExchange prints the curl reproduction of a result's request and the
// response it got, if any.
func writeExchange(w io.Writer, r *runner.TestResult, indent string) {
	dim := color.New(color.Faint).SprintFunc()

	if r.Request != nil {
		fmt.Fprintf(w, "\n%s%s\n", indent, dim("Request:"))
		fmt.Fprintf(w, "%s  %s\n", indent, http.CurlCommand(r.Request))
	}
	if r.Response != nil {
		fmt.Fprintf(w, "\n%s%s\n", indent, dim("Response:"))
		FormatResponse(w, r.Response, indent+"  ")
	}
}
