// Package main provides the entry point for the a11yscan CLI.
//
// a11yscan is an accessibility conformance checker for HTML documents.
// It analyzes parsed documents for WCAG and ARIA conformance issues such as
// insufficient color contrast, broken tab order, and invalid ARIA usage.
//
// Usage:
//
//	a11yscan check <document.html>
//	a11yscan check page1.html page2.html
//
// See --help for all available options.
package main

// main is the entry point for a11yscan.
func main() {
	Execute()
}
