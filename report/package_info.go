// Package report renders a completed framework.Suite as a markdown document, a JSON
// document, or a console summary.
package report
