// Command tableone builds a publication-style summary table from a CSV
// file and renders it as text, HTML or LaTeX.
package main

func main() {
	Execute()
}
