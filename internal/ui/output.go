package ui

import (
	"fmt"
	"strings"
)

// Output helpers for consistent styled output across commands.

func Title(text string) {
	fmt.Println(TitleStyle.Render(text))
}

func Success(text string) {
	fmt.Println(SuccessStyle.Render("✓ " + text))
}

func Error(text string) {
	fmt.Println(ErrorStyle.Render("✗ " + text))
}

func Warning(text string) {
	fmt.Println(WarningStyle.Render("! " + text))
}

// Dim prints secondary text, indented.
func Dim(text string) {
	fmt.Println(DimStyle.Render("  " + text))
}

func Step(text string) {
	fmt.Println(StepStyle.Render(text))
}

func Command(text string) {
	fmt.Println(CommandStyle.Render(text))
}

func Box(text string) {
	fmt.Println(BoxStyle.Render(text))
}

func Bold(text string) {
	fmt.Println(BoldStyle.Render(text))
}

func URL(text string) {
	fmt.Println(URLStyle.Render(text))
}

func Line() {
	fmt.Println()
}

func Print(text string) {
	fmt.Println(text)
}

func Printf(format string, args ...any) {
	fmt.Printf(format, args...)
}

// Indent prefixes text with two spaces per level.
func Indent(text string, level int) string {
	return strings.Repeat("  ", level) + text
}

func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

func RenderSuccess(text string) string {
	return SuccessStyle.Render(text)
}

func RenderError(text string) string {
	return ErrorStyle.Render(text)
}

func RenderDim(text string) string {
	return DimStyle.Render(text)
}

func RenderBold(text string) string {
	return BoldStyle.Render(text)
}

func RenderCommand(text string) string {
	return CommandStyle.Render(text)
}

func RenderURL(text string) string {
	return URLStyle.Render(text)
}

func RenderHighlight(text string) string {
	return HighlightStyle.Render(text)
}
