package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"rectiflex-backend/internal/model"
)

const (
	pageLeftMargin = 50.0
	lineHeight     = 20.0
	wrapWidth      = 80
)

// SliceLines splits s into fixed-width chunks of at most width runes. The
// split is position-based, not word-boundary-aware, matching the established
// report layout.
func SliceLines(s string, width int) []string {
	runes := []rune(s)
	var lines []string
	for i := 0; i < len(runes); i += width {
		end := i + width
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, string(runes[i:end]))
	}
	return lines
}

// cursor tracks the vertical write position and inserts page breaks.
type cursor struct {
	pdf *gofpdf.Fpdf
	y   float64
	max float64
}

func (c *cursor) line(text string) {
	if c.y > c.max {
		c.pdf.AddPage()
		c.y = pageLeftMargin
	}
	c.pdf.Text(pageLeftMargin, c.y, text)
	c.y += lineHeight
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "Not set"
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func username(u *model.User, fallback string) string {
	if u == nil {
		return fallback
	}
	return u.Username
}

// RenderWorkOrderPDF serializes a work order into a printable PDF document.
// The work order must arrive with its Assignee and Creator associations
// already resolved; the renderer performs no database or network access.
func RenderWorkOrderPDF(wo *model.WorkOrder) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("Work Order - %s", wo.Title), true)
	pdf.AddPage()

	_, pageHeight := pdf.GetPageSize()
	c := &cursor{pdf: pdf, y: pageLeftMargin, max: pageHeight - pageLeftMargin}

	pdf.SetFont("Helvetica", "B", 16)
	c.line(fmt.Sprintf("Work Order - %s", wo.Title))
	c.y += lineHeight / 2

	pdf.SetFont("Helvetica", "", 12)
	details := []string{
		fmt.Sprintf("ID: %d", wo.ID),
		fmt.Sprintf("Status: %s", wo.Status),
		fmt.Sprintf("Priority: %s", wo.Priority),
		fmt.Sprintf("Due Date: %s", formatDate(wo.DueDate)),
		fmt.Sprintf("Created: %s", formatDateTime(wo.CreatedAt)),
		fmt.Sprintf("Last Updated: %s", formatDateTime(wo.UpdatedAt)),
		fmt.Sprintf("Assigned To: %s", username(wo.Assignee, "Unassigned")),
		fmt.Sprintf("Created By: %s", username(wo.Creator, "Unknown")),
	}
	for _, detail := range details {
		c.line(detail)
	}
	c.y += lineHeight

	pdf.SetFont("Helvetica", "B", 14)
	c.line("Description:")
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range SliceLines(wo.Description, wrapWidth) {
		c.line(line)
	}
	c.y += lineHeight

	pdf.SetFont("Helvetica", "B", 14)
	c.line("Task:")
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range SliceLines(wo.Task, wrapWidth) {
		c.line(line)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render work order %d: %w", wo.ID, err)
	}
	return buf.Bytes(), nil
}
