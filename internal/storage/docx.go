package storage

import (
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/meetscribe/scribe/internal/meeting"
)

const (
	docxFont     = "Calibri"
	docxBodySize = 11
	docxHeadSize = 14
)

// writeDocx renders the meeting record as a styled Word document alongside
// the canonical text file.
func writeDocx(record *meeting.Record, generatedAt time.Time, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addHeading(doc, "Meeting Notes", 16)
	addBody(doc, "Generated: "+generatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	doc.AddParagraph("")

	addHeading(doc, "Transcript", docxHeadSize)
	segments := record.Relabeled()
	if len(segments) == 0 {
		addBody(doc, "(No transcript available)")
	}
	for _, seg := range segments {
		p := doc.AddParagraph("")
		p.AddText("["+meeting.FormatTimestamp(seg.Start)+"] ").Font(docxFont).Size(docxBodySize).Color("666666")
		p.AddText(seg.Speaker+": ").Font(docxFont).Size(docxBodySize).Color("000000").Bold(true)
		p.AddText(seg.Text).Font(docxFont).Size(docxBodySize).Color("000000")
	}
	doc.AddParagraph("")

	addHeading(doc, "Summary", docxHeadSize)
	if record.Summary.Summary != "" {
		addBody(doc, record.Summary.Summary)
	} else {
		addBody(doc, "(No summary provided)")
	}
	doc.AddParagraph("")

	addHeading(doc, "Action Items", docxHeadSize)
	if len(record.Summary.ActionItems) == 0 {
		addBody(doc, "• (no action items)")
	}
	for _, item := range record.Summary.ActionItems {
		addBody(doc, "• "+item)
	}

	return doc.SaveTo(outputPath)
}

func addHeading(doc *docx.RootDoc, text string, size uint64) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(docxFont).Size(size).Color("000000").Bold(true)
}

func addBody(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(docxFont).Size(docxBodySize).Color("000000")
}
