// Package export writes patient reports as structured UTF-8 text. The file
// carries a .pdf name for compatibility with the rest of the demo, but the
// body is plain text.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cliniclite/cliniclite/internal/domain/patient"
)

const (
	pageWidth      = 80
	dateLayout     = "01/02/2006"
	dateTimeLayout = "01/02/2006 03:04 PM"
)

// Chooser supplies the destination path, or reports user cancellation.
// It stands in for the file-picker dialog of a rendering layer.
type Chooser interface {
	ChooseSave(suggestedName string) (path string, ok bool)
}

// FixedPath is a Chooser that always saves to the given directory under the
// suggested name. Used by the CLI export command.
type FixedPath struct {
	Dir string
}

func (f FixedPath) ChooseSave(suggestedName string) (string, bool) {
	return filepath.Join(f.Dir, suggestedName), true
}

// FileName returns the report file name for a patient: First_Last.pdf.
func FileName(p *patient.Patient) string {
	return strings.ReplaceAll(p.FullName(), " ", "_") + ".pdf"
}

// Export writes the report to the destination supplied by the chooser.
// Cancellation returns (false, nil); a write failure returns (false, err).
func Export(p *patient.Patient, chooser Chooser) (bool, error) {
	path, ok := chooser.ChooseSave(FileName(p))
	if !ok {
		return false, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if err := WriteReport(f, p); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}
	return true, nil
}

// WriteReport renders the full report document.
func WriteReport(w io.Writer, p *patient.Patient) error {
	bw := bufio.NewWriter(w)

	writeCentered(bw, "PATIENT MEDICAL RECORD")
	writeCentered(bw, "=======================")
	fmt.Fprintln(bw)

	writeHeading(bw, "PATIENT INFORMATION")
	writeField(bw, "Name", p.FullName())
	writeField(bw, "Date of Birth", fmt.Sprintf("%s (Age: %d)", p.DateOfBirth.Format(dateLayout), p.Age()))
	writeField(bw, "Gender", p.Gender)
	writeField(bw, "Blood Type", p.BloodType)
	fmt.Fprintln(bw)

	writeSubheading(bw, "Contact Information")
	writeField(bw, "Phone", p.Phone)
	writeField(bw, "Email", p.Email)
	writeField(bw, "Address", p.Address)
	fmt.Fprintln(bw)

	writeHeading(bw, "MEDICAL HISTORY")
	if len(p.Records) == 0 {
		fmt.Fprintln(bw, "No medical records available.")
	} else {
		for i, rec := range p.Records {
			writeSubheading(bw, fmt.Sprintf("Record #%d (%s)", i+1, rec.RecordType))
			writeField(bw, "Date", rec.DateTime.Format(dateTimeLayout))
			writeField(bw, "Doctor", rec.DoctorName)
			writeField(bw, "Diagnosis", rec.Diagnosis)
			writeField(bw, "Symptoms", rec.Symptoms)
			writeField(bw, "Treatment", rec.Treatment)
			writeField(bw, "Prescriptions", rec.Prescriptions)
			writeField(bw, "Notes", rec.Notes)
			fmt.Fprintln(bw)
		}
	}

	fmt.Fprintln(bw, strings.Repeat("-", 70))
	fmt.Fprintln(bw, "This document is confidential and for medical use only.")
	fmt.Fprintln(bw, "Generated on: "+time.Now().Format(dateTimeLayout))

	return bw.Flush()
}

func writeCentered(w io.Writer, text string) {
	padding := (pageWidth - len(text)) / 2
	if padding > 0 {
		fmt.Fprint(w, strings.Repeat(" ", padding))
	}
	fmt.Fprintln(w, text)
}

func writeHeading(w io.Writer, heading string) {
	fmt.Fprintln(w, heading)
	fmt.Fprintln(w, strings.Repeat("-", len(heading)))
	fmt.Fprintln(w)
}

func writeSubheading(w io.Writer, heading string) {
	fmt.Fprintln(w, heading)
	fmt.Fprintln(w, strings.Repeat("~", len(heading)))
}

func writeField(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%-15s %s\n", name+":", value)
}
