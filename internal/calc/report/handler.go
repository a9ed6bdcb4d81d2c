package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"Porthole/internal/calc/porthole"
	"Porthole/internal/present"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

type Document struct {
	ID      string         `json:"-"`
	Project string         `json:"project"`
	Author  string         `json:"author"`
	Title   string         `json:"title"`
	Notes   string         `json:"notes"`
	Input   porthole.Input `json:"input"`
}

type Handler struct{}

// render is swapped out in tests.
var render = Render

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	doc := Document{Input: porthole.Defaults()}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	doc.ID = uuid.NewString()

	var buf bytes.Buffer
	if err := render(&buf, doc); err != nil {
		log.Printf("report %s: %v", doc.ID, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"porthole-%s.pdf\"", doc.ID))
	w.Write(buf.Bytes())
}

// Render computes the case in doc and writes it as a one-page A4 PDF.
func Render(w io.Writer, doc Document) error {
	if doc.Title == "" {
		doc.Title = "Port Hole on Tube — Fatigue FOS & Life"
	}
	res := porthole.Calculate(doc.Input)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(doc.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", doc.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", doc.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	if doc.ID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Report: %s", doc.ID))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, "Inputs")
	for _, row := range inputRows(doc.Input) {
		pdf.CellFormat(90, 6, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Outputs")
	for _, c := range present.Cards(res) {
		style := ""
		if c.Major {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(90, 6, tr(c.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(c.Text), "1", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, tr(c.Hint), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Formulae")
	pdf.SetFont("Courier", "", 10)
	for _, f := range present.Formulae() {
		pdf.Cell(0, 5, tr(latin(f)))
		pdf.Ln(5)
	}

	if doc.Notes != "" {
		pdf.Ln(4)
		section(pdf, "Notes")
		pdf.MultiCell(0, 6, tr(doc.Notes), "", "L", false)
	}

	return pdf.Output(w)
}

// The core fonts are cp1252; spell out the glyphs it lacks.
var latinReplacer = strings.NewReplacer("√", "sqrt")

func latin(s string) string {
	return latinReplacer.Replace(s)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func inputRows(in porthole.Input) [][2]string {
	g, m, k := in.Geometry, in.Material, in.KFactors
	f := func(x float64) string { return fmt.Sprintf("%.3f", x) }
	return [][2]string{
		{"Pressure p (bar)", f(g.PressureBar)},
		{"Bore D (mm)", f(g.BoreMM)},
		{"Tube outer dia Do (mm)", f(g.OuterDiaMM)},
		{"Rod dia d (mm)", f(g.RodDiaMM)},
		{"Port hole dia dh (mm)", f(g.PortHoleDiaMM)},
		{"Ultimate tensile strength Sut (kgf/mm²)", f(m.SutKgfMM2)},
		{"Yield strength Syt (kgf/mm²)", f(m.SytKgfMM2)},
		{"ka", f(k.Ka)}, {"kb", f(k.Kb)}, {"kc", f(k.Kc)}, {"kd", f(k.Kd)},
		{"ke", f(k.Ke)}, {"kh", f(k.Kh)}, {"kl", f(k.Kl)}, {"km", f(k.Km)},
	}
}
