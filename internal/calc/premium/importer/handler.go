package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"Porthole/internal/calc/porthole"
	"Porthole/internal/calc/premium/batch"
	"Porthole/internal/present"

	"github.com/xuri/excelize/v2"
)

const MaxUploadSize = 10 << 20 // 10MB

// Columns is the expected header of an import sheet, in order.
var Columns = []string{"p", "D", "Do", "d", "dh", "Sut", "Syt", "ka", "kb", "kc", "kd", "ke", "kh", "kl", "km"}

type Handler struct{}

type ImportResult struct {
	Count   int               `json:"count"`
	Skipped []int             `json:"skipped_rows,omitempty"`
	Inputs  []porthole.Input  `json:"inputs"`
	Results []porthole.Result `json:"results"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := Read(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Read parses the first sheet of an XLSX workbook and evaluates each row.
// Row numbers in Skipped are 1-based sheet rows.
func Read(rd io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return ImportResult{}, fmt.Errorf("invalid file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return ImportResult{}, fmt.Errorf("empty sheet")
	}

	out := ImportResult{}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		input, err := ParseRow(rows[i])
		if err != nil {
			out.Skipped = append(out.Skipped, i+1)
			continue
		}
		out.Inputs = append(out.Inputs, input)
		out.Results = append(out.Results, porthole.Calculate(input))
	}
	out.Count = len(out.Results)
	return out, nil
}

// ParseRow maps one sheet row onto an Input. Missing or blank cells keep
// the default value.
func ParseRow(row []string) (porthole.Input, error) {
	in := porthole.Defaults()
	g, m, k := &in.Geometry, &in.Material, &in.KFactors
	fields := []*float64{
		&g.PressureBar, &g.BoreMM, &g.OuterDiaMM, &g.RodDiaMM, &g.PortHoleDiaMM,
		&m.SutKgfMM2, &m.SytKgfMM2,
		&k.Ka, &k.Kb, &k.Kc, &k.Kd, &k.Ke, &k.Kh, &k.Kl, &k.Km,
	}
	for i, cell := range row {
		if i >= len(fields) {
			break
		}
		if strings.TrimSpace(cell) == "" {
			continue
		}
		v, err := toFloat(cell)
		if err != nil {
			return porthole.Input{}, fmt.Errorf("column %s: %w", Columns[i], err)
		}
		*fields[i] = v
	}
	return in, nil
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input batch.BatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Items) == 0 {
		http.Error(w, "No items", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"porthole.xlsx\"")
	if err := WriteWorkbook(w, input.Items); err != nil {
		log.Printf("export: %v", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}

var resultColumns = []string{"t", "Sh", "Sl", "Sc", "Sa", "Sm", "Se", "Sp", "Sq", "B", "A", "Static FOS", "Fatigue FOS", "Life N"}

// WriteWorkbook writes one row per case: the inputs in import column order
// followed by every derived quantity. Undefined quantities are written as the
// placeholder glyph.
func WriteWorkbook(w io.Writer, items []porthole.Input) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cases"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(Columns)+len(resultColumns))
	for _, c := range append(append([]string{}, Columns...), resultColumns...) {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, in := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := rowValues(in, porthole.Calculate(in))
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func rowValues(in porthole.Input, res porthole.Result) []interface{} {
	g, m, k := in.Geometry, in.Material, in.KFactors
	row := []interface{}{
		g.PressureBar, g.BoreMM, g.OuterDiaMM, g.RodDiaMM, g.PortHoleDiaMM,
		m.SutKgfMM2, m.SytKgfMM2,
		k.Ka, k.Kb, k.Kc, k.Kd, k.Ke, k.Kh, k.Kl, k.Km,
	}
	for _, v := range []porthole.Value{res.ThicknessMM, res.Sh, res.Sl, res.Sc, res.Sa, res.Sm,
		res.Se, res.Sp, res.Sq, res.B, res.A, res.StaticFOS, res.FatigueFOS, res.LifeCycles} {
		if x, ok := v.Float(); ok {
			row = append(row, x)
			continue
		}
		row = append(row, present.Placeholder)
	}
	return row
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
}
