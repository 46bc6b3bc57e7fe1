// Package sped parses SPED EFD flat files (EFD ICMS/IPI and EFD
// Contribuições): pipe-delimited records grouped into blocks, with a
// single all-zero header record per file.
package sped

// HeaderCode is the classification code of the one header record
// expected per SPED file.
const HeaderCode = "0000"

// FieldDelimiter separates fields within a record line. SPED lines are
// normally bracketed by a leading and a trailing delimiter.
const FieldDelimiter = "|"

// Record is one parsed line: an ordered sequence of string fields whose
// first field is the record's classification code (e.g. "C100", "E110").
type Record []string

// Code returns the record's classification code, or "" for an empty record.
func (r Record) Code() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Field returns the field at index i, or "" when i is out of range.
// Extraction code indexes records positionally and must never panic on
// short records.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// BlockCode returns the single-character block prefix of the record's
// classification code ("C100" -> "C").
func (r Record) BlockCode() string {
	code := r.Code()
	if code == "" {
		return ""
	}
	return code[:1]
}

// DocumentKind classifies a SPED file by the purpose code embedded in
// its header record.
type DocumentKind int

const (
	// KindUnknown marks files with no header or an unrecognized purpose code.
	KindUnknown DocumentKind = iota
	// KindFiscal is an EFD ICMS/IPI bookkeeping file.
	KindFiscal
	// KindContributions is an EFD Contribuições (PIS/COFINS) file.
	KindContributions
)

func (k DocumentKind) String() string {
	switch k {
	case KindFiscal:
		return "fiscal"
	case KindContributions:
		return "contributions"
	default:
		return "unknown"
	}
}

// Header holds the fields of the all-zero sentinel record. Offsets are
// format-defined; dates are normalized to YYYY-MM-DD. A file without a
// header record yields a zero Header.
type Header struct {
	Version               string `json:"version"`
	Purpose               string `json:"purpose"`
	PeriodStart           string `json:"periodStart"`
	PeriodEnd             string `json:"periodEnd"`
	LegalName             string `json:"legalName"`
	CNPJ                  string `json:"cnpj"`
	State                 string `json:"state"`
	StateRegistration     string `json:"stateRegistration"`
	MunicipalityCode      string `json:"municipalityCode"`
	MunicipalRegistration string `json:"municipalRegistration"`
}

// Document is the parse result for one SPED file: the header plus all
// records grouped by block prefix. Insertion order within a block is
// preserved; extraction relies on first-match-wins for singleton
// records.
type Document struct {
	Header Header              `json:"header"`
	Blocks map[string][]Record `json:"blocks"`
}

// Block returns the records of the named block, or nil when absent.
func (d *Document) Block(code string) []Record {
	if d == nil || d.Blocks == nil {
		return nil
	}
	return d.Blocks[code]
}

// FindFirst returns the first record of the given classification code,
// searching its block in insertion order.
func (d *Document) FindFirst(code string) (Record, bool) {
	if code == "" {
		return nil, false
	}
	for _, rec := range d.Block(code[:1]) {
		if rec.Code() == code {
			return rec, true
		}
	}
	return nil, false
}

// FindAll returns every record of the given classification code in
// insertion order.
func (d *Document) FindAll(code string) []Record {
	if code == "" {
		return nil
	}
	var out []Record
	for _, rec := range d.Block(code[:1]) {
		if rec.Code() == code {
			out = append(out, rec)
		}
	}
	return out
}
