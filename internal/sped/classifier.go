package sped

// Header record field offsets, counted after bracket stripping so the
// classification code sits at offset 0. The layout is format-defined;
// do not renumber. Note the published record layout places the state
// registration (IE) before the municipality code (COD_MUN), and that
// order is kept here even where summaries list the two the other way
// around.
const (
	hdrVersion               = 1
	hdrPurpose               = 2
	hdrPeriodStart           = 3
	hdrPeriodEnd             = 4
	hdrLegalName             = 5
	hdrCNPJ                  = 6
	hdrState                 = 7
	hdrStateRegistration     = 8
	hdrMunicipalityCode      = 9
	hdrMunicipalRegistration = 10
)

// Classify determines the document family from the first record's
// purpose code. It is a total function: any shape mismatch (no records,
// first record not the header sentinel, purpose field absent or
// unrecognized) yields KindUnknown, never an error.
func Classify(records []Record) DocumentKind {
	if len(records) == 0 {
		return KindUnknown
	}
	first := records[0]
	if first.Code() != HeaderCode {
		return KindUnknown
	}

	switch first.Field(hdrPurpose) {
	case "0", "1":
		return KindFiscal
	case "10", "11":
		return KindContributions
	default:
		return KindUnknown
	}
}
