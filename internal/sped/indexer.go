package sped

// Index builds a Document from tokenized records: the header object
// from the sentinel record plus every record appended to its block by
// classification-code prefix. Indexing is structural, not semantic: no
// record is dropped here even if short relative to its expected field
// count. Exactly one header record is expected; when absent the header
// fields stay empty but blocks are still populated. When duplicated,
// the first wins.
func Index(records []Record) *Document {
	doc := &Document{Blocks: make(map[string][]Record)}

	headerSeen := false
	for _, rec := range records {
		if !headerSeen && rec.Code() == HeaderCode {
			doc.Header = parseHeader(rec)
			headerSeen = true
		}
		if bc := rec.BlockCode(); bc != "" {
			doc.Blocks[bc] = append(doc.Blocks[bc], rec)
		}
	}
	return doc
}

func parseHeader(rec Record) Header {
	return Header{
		Version:               rec.Field(hdrVersion),
		Purpose:               rec.Field(hdrPurpose),
		PeriodStart:           ProcessDate(rec.Field(hdrPeriodStart)),
		PeriodEnd:             ProcessDate(rec.Field(hdrPeriodEnd)),
		LegalName:             rec.Field(hdrLegalName),
		CNPJ:                  rec.Field(hdrCNPJ),
		State:                 rec.Field(hdrState),
		StateRegistration:     rec.Field(hdrStateRegistration),
		MunicipalityCode:      rec.Field(hdrMunicipalityCode),
		MunicipalRegistration: rec.Field(hdrMunicipalRegistration),
	}
}
