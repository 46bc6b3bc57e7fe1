package extract

// Positional field offsets per record type, counted with the
// classification code at offset 0 (bracketing delimiters already
// stripped by the tokenizer). One fixed layout version is supported:
// EFD ICMS/IPI leiaute 017 and EFD Contribuições leiaute 006 column
// order. A future multi-version build keys a dispatch table on
// Document.Header.Version; call sites only ever use these names.

// E110: ICMS period assessment (singleton).
const (
	e110TotalDebits  = 1  // VL_TOT_DEBITOS
	e110TotalCredits = 5  // VL_TOT_CREDITOS
	e110Balance      = 10 // VL_SLD_APURADO
	e110AmountDue    = 12 // VL_ICMS_RECOLHER
)

// E520: IPI period assessment (singleton).
const (
	e520TotalDebits  = 2 // VL_DEB_IPI
	e520TotalCredits = 3 // VL_CRED_IPI
	e520Balance      = 7 // VL_SD_IPI
)

// M200 (PIS) / M600 (COFINS): contribution consolidation (singletons,
// identical shape).
const (
	mConsTotalAssessed = 1  // VL_TOT_CONT_NC_PER
	mConsCreditsUsed   = 2  // VL_TOT_CRED_DESC
	mConsAmountDue     = 12 // VL_TOT_CONT_REC
)

// M210 (PIS) / M610 (COFINS): per-rate assessment detail (mapped all).
// Leiaute 006 inserted the base-adjustment trio at offsets 4-6, which
// pushed ALIQ to 7 and VL_CONT_APUR to 10.
const (
	mRateContributionCode = 1  // COD_CONT
	mRateGrossRevenue     = 2  // VL_REC_BRT
	mRateBase             = 3  // VL_BC_CONT
	mRateRate             = 7  // ALIQ
	mRateAssessed         = 10 // VL_CONT_APUR
)

// 0110: PIS/COFINS assessment regime (singleton).
const (
	regimeCode = 1 // COD_INC_TRIB
)

// C100: fiscal document (invoice) header (mapped all).
const (
	c100Direction = 1  // IND_OPER: 0 inbound, 1 outbound
	c100Number    = 7  // NUM_DOC
	c100IssueDate = 9  // DT_DOC
	c100Total     = 11 // VL_DOC
	c100ICMSBase  = 20 // VL_BC_ICMS (after VL_MERC 15, IND_FRT 16, VL_FRT 17, VL_SEG 18, VL_OUT_DA 19)
	c100ICMS      = 21 // VL_ICMS
	c100IPI       = 24 // VL_IPI (VL_BC_ICMS_ST 22 and VL_ICMS_ST 23 sit between)
)
