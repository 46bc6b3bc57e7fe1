package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brfiscal/spedsim/internal/domain"
	"github.com/brfiscal/spedsim/internal/extract"
	"github.com/brfiscal/spedsim/internal/simulation"
	"github.com/brfiscal/spedsim/internal/sped"
	"github.com/brfiscal/spedsim/internal/validation"
)

const (
	maxUploadFiles = 2
	maxFileSize    = 32 << 20 // 32 MiB per SPED file
)

// Handler holds the HTTP handlers for the analysis API.
type Handler struct {
	model simulation.ImpactModel
}

// NewHandler creates a handler backed by the reference impact model.
func NewHandler() *Handler {
	return &Handler{model: simulation.NewDualSystemModel()}
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// FileResult is the per-file outcome of an analyze call. Each uploaded
// file is processed independently; one failing does not fail the run.
type FileResult struct {
	Name  string                       `json:"arquivo"`
	Kind  string                       `json:"tipo"`
	Error string                       `json:"erro,omitempty"`
	Data  *extract.ExtractedFiscalData `json:"dados,omitempty"`
}

// AnalyzeResponse is the JSON response from the analyze endpoint.
type AnalyzeResponse struct {
	ID         string             `json:"id"`
	Files      []FileResult       `json:"arquivos"`
	Validation *validation.Report `json:"validacao,omitempty"`
}

// Analyze accepts up to two SPED files as multipart form data, parses
// and extracts each one best-effort, consolidates the extractions and
// scores them.
// POST /api/v1/analyze
func (h *Handler) Analyze(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}

	files := form.File["arquivos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at most two files accepted"})
		return
	}

	resp := AnalyzeResponse{ID: uuid.NewString()}
	var extracted []*extract.ExtractedFiscalData

	for _, fh := range files {
		result := h.processFile(fh)
		if result.Data != nil {
			extracted = append(extracted, result.Data)
		}
		resp.Files = append(resp.Files, result)
	}

	if len(extracted) > 0 {
		nested := extract.Consolidate(extracted...)
		resp.Validation = validation.Validate(nested)
	}

	c.JSON(http.StatusOK, resp)
}

// processFile runs the parse/classify/extract pipeline on one upload.
func (h *Handler) processFile(fh *multipart.FileHeader) FileResult {
	result := FileResult{Name: fh.Filename}

	if fh.Size > maxFileSize {
		result.Error = "file too large"
		return result
	}

	f, err := fh.Open()
	if err != nil {
		result.Error = "failed to open upload"
		return result
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxFileSize))
	if err != nil {
		result.Error = "failed to read upload"
		return result
	}

	records := sped.Tokenize(string(content))
	kind := sped.Classify(records)
	result.Kind = kind.String()
	if kind == sped.KindUnknown {
		result.Error = "unrecognized document layout"
		return result
	}

	doc := sped.Index(records)
	result.Data = extract.Extract(doc, kind)
	return result
}

// OptimizeRequest carries the raw simulation payload. Company and
// strategy sections arrive untyped and are decoded at this boundary.
type OptimizeRequest struct {
	Company    map[string]any           `json:"empresa"`
	Strategies map[string]any           `json:"estrategias"`
	Year       int                      `json:"ano"`
	Sector     *simulation.SectorParams `json:"setor"`
}

// OptimizeResponse is the JSON response from the optimize endpoint.
type OptimizeResponse struct {
	ID         string                        `json:"id"`
	Baseline   domain.BaselineImpact         `json:"baseline"`
	Mitigation *simulation.MitigationOutcome `json:"mitigacao"`
}

// Optimize computes the baseline impact for the requested year and
// searches for the optimal mitigation combination.
// POST /api/v1/optimize
func (h *Handler) Optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Company == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empresa section is required"})
		return
	}

	flat, err := domain.ParseFlatRecord(req.Company)
	if err != nil {
		h.decodeError(c, err)
		return
	}
	cfg := &domain.StrategyConfig{}
	if req.Strategies != nil {
		cfg, err = domain.ParseStrategyConfig(req.Strategies)
		if err != nil {
			h.decodeError(c, err)
			return
		}
	}

	year := req.Year
	if year == 0 {
		year = 2033
	}

	session := simulation.NewSession(h.model)
	baseline := session.RunBaseline(*flat, year, req.Sector)

	outcome, err := session.RunMitigation(*flat, *cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, OptimizeResponse{
		ID:         uuid.NewString(),
		Baseline:   baseline,
		Mitigation: outcome,
	})
}

func (h *Handler) decodeError(c *gin.Context, err error) {
	var structural *domain.StructuralError
	if errors.As(err, &structural) {
		c.JSON(http.StatusBadRequest, gin.H{"error": structural.Error(), "campo": structural.Field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
