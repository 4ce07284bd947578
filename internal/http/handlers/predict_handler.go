// README: Prediction handler; fills soil-type presets, validates and returns the bilingual recommendation.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agriadvisor/internal/modules/recommend"
	"agriadvisor/internal/service"
)

type PredictHandler struct {
	advisor *service.Advisor
}

func NewPredictHandler(advisor *service.Advisor) *PredictHandler {
	return &PredictHandler{advisor: advisor}
}

// predictReq keeps the dataset column names the web form already sends.
// Pointers tell an absent value apart from zero.
type predictReq struct {
	N        *float64 `json:"Soil_N"`
	P        *float64 `json:"Soil_P"`
	K        *float64 `json:"Soil_K"`
	PH       *float64 `json:"Soil_pH"`
	Moisture *float64 `json:"Soil_Moisture"`
	Crop     string   `json:"Crop_Name"`
	Season   string   `json:"Season"`
	LandArea *float64 `json:"landArea"`
	SoilType string   `json:"soilType"`
}

// Predict handles POST /predict.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req predictReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	if st := strings.TrimSpace(req.SoilType); st != "" {
		preset, ok := h.advisor.Engine().Knowledge.SoilPreset(st)
		if !ok {
			writeError(c, http.StatusBadRequest, "unknown soilType "+st)
			return
		}
		fill(&req.N, preset.N)
		fill(&req.P, preset.P)
		fill(&req.K, preset.K)
		fill(&req.PH, preset.PH)
		fill(&req.Moisture, preset.Moisture)
	}

	required := []struct {
		name string
		v    *float64
	}{
		{"Soil_N", req.N}, {"Soil_P", req.P}, {"Soil_K", req.K}, {"Soil_pH", req.PH}, {"Soil_Moisture", req.Moisture},
	}
	for _, f := range required {
		if f.v == nil {
			writeError(c, http.StatusBadRequest, "missing "+f.name)
			return
		}
	}

	reading := recommend.SoilReading{
		N:        *req.N,
		P:        *req.P,
		K:        *req.K,
		PH:       *req.PH,
		Moisture: *req.Moisture,
		Crop:     strings.TrimSpace(req.Crop),
		Season:   strings.TrimSpace(req.Season),
		LandArea: recommend.DefaultLandArea,
	}
	if req.LandArea != nil {
		reading.LandArea = *req.LandArea
	}

	rec, err := h.advisor.Recommend(c.Request.Context(), reading)
	if err != nil {
		writeAdvisorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

// Crops handles GET /api/crops: curated crop keys with display names.
func (h *PredictHandler) Crops(c *gin.Context) {
	kb := h.advisor.Engine().Knowledge
	crops := make([]gin.H, 0)
	for _, key := range kb.Crops() {
		crops = append(crops, gin.H{"crop": key, "name": kb.CropName(key)})
	}
	writeJSON(c, http.StatusOK, gin.H{"crops": crops})
}

func fill(dst **float64, v float64) {
	if *dst == nil {
		*dst = &v
	}
}
