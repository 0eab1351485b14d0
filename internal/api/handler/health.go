package handler

import (
	"net/http"

	"github.com/hszk-dev/tubepulse/internal/analysis"
)

type HealthResponse struct {
	Status          string `json:"status"`
	HookRuleVersion string `json:"hookRuleVersion"`
}

func Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, HealthResponse{
		Status:          "ok",
		HookRuleVersion: analysis.HookRulesVersion,
	})
}
