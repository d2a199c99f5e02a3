// internal/api/handlers/region_handler.go
package handlers

import (
	"context"
	"net/http"

	"contingent-booking-api-server/internal/api/response"
	"contingent-booking-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type RegionService interface {
	AllProvinces(ctx context.Context) ([]models.Province, error)
	ProvinceByID(ctx context.Context, id string) (*models.Province, error)
	RegenciesByProvinceID(ctx context.Context, id string) ([]models.Regency, error)
}

type CoordinatorService interface {
	All(ctx context.Context) ([]models.RegionCoordinator, error)
	ByName(ctx context.Context, q string) ([]models.RegionCoordinator, error)
	ByPhone(ctx context.Context, q string) ([]models.RegionCoordinator, error)
}

type MasterRegionHandler struct {
	Regions RegionService
}

func (h *MasterRegionHandler) AllProvinces(c *gin.Context) {
	provinces, err := h.Regions.AllProvinces(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Provinces retrieved", provinces)
}

func (h *MasterRegionHandler) ProvinceByID(c *gin.Context) {
	province, err := h.Regions.ProvinceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Province retrieved", province)
}

func (h *MasterRegionHandler) RegenciesByProvinceID(c *gin.Context) {
	regencies, err := h.Regions.RegenciesByProvinceID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Regencies retrieved", regencies)
}

type RegionCoordinatorHandler struct {
	Coordinators CoordinatorService
}

func (h *RegionCoordinatorHandler) All(c *gin.Context) {
	coordinators, err := h.Coordinators.All(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Region coordinators retrieved", coordinators)
}

// ByName handles GET /region-coordinator/by-name?q=.
func (h *RegionCoordinatorHandler) ByName(c *gin.Context) {
	coordinators, err := h.Coordinators.ByName(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Region coordinators retrieved", coordinators)
}

// ByPhone handles GET /region-coordinator/by-phone?q=.
func (h *RegionCoordinatorHandler) ByPhone(c *gin.Context) {
	coordinators, err := h.Coordinators.ByPhone(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Region coordinators retrieved", coordinators)
}
