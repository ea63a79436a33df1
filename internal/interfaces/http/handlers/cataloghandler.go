package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boaz/internal/domain/catalog"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/utils"
)

// CatalogHandler exposes the read-only services catalog and the
// organisation details used on generated documents.
type CatalogHandler struct {
	catalog catalog.Catalog
}

func NewCatalogHandler(svcCatalog catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: svcCatalog}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") != "false"

	services, err := h.catalog.ListServices(activeOnly)
	if err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewInternalError("failed to list services"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", services)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	raw := c.Param("id")

	if id, err := strconv.Atoi(raw); err == nil {
		svc, err := h.catalog.GetService(id)
		if err != nil {
			utils.ErrorResponseWithError(c, appErrors.NewNotFoundError("service not found"))
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "", svc)
		return
	}

	// Non-numeric identifiers are treated as slugs.
	svc, err := h.catalog.GetServiceBySlug(raw)
	if err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewNotFoundError("service not found"))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", svc)
}

func (h *CatalogHandler) GetOrganisation(c *gin.Context) {
	org, err := h.catalog.Organisation()
	if err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewNotFoundError("organisation details not configured"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", org)
}
