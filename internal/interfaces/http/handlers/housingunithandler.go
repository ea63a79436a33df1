package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boaz/internal/application/housing/dto"
	"boaz/internal/application/housing/usecases"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
	"boaz/internal/shared/utils"
)

type HousingUnitHandler struct {
	createUC    *usecases.CreateHousingUnitUseCase
	getUC       *usecases.GetHousingUnitUseCase
	listUC      *usecases.ListHousingUnitsUseCase
	updateUC    *usecases.UpdateHousingUnitUseCase
	deleteUC    *usecases.DeleteHousingUnitUseCase
	setStatusUC *usecases.SetHousingUnitStatusUseCase
	logger      logger.Interface
}

func NewHousingUnitHandler(
	createUC *usecases.CreateHousingUnitUseCase,
	getUC *usecases.GetHousingUnitUseCase,
	listUC *usecases.ListHousingUnitsUseCase,
	updateUC *usecases.UpdateHousingUnitUseCase,
	deleteUC *usecases.DeleteHousingUnitUseCase,
	setStatusUC *usecases.SetHousingUnitStatusUseCase,
	logger logger.Interface,
) *HousingUnitHandler {
	return &HousingUnitHandler{
		createUC:    createUC,
		getUC:       getUC,
		listUC:      listUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		setStatusUC: setStatusUC,
		logger:      logger,
	}
}

type createHousingUnitRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address" binding:"required"`
	City        string  `json:"city" binding:"required"`
	PostalCode  string  `json:"postal_code" binding:"required"`
	Country     string  `json:"country"`
	Rent        float64 `json:"rent" binding:"required"`
	Charges     float64 `json:"charges"`
}

func (h *HousingUnitHandler) Create(c *gin.Context) {
	var req createHousingUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	unit, err := h.createUC.Execute(c.Request.Context(), usecases.CreateHousingUnitCommand{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		Rent:        req.Rent,
		Charges:     req.Charges,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.FromEntity(unit), "Housing unit created successfully")
}

func (h *HousingUnitHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	unit, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromEntity(unit))
}

func (h *HousingUnitHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListHousingUnitsQuery{
		Status:   c.Query("status"),
		City:     c.Query("city"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.FromEntities(result.Units), result.Total, page, pageSize)
}

type updateHousingUnitRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	PostalCode  *string  `json:"postal_code"`
	Country     *string  `json:"country"`
	Rent        *float64 `json:"rent"`
	Charges     *float64 `json:"charges"`
}

func (h *HousingUnitHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateHousingUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	unit, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateHousingUnitCommand{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		Rent:        req.Rent,
		Charges:     req.Charges,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Housing unit updated successfully", dto.FromEntity(unit))
}

func (h *HousingUnitHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

type setUnitStatusRequest struct {
	Status string `json:"status" binding:"required,unit_status"`
}

func (h *HousingUnitHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req setUnitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	unit, err := h.setStatusUC.Execute(c.Request.Context(), usecases.SetHousingUnitStatusCommand{
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Housing unit status updated", dto.FromEntity(unit))
}

// pathID parses the :id path parameter, writing the error response itself
// when the value is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid id: "+raw))
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	return page, pageSize
}
