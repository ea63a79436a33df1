package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"boaz/internal/application/subscription/dto"
	"boaz/internal/application/subscription/usecases"
	"boaz/internal/domain/subscription"
	"boaz/internal/shared/constants"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
	"boaz/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC       *usecases.CreateSubscriptionUseCase
	getUC          *usecases.GetSubscriptionUseCase
	listUC         *usecases.ListSubscriptionsUseCase
	updateUC       *usecases.UpdateSubscriptionUseCase
	deleteUC       *usecases.DeleteSubscriptionUseCase
	markPaidUC     *usecases.MarkPaidUseCase
	deliverUC      *usecases.MarkDeliveredUseCase
	overrideUC     *usecases.OverrideStatusUseCase
	closeExpiredUC *usecases.CloseExpiredSubscriptionsUseCase
	proformaUC     *usecases.GenerateProformaUseCase
	logger         logger.Interface
}

func NewSubscriptionHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	getUC *usecases.GetSubscriptionUseCase,
	listUC *usecases.ListSubscriptionsUseCase,
	updateUC *usecases.UpdateSubscriptionUseCase,
	deleteUC *usecases.DeleteSubscriptionUseCase,
	markPaidUC *usecases.MarkPaidUseCase,
	deliverUC *usecases.MarkDeliveredUseCase,
	overrideUC *usecases.OverrideStatusUseCase,
	closeExpiredUC *usecases.CloseExpiredSubscriptionsUseCase,
	proformaUC *usecases.GenerateProformaUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:       createUC,
		getUC:          getUC,
		listUC:         listUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		markPaidUC:     markPaidUC,
		deliverUC:      deliverUC,
		overrideUC:     overrideUC,
		closeExpiredUC: closeExpiredUC,
		proformaUC:     proformaUC,
		logger:         logger,
	}
}

type tenantRequest struct {
	LastName           string     `json:"last_name" binding:"required"`
	FirstName          string     `json:"first_name" binding:"required"`
	Email              string     `json:"email" binding:"required"`
	BirthDate          *time.Time `json:"birth_date"`
	BirthCity          string     `json:"birth_city"`
	BirthCountry       string     `json:"birth_country"`
	Nationality        string     `json:"nationality"`
	DestinationCountry string     `json:"destination_country"`
	ArrivalDate        *time.Time `json:"arrival_date"`
}

type academicRequest struct {
	School           string `json:"school" binding:"required"`
	Program          string `json:"program" binding:"required"`
	SchoolCountry    string `json:"school_country"`
	SchoolCity       string `json:"school_city"`
	SchoolPostalCode string `json:"school_postal_code"`
	SchoolAddress    string `json:"school_address"`
}

type createSubscriptionRequest struct {
	Tenant         tenantRequest   `json:"tenant" binding:"required"`
	Academic       academicRequest `json:"academic" binding:"required"`
	HousingUnitID  uint            `json:"housing_unit_id" binding:"required"`
	MoveInDate     *time.Time      `json:"move_in_date"`
	DurationMonths int             `json:"duration_months"`
	ServiceIDs     []int           `json:"service_ids"`
}

func (r *tenantRequest) toDomain() subscription.Tenant {
	return subscription.Tenant{
		LastName:           r.LastName,
		FirstName:          r.FirstName,
		Email:              r.Email,
		BirthDate:          r.BirthDate,
		BirthCity:          r.BirthCity,
		BirthCountry:       r.BirthCountry,
		Nationality:        r.Nationality,
		DestinationCountry: r.DestinationCountry,
		ArrivalDate:        r.ArrivalDate,
	}
}

func (r *academicRequest) toDomain() subscription.Academic {
	return subscription.Academic{
		School:           r.School,
		Program:          r.Program,
		SchoolCountry:    r.SchoolCountry,
		SchoolCity:       r.SchoolCity,
		SchoolPostalCode: r.SchoolPostalCode,
		SchoolAddress:    r.SchoolAddress,
	}
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	var createdBy *uint
	if userID := c.GetUint(constants.ContextKeyUserID); userID != 0 {
		createdBy = &userID
	}

	sub, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		Tenant:          req.Tenant.toDomain(),
		Academic:        req.Academic.toDomain(),
		HousingUnitID:   req.HousingUnitID,
		MoveInDate:      req.MoveInDate,
		DurationMonths:  req.DurationMonths,
		ServiceIDs:      req.ServiceIDs,
		CreatedByUserID: createdBy,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.FromEntity(sub), "Subscription created successfully")
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromEntity(sub))
}

func (h *SubscriptionHandler) GetByReference(c *gin.Context) {
	sub, err := h.getUC.ExecuteByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromEntity(sub))
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	var housingUnitID uint
	if raw := c.Query("housing_unit_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid housing_unit_id: "+raw))
			return
		}
		housingUnitID = uint(parsed)
	}

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListSubscriptionsQuery{
		Status:        c.Query("status"),
		HousingUnitID: housingUnitID,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.FromEntities(result.Subscriptions), result.Total, page, pageSize)
}

type updateSubscriptionRequest struct {
	Tenant         *tenantRequest   `json:"tenant"`
	Academic       *academicRequest `json:"academic"`
	HousingUnitID  *uint            `json:"housing_unit_id"`
	MoveInDate     *time.Time       `json:"move_in_date"`
	DurationMonths *int             `json:"duration_months"`
	ServiceIDs     []int            `json:"service_ids"`
}

func (h *SubscriptionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.UpdateSubscriptionCommand{
		ID:             id,
		HousingUnitID:  req.HousingUnitID,
		MoveInDate:     req.MoveInDate,
		DurationMonths: req.DurationMonths,
		ServiceIDs:     req.ServiceIDs,
	}
	if req.Tenant != nil {
		tenant := req.Tenant.toDomain()
		cmd.Tenant = &tenant
	}
	if req.Academic != nil {
		academic := req.Academic.toDomain()
		cmd.Academic = &academic
	}

	sub, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription updated successfully", dto.FromEntity(sub))
}

func (h *SubscriptionHandler) Delete(c *gin.Context) {
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

type markPaidRequest struct {
	PaymentProofPath *string `json:"payment_proof_path"`
}

func (h *SubscriptionHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req markPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	sub, err := h.markPaidUC.Execute(c.Request.Context(), usecases.MarkPaidCommand{
		ID:               id,
		PaymentProofPath: req.PaymentProofPath,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment recorded", dto.FromEntity(sub))
}

func (h *SubscriptionHandler) MarkDelivered(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := h.deliverUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription delivered", dto.FromEntity(sub))
}

type overrideStatusRequest struct {
	Status string `json:"status" binding:"required,subscription_status"`
	Reason string `json:"reason" binding:"required"`
}

func (h *SubscriptionHandler) OverrideStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req overrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, appErrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	sub, err := h.overrideUC.Execute(c.Request.Context(), usecases.OverrideStatusCommand{
		ID:         id,
		Status:     req.Status,
		Reason:     req.Reason,
		ActorID:    c.GetUint(constants.ContextKeyUserID),
		ActorEmail: c.GetString(constants.ContextKeyUserEmail),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription status overridden", dto.FromEntity(sub))
}

func (h *SubscriptionHandler) CloseExpired(c *gin.Context) {
	result, err := h.closeExpiredUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expired subscriptions closed", gin.H{
		"closed":      result.Closed,
		"freed_units": result.FreedUnits,
		"failed":      result.Failed,
	})
}

func (h *SubscriptionHandler) GenerateProforma(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	path, err := h.proformaUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Proforma invoice generated", gin.H{
		"path": path,
	})
}
