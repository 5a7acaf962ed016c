package employee

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
	planningcore "mybtp.com/mybtp/planning/core"
	"mybtp.com/mybtp/utils"
	"mybtp.com/mybtp/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.GET("/users", endpoint.List)
	r.GET("/users/:id", endpoint.Get)
	r.POST("/users", endpoint.Create)
	r.PUT("/users/:id", endpoint.Update)
	r.PUT("/users/:id/rate", endpoint.UpdateRate)
}

func (ep *Endpoint) List(c *gin.Context) {
	db := ep.base.GetDB(c)

	var employees []core.Employee
	query := db.Preload("Equipe").Order("last_name, first_name")
	if equipe := c.Query("equipe"); equipe != "" {
		query = query.Where("equipe_id = ?", equipe)
	}
	if c.Query("actif") != "" {
		actif := c.Query("actif") == "true"
		query = query.Where("actif = ?", actif)
	}
	if err := query.Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dtos := utils.Map(employees, func(e core.Employee) EmployeeDTO { return toEmployeeDTO(&e) })
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

func (ep *Endpoint) Get(c *gin.Context) {
	id, ok := ep.employeeID(c)
	if !ok {
		return
	}

	db := ep.base.GetDB(c)
	var employee core.Employee
	if err := db.Preload("Equipe").First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toEmployeeDTO(&employee)))
}

func (ep *Endpoint) Create(c *gin.Context) {
	ep.save(c, nil)
}

func (ep *Endpoint) Update(c *gin.Context) {
	id, ok := ep.employeeID(c)
	if !ok {
		return
	}
	ep.save(c, &id)
}

func (ep *Endpoint) save(c *gin.Context, employeeID *uint) {
	var dto EmployeeSaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	employee := core.Employee{
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Telephone: dto.Telephone,
		UserType:  dto.UserType,
		CoutH:     dto.CoutH,
		CoutJ:     dto.CoutJ,
		EquipeId:  dto.Equipe,
		Actif:     true,
	}
	if employee.UserType == "" {
		employee.UserType = core.UserTypeEmploye
	}
	if dto.Actif != nil {
		employee.Actif = *dto.Actif
	}
	if employeeID != nil {
		employee.EmployeeId = *employeeID
	}
	if dto.Competences != nil {
		competences, err := json.Marshal(dto.Competences)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid competences"))
			return
		}
		employee.Competences = competences
	}
	if dto.PermisDeConduire != nil {
		permis, err := json.Marshal(dto.PermisDeConduire)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid permis_de_conduire"))
			return
		}
		employee.PermisDeConduire = permis
	}

	db := ep.base.GetDB(c)
	verrs, err := core.SaveEmployee(db, &employee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if verrs.HasErrors() {
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	status := http.StatusOK
	if employeeID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, common.NewSuccessResponse(toEmployeeDTO(&employee)))
}

// UpdateRate changes the hourly rate and recomputes every planning
// slot and chantier budget that depends on it.
func (ep *Endpoint) UpdateRate(c *gin.Context) {
	id, ok := ep.employeeID(c)
	if !ok {
		return
	}

	var dto RateUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	if dto.CoutH != nil && dto.CoutH.IsNegative() {
		verrs := core.ValidationErrors{}
		verrs.Add("cout_h", "Le coût horaire ne peut pas être négatif")
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	db := ep.base.GetDB(c)
	if err := planningcore.UpdateEmployeeHourlyRate(db, id, dto.CoutH); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	employee, err := core.FindEmployeeByID(db, id)
	if err != nil || employee == nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to reload user"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(toEmployeeDTO(employee)))
}

func (ep *Endpoint) employeeID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return uint(id), true
}
