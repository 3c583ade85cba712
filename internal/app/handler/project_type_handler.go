package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dto"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ТИПЫ ПРОЕКТОВ ============

// projectTypeToDTO собирает ответ; имя объекта в MinIO заменяется
// на presigned-ссылку, по которой клиент может скачать изображение
func (h *APIHandler) projectTypeToDTO(pt *ds.ProjectType) dto.ProjectTypeResponse {
	resp := dto.ProjectTypeResponse{
		ID:           pt.ID,
		Key:          pt.Key,
		DisplayName:  pt.DisplayName,
		BaseRateIls:  pt.BaseRateIls,
		ImageURL:     pt.ImageURL,
		DisplayOrder: pt.DisplayOrder,
		IsActive:     pt.IsActive,
	}

	if h.Images != nil && pt.ImageURL != nil && *pt.ImageURL != "" {
		url, err := h.Images.GetImageURL(*pt.ImageURL)
		if err != nil {
			logrus.Warn("Error presigning image url: ", err)
		} else {
			resp.ImageURL = &url
		}
	}

	return resp
}

// GetProjectTypes возвращает все типы проектов (включая скрытые)
// @Summary Список типов проектов
// @Tags ProjectTypes
// @Produce json
// @Security AdminKey
// @Success 200 {object} dto.ProjectTypeListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/project-types [get]
func (h *APIHandler) GetProjectTypes(c *gin.Context) {
	projectTypes, err := h.Repository.GetProjectTypes(c.Request.Context())
	if err != nil {
		logrus.Error("Error getting project types: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения типов проектов")
		return
	}

	dtoTypes := make([]dto.ProjectTypeResponse, len(projectTypes))
	for i := range projectTypes {
		dtoTypes[i] = h.projectTypeToDTO(&projectTypes[i])
	}

	c.JSON(http.StatusOK, dto.ProjectTypeListResponse{
		ProjectTypes: dtoTypes,
		Total:        len(dtoTypes),
	})
}

// GetProjectType возвращает один тип проекта
// @Summary Тип проекта по ID
// @Tags ProjectTypes
// @Produce json
// @Security AdminKey
// @Param id path int true "ID типа проекта"
// @Success 200 {object} dto.ProjectTypeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/project-types/{id} [get]
func (h *APIHandler) GetProjectType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID типа проекта")
		return
	}

	projectType, err := h.Repository.GetProjectTypeByID(c.Request.Context(), id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Тип проекта не найден")
		return
	}

	c.JSON(http.StatusOK, h.projectTypeToDTO(projectType))
}

// CreateProjectType создает новый тип проекта
// @Summary Создание типа проекта
// @Tags ProjectTypes
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.CreateProjectTypeRequest true "Данные типа проекта"
// @Success 201 {object} dto.ProjectTypeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/project-types [post]
func (h *APIHandler) CreateProjectType(c *gin.Context) {
	var req dto.CreateProjectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	projectType := ds.ProjectType{
		Key:          req.Key,
		DisplayName:  req.DisplayName,
		BaseRateIls:  req.BaseRateIls,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}

	if err := h.Repository.CreateProjectType(c.Request.Context(), &projectType); err != nil {
		logrus.Error("Error creating project type: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания типа проекта")
		return
	}

	c.JSON(http.StatusCreated, h.projectTypeToDTO(&projectType))
}

// UpdateProjectType изменяет тип проекта
// @Summary Изменение типа проекта
// @Tags ProjectTypes
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path int true "ID типа проекта"
// @Param request body dto.UpdateProjectTypeRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/project-types/{id} [put]
func (h *APIHandler) UpdateProjectType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID типа проекта")
		return
	}

	var req dto.UpdateProjectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.BaseRateIls != nil {
		updates["base_rate_ils"] = *req.BaseRateIls
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Нет полей для изменения")
		return
	}

	err := h.Repository.UpdateProjectType(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Тип проекта не найден")
			return
		}
		logrus.Error("Error updating project type: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка изменения типа проекта")
		return
	}

	h.successResponse(c, http.StatusOK, "Тип проекта изменен", nil)
}

// DeleteProjectType скрывает тип проекта
// @Summary Удаление типа проекта
// @Tags ProjectTypes
// @Produce json
// @Security AdminKey
// @Param id path int true "ID типа проекта"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/project-types/{id} [delete]
func (h *APIHandler) DeleteProjectType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID типа проекта")
		return
	}

	err := h.Repository.DeleteProjectType(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Тип проекта не найден")
			return
		}
		logrus.Error("Error deleting project type: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления типа проекта")
		return
	}

	h.successResponse(c, http.StatusOK, "Тип проекта удален", nil)
}

// UploadProjectTypeImage загружает изображение типа проекта в MinIO
// @Summary Загрузка изображения
// @Tags ProjectTypes
// @Accept multipart/form-data
// @Produce json
// @Security AdminKey
// @Param id path int true "ID типа проекта"
// @Param image formData file true "Файл изображения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/project-types/{id}/image [post]
func (h *APIHandler) UploadProjectTypeImage(c *gin.Context) {
	if h.Images == nil {
		h.errorResponse(c, http.StatusServiceUnavailable, "Хранилище изображений недоступно")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID типа проекта")
		return
	}

	projectType, err := h.Repository.GetProjectTypeByID(c.Request.Context(), id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Тип проекта не найден")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл изображения не передан")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Не удалось прочитать файл")
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Не удалось прочитать файл")
		return
	}

	// Старое изображение удаляем, чтобы не копить мусор в бакете
	if projectType.ImageURL != nil && *projectType.ImageURL != "" {
		if exists, err := h.Images.ImageExists(*projectType.ImageURL); err != nil {
			logrus.Warn("Error checking old image: ", err)
		} else if exists {
			if err := h.Images.DeleteImage(*projectType.ImageURL); err != nil {
				logrus.Warn("Error deleting old image: ", err)
			}
		}
	}

	filename, err := h.Images.UploadImage(fileData, fileHeader.Filename)
	if err != nil {
		logrus.Error("Error uploading image: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки изображения")
		return
	}

	if err := h.Repository.UpdateProjectTypeImage(c.Request.Context(), id, filename); err != nil {
		logrus.Error("Error saving image url: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения изображения")
		return
	}

	h.successResponse(c, http.StatusOK, "Изображение загружено", gin.H{"image_url": filename})
}

// DeleteProjectTypeImage удаляет изображение типа проекта
// @Summary Удаление изображения
// @Tags ProjectTypes
// @Produce json
// @Security AdminKey
// @Param id path int true "ID типа проекта"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/project-types/{id}/image [delete]
func (h *APIHandler) DeleteProjectTypeImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID типа проекта")
		return
	}

	projectType, err := h.Repository.GetProjectTypeByID(c.Request.Context(), id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Тип проекта не найден")
		return
	}

	if projectType.ImageURL != nil && *projectType.ImageURL != "" && h.Images != nil {
		if err := h.Images.DeleteImage(*projectType.ImageURL); err != nil {
			logrus.Warn("Error deleting image from storage: ", err)
		}
	}

	if err := h.Repository.DeleteProjectTypeImage(c.Request.Context(), id); err != nil {
		logrus.Error("Error clearing image url: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления изображения")
		return
	}

	h.successResponse(c, http.StatusOK, "Изображение удалено", nil)
}

// ReorderProjectTypes меняет порядок отображения одним запросом
// @Summary Сортировка типов проектов
// @Tags ProjectTypes
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.ReorderRequest true "Новый порядок"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/project-types/reorder [put]
func (h *APIHandler) ReorderProjectTypes(c *gin.Context) {
	h.reorderHandler(c, h.Repository.ReorderProjectTypes)
}
