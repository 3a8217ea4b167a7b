package handlers

import (
	"net/http"

	"github.com/rajeshboldtribe/boldserve/internal/dto"
	"github.com/rajeshboldtribe/boldserve/internal/middleware"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserHandler struct {
	users service.UserService
	log   *zap.Logger
}

func NewUserHandler(users service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт покупателя и сразу выдаёт токен на 24 часа
// @Tags users
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} dto.AuthResponse "Успешная регистрация"
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 409 {object} dto.ConflictErrorResponse "Email или телефон уже заняты"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	res, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthResponse(res))
}

// Login godoc
// @Summary Авторизация пользователя
// @Description Неизвестный email и неверный пароль дают одинаковый ответ
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.InvalidCredentialsErrorResponse "Неверный email или пароль"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse(res))
}

// Logout godoc
// @Summary Выход
// @Description Отзывает текущий токен (если Redis включён)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет токена"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)
	if err := h.users.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// VerifyEmail godoc
// @Summary Проверить, занят ли email
// @Tags users
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} dto.ExistsResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Нет email"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/users/verify [get]
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	exists, err := h.users.EmailExists(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// CheckUser godoc
// @Summary Найти пользователя по ID или email
// @Tags users
// @Produce json
// @Param id path string false "ID пользователя"
// @Param email query string false "Email"
// @Success 200 {object} dto.CheckUserResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Нет ни ID, ни email"
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найден"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/users/check-user/{id} [get]
// @Router /api/users/check-user [get]
func (h *UserHandler) CheckUser(c *gin.Context) {
	var id *uuid.UUID
	if raw := c.Param("id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, h.log, "invalid user id", err)
			return
		}
		id = &parsed
	}
	u, err := h.users.FindUser(c.Request.Context(), id, c.Query("email"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ur := dto.NewUserResponse(u)
	c.JSON(http.StatusOK, dto.CheckUserResponse{Exists: true, User: &ur})
}

// ListUsers godoc
// @Summary Все пользователи
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserList(users))
}

// VerifyToken godoc
// @Summary Проверить токен
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.VerifyTokenResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Недействительный токен"
// @Failure 404 {object} dto.NotFoundErrorResponse "Пользователь удалён"
// @Router /api/users/verify-token [get]
func (h *UserHandler) VerifyToken(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
		return
	}
	u, err := h.users.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.VerifyTokenResponse{Valid: true, ExpiresAt: claims.Exp, User: dto.NewUserResponse(u)})
}

// GetProfile godoc
// @Summary Профиль текущего пользователя
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет токена"
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найден"
// @Router /api/users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
		return
	}
	u, err := h.users.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// UpdateProfile godoc
// @Summary Обновить профиль
// @Description Меняются только email, address и bio
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.UpdateProfileRequest true "Поля профиля"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет токена"
// @Failure 409 {object} dto.ConflictErrorResponse "Email занят"
// @Router /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	u, err := h.users.UpdateProfile(c.Request.Context(), claims.UserID, service.ProfileInput{
		Email:   req.Email,
		Address: req.Address,
		Bio:     req.Bio,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// UpdateProfileImage godoc
// @Summary Загрузить фото профиля
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Изображение"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.UploadErrorResponse "Файл отклонён"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет токена"
// @Router /api/users/profile/image [put]
func (h *UserHandler) UpdateProfileImage(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
		return
	}
	img, closer, err := formImage(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}
	u, err := h.users.UpdateProfileImage(c.Request.Context(), claims.UserID, img)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}
