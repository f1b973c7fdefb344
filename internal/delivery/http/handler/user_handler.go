package handler

import (
	"net/http"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	"github.com/MohdOwais22/subaku-backend/internal/middleware"
	userUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/user"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service  *userUsecase.Service
	sessions sessionCookies
}

func NewUserHandler(service *userUsecase.Service, cfg *config.Config) *UserHandler {
	return &UserHandler{
		service:  service,
		sessions: newSessionCookies(cfg),
	}
}

// RegisterRoutes mounts the unauthenticated account routes. auth guards the
// routes that can be used to probe accounts or send mail.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.POST("/register", auth, h.Register)
	router.POST("/login", auth, h.Login)
	router.GET("/logout", h.Logout)
	router.POST("/password/forgot", auth, h.ForgotPassword)
	router.PUT("/password/reset/:token", auth, h.ResetPassword)
}

func (h *UserHandler) RegisterProfileRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.GetProfile)
	router.PUT("/me/update", h.UpdateProfile)
	router.PUT("/password/update", h.UpdatePassword)
}

func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.GetAllUsers)
	router.GET("/user/:id", h.GetUser)
	router.PUT("/user/:id", h.UpdateUserRole)
	router.DELETE("/user/:id", h.DeleteUser)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req userUsecase.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	authResponse, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sessions.send(c, http.StatusCreated, authResponse)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req userUsecase.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	authResponse, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sessions.send(c, http.StatusOK, authResponse)
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.sessions.clear(c)
	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": "Logged Out"})
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req userUsecase.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	email, err := h.service.ForgotPassword(c.Request.Context(), &req, requestBaseURL(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": "Email sent to " + email + " successfully"})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req userUsecase.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	authResponse, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sessions.send(c, http.StatusOK, authResponse)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"user": userUsecase.ToUserResponse(user)})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req userUsecase.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	authResponse, err := h.service.UpdatePassword(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sessions.send(c, http.StatusOK, authResponse)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req userUsecase.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"user": userUsecase.ToUserResponse(user)})
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"users": userUsecase.ToUserResponses(users)})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"user": userUsecase.ToUserResponse(user)})
}

func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	var req userUsecase.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	if _, err := h.service.UpdateRole(c.Request.Context(), c.Param("id"), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, nil)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": "User Deleted Successfully"})
}

// requestBaseURL rebuilds scheme://host as seen by the client.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
