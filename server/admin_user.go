package server

import (
	"net/http"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/policy"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type createUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin editor author"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

type updateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin editor author"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

func (s *Server) ListUsers(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionViewAny, &model.User{}) {
		respondForbidden(c)
		return
	}

	query := s.DB.Model(&model.User{}).Order("created_at desc")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	page, perPage := pageParams(c, defaultPerPage)
	var users []*model.User
	result, err := paginate(query, page, perPage, &users)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) CreateUser(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionCreate, &model.User{}) {
		respondForbidden(c)
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var count int64
	if err := s.DB.Model(&model.User{}).Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if count > 0 {
		respondFieldError(c, "email", "email is already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondInternal(c, err)
		return
	}

	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Status:       req.Status,
		Avatar:       req.Avatar,
		Bio:          req.Bio,
	}
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}

	if err := s.DB.Create(&user).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) UpdateUser(c *gin.Context) {
	user, ok := s.findUser(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionUpdate, user) {
		respondForbidden(c)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if req.Email != user.Email {
		var count int64
		if err := s.DB.Model(&model.User{}).
			Where("email = ? AND id != ?", req.Email, user.Id).
			Count(&count).Error; err != nil {
			respondInternal(c, err)
			return
		}
		if count > 0 {
			respondFieldError(c, "email", "email is already taken")
			return
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role
	user.Avatar = req.Avatar
	user.Bio = req.Bio
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondInternal(c, err)
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := s.DB.Save(user).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) DeleteUser(c *gin.Context) {
	actor := Actor(c)
	user, ok := s.findUser(c)
	if !ok {
		return
	}
	if !policy.Can(actor, policy.ActionDelete, user) {
		respondForbidden(c)
		return
	}
	if user.Id == actor.Id {
		respondConflict(c, "cannot delete your own account")
		return
	}
	if err := s.DB.Delete(user).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

func (s *Server) findUser(c *gin.Context) (*model.User, bool) {
	var user model.User
	err := s.DB.Where("id = ?", c.Param("id")).First(&user).Error
	if isNotFound(err) {
		respondNotFound(c, "user")
		return nil, false
	}
	if err != nil {
		respondInternal(c, err)
		return nil, false
	}
	return &user, true
}
