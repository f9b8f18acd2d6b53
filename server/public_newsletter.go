package server

import (
	"net/http"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/gin-gonic/gin"
)

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"omitempty,max=255"`
}

// Subscribe signs an address up for the newsletter. The email is unique; a
// second signup for the same address fails validation and leaves the stored
// record untouched.
func (s *Server) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var count int64
	if err := s.DB.Model(&model.NewsletterSubscriber{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if count > 0 {
		respondFieldError(c, "email", "email is already subscribed")
		return
	}

	subscriber := model.NewsletterSubscriber{
		Email:  req.Email,
		Name:   req.Name,
		Status: model.SubscriberStatusActive,
	}
	if err := s.DB.Create(&subscriber).Error; err != nil {
		respondInternal(c, err)
		return
	}

	// TODO(lukiyanto): send the verification email once the mail transport
	// is provisioned; the token link is already in place.

	c.JSON(http.StatusCreated, gin.H{
		"message": "successfully subscribed, please check your email for verification",
		"status":  "success",
	})
}

// VerifySubscription confirms an address by its token. Unknown token 404s;
// a repeated call is a no-op.
func (s *Server) VerifySubscription(c *gin.Context) {
	subscriber, ok := s.subscriberByToken(c)
	if !ok {
		return
	}
	if err := subscriber.Verify(s.DB, time.Now()); err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified successfully", "status": "success"})
}

// Unsubscribe flips the subscriber to unsubscribed by its token. Unknown
// token 404s; a repeated call is a no-op.
func (s *Server) Unsubscribe(c *gin.Context) {
	subscriber, ok := s.subscriberByToken(c)
	if !ok {
		return
	}
	if err := subscriber.Unsubscribe(s.DB, time.Now()); err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "you have been unsubscribed successfully", "status": "success"})
}

func (s *Server) subscriberByToken(c *gin.Context) (*model.NewsletterSubscriber, bool) {
	var subscriber model.NewsletterSubscriber
	err := s.DB.Where("verification_token = ?", c.Param("token")).
		First(&subscriber).Error
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"message": "invalid or expired token", "status": "error"})
		return nil, false
	}
	if err != nil {
		respondInternal(c, err)
		return nil, false
	}
	return &subscriber, true
}
