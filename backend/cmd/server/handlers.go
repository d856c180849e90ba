package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lovemining/backend/internal/analytics"
	"lovemining/backend/internal/auth"
	"lovemining/backend/internal/user"
	apperrors "lovemining/backend/pkg/errors"
)

func registerRoutes(router *gin.Engine, users *user.Service, reports *analytics.Service, profiles auth.ProfileLookup, hasher *auth.Hasher, log *zap.Logger) {
	// Registration is the only unauthenticated API route
	router.POST("/api/auth/register", func(c *gin.Context) {
		var input user.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p, err := users.Register(c.Request.Context(), input)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	})

	authed := router.Group("/api", auth.Middleware(profiles, hasher))

	me := authed.Group("/users", auth.RequireUser())
	{
		me.GET("/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, auth.CurrentProfile(c))
		})

		me.GET("/:id", func(c *gin.Context) {
			p, err := users.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, p)
		})

		me.PATCH("/me", func(c *gin.Context) {
			var input user.UpdateInput
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			if err := users.UpdateProfile(c.Request.Context(), auth.CurrentProfile(c).ID, input); err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "updated"})
		})

		me.GET("/matches", func(c *gin.Context) {
			matches, err := users.Matches(c.Request.Context(), auth.CurrentProfile(c).ID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, matches)
		})

		me.GET("/reviews", func(c *gin.Context) {
			reviews, err := users.Reviews(c.Request.Context(), auth.CurrentProfile(c).ID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, reviews)
		})

		me.POST("/:id/like", func(c *gin.Context) {
			outcome, err := users.Like(c.Request.Context(), auth.CurrentProfile(c).ID, c.Param("id"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"outcome": outcome})
		})

		me.POST("/:id/dislike", func(c *gin.Context) {
			if err := users.Dislike(c.Request.Context(), auth.CurrentProfile(c).ID, c.Param("id")); err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"outcome": "dislike sent"})
		})

		me.POST("/:id/review", func(c *gin.Context) {
			var input struct {
				Rating  int    `json:"rating" binding:"required"`
				Comment string `json:"comment"`
			}
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			rev, err := users.AddReview(c.Request.Context(), auth.CurrentProfile(c).ID, c.Param("id"), input.Rating, input.Comment)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusCreated, rev)
		})

		me.GET("/recommendations", func(c *gin.Context) {
			minAge, err := strconv.Atoi(c.DefaultQuery("min_age", "18"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "min_age must be an integer"})
				return
			}
			maxAge, err := strconv.Atoi(c.DefaultQuery("max_age", "100"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "max_age must be an integer"})
				return
			}

			ids, err := users.Recommend(c.Request.Context(), auth.CurrentProfile(c).ID, c.Query("scope"), minAge, maxAge)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"recommendations": ids})
		})
	}

	admin := authed.Group("/admin", auth.RequireAdmin())
	{
		admin.DELETE("/users/:id", func(c *gin.Context) {
			if err := users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		})

		admin.GET("/analytics/love-points", func(c *gin.Context) {
			stats, err := reports.LovePoints(c.Request.Context(), c.Query("state"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, stats)
		})

		admin.GET("/analytics/glow-ups", func(c *gin.Context) {
			rows, err := reports.BestGlowUps(c.Request.Context())
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, rows)
		})

		admin.GET("/analytics/unhappy-cities", func(c *gin.Context) {
			rows, err := reports.UnhappyCities(c.Request.Context())
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, rows)
		})

		admin.GET("/analytics/singles-by-age", func(c *gin.Context) {
			rows, err := reports.SinglesByAgeGroup(c.Request.Context())
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, rows)
		})

		admin.GET("/analytics/orientation-demographics", func(c *gin.Context) {
			rows, err := reports.OrientationDemographics(c.Request.Context())
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, rows)
		})
	}
}

// respondError maps the error taxonomy onto HTTP statuses
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsSyncFailure(err):
		log.Error("Store operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "store operation failed"})
	default:
		log.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
