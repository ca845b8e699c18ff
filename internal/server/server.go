// Package server exposes the aggregated feed over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"alznews/internal/aggregator"
	"alznews/internal/metrics"
	"alznews/internal/news"
	"alznews/internal/scraper"
)

type Server struct {
	agg              *aggregator.Aggregator
	extractor        *scraper.Extractor
	revalidateSecret string
	log              *slog.Logger
}

func New(agg *aggregator.Aggregator, extractor *scraper.Extractor, revalidateSecret string, log *slog.Logger) *Server {
	return &Server{agg: agg, extractor: extractor, revalidateSecret: revalidateSecret, log: log}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/news", s.handleList)
	api.GET("/news/:id", s.handleGet)
	api.POST("/revalidate", s.handleRevalidate)

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", s.handleMetrics)

	return r
}

// handleList serves the aggregated feed, optionally filtered by category and
// capped by limit. Articles are always newest first.
func (s *Server) handleList(c *gin.Context) {
	var filter aggregator.Filter

	if category := c.Query("category"); category != "" {
		if !news.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + category})
			return
		}
		filter.Category = category
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	articles, err := s.agg.GetArticles(c.Request.Context(), filter)
	if err != nil {
		s.log.Error("aggregation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(articles),
		"articles": articles,
	})
}

// handleGet serves one article. ?full=1 pulls the complete article body from
// the outlet on demand; extraction failures degrade to the stored record.
func (s *Server) handleGet(c *gin.Context) {
	article, err := s.agg.GetArticleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	if c.Query("full") == "1" && article.FullContent == "" && s.extractor != nil {
		content, err := s.extractor.Extract(c.Request.Context(), article.URL)
		if err != nil {
			s.log.Debug("content extraction failed", "id", article.ID, "error", err)
		} else {
			article.FullContent = content
		}
	}

	c.JSON(http.StatusOK, article)
}

// handleRevalidate drops the source caches so the next read refetches every
// provider. The bearer token is verified only when both an Authorization
// header and a configured secret are present; with no secret, authenticated
// callers (external cron) pass like unauthenticated ones. ?refresh=1
// additionally runs an aggregation pass right away.
func (s *Server) handleRevalidate(c *gin.Context) {
	if auth := c.GetHeader("Authorization"); auth != "" && s.revalidateSecret != "" {
		if strings.TrimPrefix(auth, "Bearer ") != s.revalidateSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
	}

	s.agg.ClearSourceCaches()

	if c.Query("refresh") == "1" {
		if _, err := s.agg.GetArticles(c.Request.Context(), aggregator.Filter{}); err != nil {
			s.log.Error("revalidation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "revalidation failed"})
			return
		}
	}

	newCount, totalCount := metrics.Global.LastCycle()
	c.JSON(http.StatusOK, gin.H{
		"revalidated": true,
		"newCount":    newCount,
		"totalCount":  totalCount,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Global.GetStats())
}
