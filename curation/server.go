// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package curation

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

var zipParamPattern = regexp.MustCompile(`^\d{5}$`)

// Server exposes the stored dataset as a small read-only JSON API.
type Server struct {
	repo RestaurantRepository
}

// NewServer creates a server over the given repository.
func NewServer(repo RestaurantRepository) *Server {
	return &Server{repo: repo}
}

// Run blocks serving the API on the given address.
func (s *Server) Run(addr string) error {
	r := gin.Default()

	r.GET("/healthz", s.health)
	r.GET("/api/zips", s.listZips)
	r.GET("/api/opportunities", s.listOpportunities)
	r.GET("/api/restaurants", s.listRestaurants)

	return r.Run(addr)
}

func (s *Server) health(ctx *gin.Context) {
	count, err := s.repo.Count()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "restaurants": count})
}

func (s *Server) listZips(ctx *gin.Context) {
	summaries, err := s.repo.ZipSummaries()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"zips": summaries})
}

func (s *Server) listOpportunities(ctx *gin.Context) {
	slices, err := s.repo.OpportunityBreakdown()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"opportunities": slices})
}

func (s *Server) listRestaurants(ctx *gin.Context) {
	zip := ctx.Query("zip")
	if !zipParamPattern.MatchString(zip) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "zip query parameter must be a 5-digit ZIP code"})

		return
	}

	rows, err := s.repo.ByZip(zip)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"zip": zip, "restaurants": rows})
}
