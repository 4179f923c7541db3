// Package api provides the REST API server for sysexgen
package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/james-see/sysexgen/pkg/fixtures"
	"github.com/james-see/sysexgen/pkg/sysex"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title sysexgen API
// @version 1.0
// @description API for generating and checking MIDI SysEx test fixtures
// @host localhost:8080
// @BasePath /api/v1

// maxUploadCount bounds the count a client may request or upload
const maxUploadCount = 1 << 20

// FixtureInfo describes a fixture without its bytes
type FixtureInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Size  int    `json:"size"`
}

// VerifyResult is the response body of the verify endpoint
type VerifyResult struct {
	Valid bool   `json:"valid"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// NewRouter builds the gin engine with every route registered
func NewRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/fixtures", listFixtures)
		v1.GET("/fixtures/:count", getFixture)
		v1.POST("/verify", verifyFixture)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sysexgen",
	})
}

// listFixtures godoc
// @Summary List the default fixture set
// @Description Returns name, data byte count and file size of every default fixture
// @Tags fixtures
// @Produce json
// @Success 200 {object} map[string][]FixtureInfo
// @Router /api/v1/fixtures [get]
func listFixtures(c *gin.Context) {
	list := make([]FixtureInfo, 0, len(fixtures.DefaultCounts))
	for _, count := range fixtures.DefaultCounts {
		list = append(list, FixtureInfo{
			Name:  fixtures.FileName(count),
			Count: count,
			Size:  count + 2,
		})
	}
	c.JSON(http.StatusOK, gin.H{"fixtures": list})
}

// getFixture godoc
// @Summary Download a fixture
// @Description Returns the .syx fixture carrying the given number of data bytes
// @Tags fixtures
// @Produce application/octet-stream
// @Param count path int true "Number of data bytes"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/fixtures/{count} [get]
func getFixture(c *gin.Context) {
	count, err := parseCount(c.Param("count"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := fixtures.New(count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", f.Name))
	c.Data(http.StatusOK, "application/octet-stream", f.Data)
}

// verifyFixture godoc
// @Summary Verify a fixture
// @Description Upload a .syx file and check it against the incrementing fixture layout
// @Tags fixtures
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true ".syx file to verify"
// @Param count query int false "Expected data byte count (default: taken from the file name)"
// @Success 200 {object} VerifyResult
// @Failure 400 {object} map[string]string
// @Router /api/v1/verify [post]
func verifyFixture(c *gin.Context) {
	// Get uploaded file
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	var count int
	if q := c.Query("count"); q != "" {
		count, err = parseCount(q)
	} else {
		count, err = fixtures.ParseFileName(header.Filename)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := VerifyResult{Valid: true, Count: count}
	if err := sysex.VerifyIncrementing(data, count); err != nil {
		result.Valid = false
		result.Error = err.Error()
	}
	c.JSON(http.StatusOK, result)
}

func parseCount(s string) (int, error) {
	count, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if count < 0 || count > maxUploadCount {
		return 0, fmt.Errorf("count %d out of range 0-%d", count, maxUploadCount)
	}
	return count, nil
}
