package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/logger"
)

// ConfigResponse is the /api/config response format.
type ConfigResponse struct {
	DataTypes      []domain.Category `json:"dataTypes"`
	DefaultType    string            `json:"defaultType"`
	SearchSettings SearchSettings    `json:"searchSettings"`
}

// SearchSettings advertises the client-side search parameters.
type SearchSettings struct {
	MinSearchLength int `json:"minSearchLength"`
	DebounceMs      int `json:"debounceMs"`
}

// TypeSummary is one element of the /api/types response.
type TypeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SearchResponse is the /api/search/:category response format.
type SearchResponse struct {
	Data     []domain.ResultItem `json:"data"`
	Metadata Metadata            `json:"metadata"`
}

// Metadata describes a search response.
type Metadata struct {
	ExportedAt time.Time `json:"exported_at"`
	RowCount   int       `json:"row_count"`
	Source     string    `json:"source"`
	Cached     bool      `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	catalog, err := s.store.Catalog(c.Request.Context())
	if err != nil {
		logger.Warn("httpapi: loading catalog: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load configuration"})
		return
	}
	if len(catalog.Categories) == 0 {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "no enabled data types found"})
		return
	}

	c.JSON(http.StatusOK, ConfigResponse{
		DataTypes:   catalog.Categories,
		DefaultType: catalog.Default(),
		SearchSettings: SearchSettings{
			MinSearchLength: s.cfg.MinSearchLength,
			DebounceMs:      int(s.cfg.Debounce / time.Millisecond),
		},
	})
}

func (s *Server) handleTypes(c *gin.Context) {
	catalog, err := s.store.Catalog(c.Request.Context())
	if err != nil {
		logger.Warn("httpapi: loading catalog: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load data types"})
		return
	}

	types := make([]TypeSummary, 0, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		types = append(types, TypeSummary{ID: cat.ID, Name: cat.Name, Icon: cat.Icon})
	}
	c.JSON(http.StatusOK, types)
}

func (s *Server) handleSearch(c *gin.Context) {
	category := c.Param("category")
	query := c.Query("q")

	items, err := s.store.Search(c.Request.Context(), category, query, s.cfg.ResultLimit)
	switch {
	case errors.Is(err, domain.ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown data type: " + category})
		return
	case err != nil:
		logger.Warn("httpapi: search %s:%q: %v", category, query, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "search failed"})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Data: items,
		Metadata: Metadata{
			ExportedAt: s.now().UTC(),
			RowCount:   len(items),
			Source:     category,
			Cached:     false,
		},
	})
}
